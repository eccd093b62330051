package chainhash_test

import (
	"strconv"
	"testing"

	"github.com/theflywheel/chainhash"
)

const preload = 100_000

func preloaded(b *testing.B) *chainhash.Table[string, int] {
	b.Helper()
	ht := chainhash.New[string, int](chainhash.String[string])
	for i := 0; i < preload; i++ {
		if err := ht.Put(strconv.Itoa(i), i); err != nil {
			b.Fatalf("Failed to preload key %d: %v", i, err)
		}
	}
	return ht
}

func BenchmarkPut(b *testing.B) {
	ht := chainhash.New[int, int](chainhash.Signed[int])
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ht.Put(i, i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPutUpdate(b *testing.B) {
	ht := preloaded(b)
	keys := make([]string, preload)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ht.Put(keys[i%preload], i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	ht := preloaded(b)
	keys := make([]string, preload)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := ht.Get(keys[i%preload]); !ok {
			b.Fatalf("key %s missing", keys[i%preload])
		}
	}
}

func BenchmarkGetMiss(b *testing.B) {
	ht := preloaded(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := ht.Get("missing"); ok {
			b.Fatal("unexpected hit")
		}
	}
}

func BenchmarkRemove(b *testing.B) {
	ht := chainhash.New[int, int](chainhash.Signed[int])
	for i := 0; i < b.N; i++ {
		if err := ht.Put(i, i); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ht.Remove(i)
	}
}
