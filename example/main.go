package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/theflywheel/chainhash"
)

func main() {
	// Show resize events
	log.SetLevel(log.DebugLevel)

	ht := chainhash.New[int, string](chainhash.Signed[int])
	fmt.Printf("Table created with %d buckets\n", ht.Cap())

	// Insert some data, the ninth key triggers a resize
	for i := 0; i < 10; i++ {
		if err := ht.Put(i, fmt.Sprintf("v%d", i)); err != nil {
			log.Fatalf("Failed to insert key %d: %v", i, err)
		}
	}

	fmt.Printf("Inserted %d key-value pairs, capacity now %d\n", ht.Size(), ht.Cap())

	// Retrieve and display some values
	for i := 0; i < 15; i += 2 {
		value, found := ht.Get(i)
		if found {
			fmt.Printf("Key %d => Value %s\n", i, value)
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	// Update a value
	if err := ht.Put(2, "updated"); err != nil {
		log.Fatalf("Failed to update key: %v", err)
	}
	if value, found := ht.Get(2); found {
		fmt.Printf("Updated key 2 => Value %s\n", value)
	}

	// Remove a value
	if old, found := ht.Remove(4); found {
		fmt.Printf("Removed key 4 (was %s), %d keys left\n", old, ht.Size())
	}

	// Nil keys are rejected
	names := chainhash.New[*string, int](func(k *string) uint64 { return chainhash.String(*k) })
	if err := names.Put(nil, 1); err != nil {
		fmt.Printf("Put with nil key: %v\n", err)
	}

	fmt.Println("Example completed successfully")
}
