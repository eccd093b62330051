// Package benchfmt parses `go test -bench` output for the table benchmarks
// and turns it into JSON summaries that can be compared between commits.
package benchfmt

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Result represents a single benchmark result with multiple metrics.
type Result struct {
	Name     string             `json:"name"`
	Category string             `json:"category"` // "standard", "scale" or "other"
	Metrics  map[string]float64 `json:"metrics"`
}

// Summary represents all benchmark results of one run.
type Summary struct {
	Timestamp  string   `json:"timestamp"`
	CommitID   string   `json:"commit_id"`
	Branch     string   `json:"branch"`
	GoVersion  string   `json:"go_version"`
	SystemInfo string   `json:"system_info,omitempty"`
	Results    []Result `json:"results"`
}

// Benchmarks that run once and report their own rates through b.Logf.
var scaleBenchmarks = map[string]bool{
	"TenThousandKeys": true,
	"MillionKeys":     true,
	"UUIDKeys":        true,
}

var standardBenchmarks = map[string]bool{
	"Put":       true,
	"PutUpdate": true,
	"Get":       true,
	"GetMiss":   true,
	"Remove":    true,
}

var (
	stdBenchRe  = regexp.MustCompile(`^Benchmark(\w+?)(?:-\d+)?\s+(\d+)\s+(\d+\.?\d*)\s+ns/op(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`)
	benchLogRe  = regexp.MustCompile(`^--- BENCH: Benchmark(\w+?)(?:-\d+)?$`)
	rateRe      = regexp.MustCompile(`Time to (\w+) .*\(([\d,.]+) \w+/sec\)$`)
	bytesKeyRe  = regexp.MustCompile(`Average bytes per key-value pair: ([\d,.]+) bytes`)
	goVersionRe = regexp.MustCompile(`go\d+\.\d+(?:\.\d+)?`)
	sysInfoRe   = regexp.MustCompile(`^(goos|goarch|cpu): (.+)$`)
)

// Category classifies a benchmark by name.
func Category(name string) string {
	switch {
	case standardBenchmarks[name]:
		return "standard"
	case scaleBenchmarks[name]:
		return "scale"
	}
	return "other"
}

// Parse reads benchmark output and collects one Result per benchmark, in
// order of first appearance. Log lines under "--- BENCH:" headers are
// attributed to that benchmark.
func Parse(r io.Reader) (Summary, error) {
	var (
		summary Summary
		sysInfo []string
		current string
	)
	byName := make(map[string]int)

	result := func(name string) *Result {
		i, ok := byName[name]
		if !ok {
			i = len(summary.Results)
			byName[name] = i
			summary.Results = append(summary.Results, Result{
				Name:     name,
				Category: Category(name),
				Metrics:  make(map[string]float64),
			})
		}
		return &summary.Results[i]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if summary.GoVersion == "" {
			if v := goVersionRe.FindString(line); v != "" {
				summary.GoVersion = v
			}
		}
		if m := sysInfoRe.FindStringSubmatch(trimmed); m != nil {
			sysInfo = append(sysInfo, m[1]+": "+m[2])
			continue
		}

		if m := benchLogRe.FindStringSubmatch(trimmed); m != nil {
			current = m[1]
			continue
		}

		if m := stdBenchRe.FindStringSubmatch(trimmed); m != nil {
			current = ""
			res := result(m[1])
			ops, _ := strconv.Atoi(m[2])
			nsPerOp, _ := strconv.ParseFloat(m[3], 64)
			res.Metrics["operations"] = float64(ops)
			res.Metrics["ns_per_op"] = nsPerOp
			// scale benchmarks report their own rates
			if res.Category != "scale" && nsPerOp > 0 {
				res.Metrics["ops_per_sec"] = 1e9 / nsPerOp
			}
			if m[4] != "" {
				v, _ := strconv.Atoi(m[4])
				res.Metrics["bytes_per_op"] = float64(v)
			}
			if m[5] != "" {
				v, _ := strconv.Atoi(m[5])
				res.Metrics["allocs_per_op"] = float64(v)
			}
			continue
		}

		// indented log lines belong to the last "--- BENCH:" header
		if current == "" || !strings.HasPrefix(line, " ") {
			current = ""
			continue
		}
		if m := rateRe.FindStringSubmatch(trimmed); m != nil {
			if v, ok := parseNumber(m[2]); ok {
				result(current).Metrics[strings.ToLower(m[1])+"_rate"] = v
			}
		} else if m := bytesKeyRe.FindStringSubmatch(trimmed); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				result(current).Metrics["bytes_per_key"] = v
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, err
	}

	summary.SystemInfo = strings.Join(sysInfo, ", ")
	return summary, nil
}

// parseNumber parses a float that may contain thousands separators.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v, err == nil
}
