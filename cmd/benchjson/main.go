// Command benchjson converts `go test -bench` output of the table benchmarks
// to JSON and optionally compares it against a previous run.
//
// Usage:
//
//	go test -bench=. -benchmem ./bench | tee bench.txt
//	benchjson -commit $(git rev-parse --short HEAD) -branch main bench.txt
//	benchjson -compare benchmark_history/baseline.json bench.txt
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/theflywheel/chainhash/internal/benchfmt"
)

var (
	commitID  = flag.String("commit", "unknown", "commit id recorded in the summary")
	branch    = flag.String("branch", "unknown", "branch name recorded in the summary")
	output    = flag.String("o", "", "output file (default: input with .json extension)")
	compare   = flag.String("compare", "", "baseline JSON summary to compare against")
	threshold = flag.Float64("threshold", 10, "percent change that counts as significant")
	verbose   = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: benchjson [flags] <benchmark_output_file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	inputFile := flag.Arg(0)
	summary, err := parseFile(inputFile)
	if err != nil {
		log.Fatalf("Error reading benchmark output: %v", err)
	}
	summary.Timestamp = time.Now().Format(time.RFC3339)
	summary.CommitID = *commitID
	summary.Branch = *branch
	log.Debugf("Parsed %d benchmark results from %s", len(summary.Results), inputFile)

	outputPath := *output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputFile, ".txt") + ".json"
	}
	if err := writeJSON(outputPath, summary); err != nil {
		log.Fatalf("Error writing JSON file: %v", err)
	}
	log.Infof("JSON benchmark results written to %s", outputPath)

	if *compare == "" {
		return
	}

	base, err := readSummary(*compare)
	if err != nil {
		log.Fatalf("Error loading baseline: %v", err)
	}
	report := benchfmt.Compare(base, summary, *threshold)
	printReport(report)
	if report.SignificantRegressions > 0 {
		log.Errorf("%d significant performance regressions detected", report.SignificantRegressions)
		os.Exit(1)
	}
}

func parseFile(path string) (benchfmt.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return benchfmt.Summary{}, err
	}
	defer f.Close()
	return benchfmt.Parse(f)
}

func readSummary(path string) (benchfmt.Summary, error) {
	var s benchfmt.Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// printReport outputs a human-readable comparison report
func printReport(report benchfmt.Report) {
	fmt.Printf("Benchmark Comparison: %s vs %s\n\n",
		truncate(report.BaseCommit, 8), truncate(report.CurrentCommit, 8))
	fmt.Printf("- Total benchmarks compared: %d\n", len(report.Comparisons))
	fmt.Printf("- Improvements: %d\n", report.Improved)
	fmt.Printf("- Regressions: %d (significant metrics: %d)\n\n",
		report.Regressed, report.SignificantRegressions)

	if len(report.Comparisons) == 0 {
		fmt.Println("No matching benchmarks found for comparison")
		return
	}

	for _, comp := range report.Comparisons {
		indicator := "="
		switch {
		case comp.HasRegressions:
			indicator = "-"
		case comp.Score > 0:
			indicator = "+"
		}
		fmt.Printf("%s %s (%s):\n", indicator, comp.Name, comp.Category)

		for _, m := range comp.Metrics {
			if !m.IsRegression && !m.IsImprovement {
				continue
			}
			mark := " "
			if m.IsSignificant {
				mark = "!"
			}
			if m.FromZero {
				fmt.Printf("  %s %-20s: %9s (%g -> %g)\n",
					mark, m.Name, "from zero", m.BaseValue, m.CurrentValue)
				continue
			}
			fmt.Printf("  %s %-20s: %+8.2f%% (%g -> %g)\n",
				mark, m.Name, m.PercentChange, m.BaseValue, m.CurrentValue)
		}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
