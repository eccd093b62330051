package benchfmt

import (
	"math"
	"sort"
	"strings"
)

// MetricComparison represents a comparison between two metric values.
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
	// FromZero marks a metric whose base value was zero, so no percent
	// change exists. Any non-zero current value counts as significant.
	FromZero bool `json:"from_zero,omitempty"`
}

// Comparison holds the metric comparisons of one benchmark present in both runs.
type Comparison struct {
	Name           string             `json:"name"`
	Category       string             `json:"category"`
	Metrics        []MetricComparison `json:"metrics"`
	HasRegressions bool               `json:"has_regressions"`
	// Score is the sum of signed percent changes, positive meaning faster.
	Score float64 `json:"score"`
}

// Report is the outcome of comparing two summaries.
type Report struct {
	BaseCommit             string       `json:"base_commit"`
	CurrentCommit          string       `json:"current_commit"`
	Improved               int          `json:"improved"`
	Regressed              int          `json:"regressed"`
	SignificantRegressions int          `json:"significant_regressions"`
	Comparisons            []Comparison `json:"comparisons"`
}

// Compare matches results by name and computes percent changes for every
// metric present in both. A change beyond threshold percent in the bad
// direction is a significant regression. Comparisons are sorted by score,
// worst first.
func Compare(base, current Summary, threshold float64) Report {
	report := Report{
		BaseCommit:    base.CommitID,
		CurrentCommit: current.CommitID,
	}

	baseResults := make(map[string]Result, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	for _, cur := range current.Results {
		prev, ok := baseResults[cur.Name]
		if !ok {
			continue
		}

		comp := Comparison{Name: cur.Name, Category: cur.Category}
		names := make([]string, 0, len(cur.Metrics))
		for name := range cur.Metrics {
			if _, ok := prev.Metrics[name]; ok && name != "operations" {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			mc := compareMetric(name, prev.Metrics[name], cur.Metrics[name], threshold)
			comp.Metrics = append(comp.Metrics, mc)
			delta := math.Abs(mc.PercentChange)
			if mc.FromZero {
				// no percentage exists; weigh it as a full-scale change
				delta = 100
			}
			if mc.IsRegression {
				comp.Score -= delta
				if mc.IsSignificant {
					comp.HasRegressions = true
					report.SignificantRegressions++
				}
			} else if mc.IsImprovement {
				comp.Score += delta
			}
		}

		switch {
		case comp.Score > 0:
			report.Improved++
		case comp.Score < 0:
			report.Regressed++
		}
		report.Comparisons = append(report.Comparisons, comp)
	}

	sort.SliceStable(report.Comparisons, func(i, j int) bool {
		return report.Comparisons[i].Score < report.Comparisons[j].Score
	})
	return report
}

func compareMetric(name string, base, current, threshold float64) MetricComparison {
	mc := MetricComparison{Name: name, BaseValue: base, CurrentValue: current}
	if base == current {
		return mc
	}

	better := current < base
	if HigherIsBetter(name) {
		better = current > base
	}
	mc.IsImprovement = better
	mc.IsRegression = !better

	if base == 0 {
		mc.FromZero = true
		mc.IsSignificant = true
		return mc
	}
	mc.PercentChange = (current - base) / base * 100
	mc.IsSignificant = math.Abs(mc.PercentChange) > threshold
	return mc
}

// HigherIsBetter reports whether an increase of the metric is an improvement.
// Latency, bytes and allocations are lower-is-better.
func HigherIsBetter(metric string) bool {
	return strings.HasSuffix(metric, "_rate") || metric == "ops_per_sec"
}
