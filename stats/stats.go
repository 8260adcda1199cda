// Package stats computes summary statistics over recorded scope durations.
//
// A [Summary] aggregates the samples for one scope name; [Summarize]
// computes it from raw durations, and [ByName] groups a sample map into
// summaries. Quantiles use the empirical distribution.
package stats

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate statistics for one scope name.
type Summary struct {
	Name  string
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// Summarize computes a [Summary] over the given samples. It returns a zero
// Summary when samples is empty.
func Summarize(name string, samples []time.Duration) Summary {
	if len(samples) == 0 {
		return Summary{Name: name}
	}

	xs := make([]float64, len(samples))

	var total time.Duration

	for i, d := range samples {
		xs[i] = float64(d)
		total += d
	}

	slices.Sort(xs)

	return Summary{
		Name:  name,
		Count: len(samples),
		Total: total,
		Min:   time.Duration(xs[0]),
		Max:   time.Duration(xs[len(xs)-1]),
		Mean:  time.Duration(stat.Mean(xs, nil)),
		P50:   quantile(0.50, xs),
		P95:   quantile(0.95, xs),
		P99:   quantile(0.99, xs),
	}
}

// ByName computes one [Summary] per scope name, ordered by name.
func ByName(samples map[string][]time.Duration) []Summary {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}

	slices.Sort(names)

	out := make([]Summary, 0, len(names))
	for _, name := range names {
		out = append(out, Summarize(name, samples[name]))
	}

	return out
}

// quantile evaluates the empirical p-quantile of sorted samples.
func quantile(p float64, sorted []float64) time.Duration {
	return time.Duration(stat.Quantile(p, stat.Empirical, sorted, nil))
}
