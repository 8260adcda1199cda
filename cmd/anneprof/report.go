package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/anne-lang/profiler/stats"
	"github.com/anne-lang/profiler/trace"
)

var sortKeys = []string{"name", "count", "total", "mean", "max"}

func newReportCmd() *cobra.Command {
	var (
		sortKey string
		top     int
	)

	cmd := &cobra.Command{
		Use:   "report [flags] <file.trace.json>",
		Short: "Summarize a recorded profile per scope name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), args[0], sortKey, top)
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "total",
		fmt.Sprintf("sort order, one of: %v", sortKeys))
	cmd.Flags().IntVar(&top, "top", 0,
		"show only the first N scopes (0 = all)")

	err := cmd.RegisterFlagCompletionFunc("sort",
		cobra.FixedCompletions(sortKeys, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runReport(w io.Writer, path, sortKey string, top int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	tf, err := trace.Read(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	summaries := stats.ByName(groupDurations(tf))

	err = sortSummaries(summaries, sortKey)
	if err != nil {
		return err
	}

	if top > 0 && top < len(summaries) {
		summaries = summaries[:top]
	}

	return writeReport(w, summaries)
}

// groupDurations collects complete-event durations by event name.
func groupDurations(f trace.File) map[string][]time.Duration {
	out := make(map[string][]time.Duration)

	for _, ev := range f.TraceEvents {
		if ev.Phase != trace.PhaseComplete {
			continue
		}

		out[ev.Name] = append(out[ev.Name], time.Duration(ev.DurationMicros)*time.Microsecond)
	}

	return out
}

// sortSummaries orders summaries by the given key, ascending for name and
// descending for the numeric keys.
func sortSummaries(summaries []stats.Summary, key string) error {
	var compare func(a, b stats.Summary) int

	switch key {
	case "name":
		// ByName output is already name-ordered.
		return nil
	case "count":
		compare = func(a, b stats.Summary) int { return b.Count - a.Count }
	case "total":
		compare = func(a, b stats.Summary) int { return cmp.Compare(b.Total, a.Total) }
	case "mean":
		compare = func(a, b stats.Summary) int { return cmp.Compare(b.Mean, a.Mean) }
	case "max":
		compare = func(a, b stats.Summary) int { return cmp.Compare(b.Max, a.Max) }
	default:
		return fmt.Errorf("unknown sort key %q, want one of: %v", key, sortKeys)
	}

	slices.SortStableFunc(summaries, compare)

	return nil
}

func writeReport(w io.Writer, summaries []stats.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tCOUNT\tTOTAL\tMEAN\tMIN\tMAX\tP50\tP95\tP99")

	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%v\t%v\t%v\t%v\t%v\n",
			s.Name, s.Count, s.Total, s.Mean, s.Min, s.Max, s.P50, s.P95, s.P99)
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
