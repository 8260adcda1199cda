package profiler

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/anne-lang/profiler/trace"
)

// Save writes all completed records to path in Chrome Trace Event Format.
// The file loads in chrome://tracing, Perfetto, and Speedscope. A session
// with no records produces a valid, empty trace.
func (p *Profiler) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}

	err = trace.Write(f, p.traceFile())
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}

	p.logger.Debug("saved trace", "path", path)

	return nil
}

// traceFile converts the recorded scopes to a trace [trace.File], ordered
// by start time.
func (p *Profiler) traceFile() trace.File {
	recs := p.Records()

	events := make([]trace.Event, 0, len(recs))
	for _, r := range recs {
		events = append(events, trace.Event{
			Name:            r.Name,
			Category:        "scope",
			Phase:           trace.PhaseComplete,
			TimestampMicros: r.Start.UnixMicro(),
			DurationMicros:  r.Duration.Microseconds(),
			ProcessID:       p.pid,
		})
	}

	f := trace.File{
		TraceEvents:     events,
		DisplayTimeUnit: "ms",
		OtherData: map[string]string{
			"exporter": "anne-profiler",
		},
	}
	f.SortByStart()

	return f
}

// ExportCSV writes all completed records to path as CSV, one row per
// record with nanosecond and millisecond durations and the RFC 3339 start
// time.
func (p *Profiler) ExportCSV(path string) error {
	recs := p.Records()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}

	w := csv.NewWriter(f)

	rows := [][]string{{"name", "duration_ns", "duration_ms", "start"}}
	for _, r := range recs {
		rows = append(rows, []string{
			r.Name,
			strconv.FormatInt(r.Duration.Nanoseconds(), 10),
			strconv.FormatFloat(float64(r.Duration.Nanoseconds())/1e6, 'f', 3, 64),
			r.Start.Format(time.RFC3339Nano),
		})
	}

	err = w.WriteAll(rows)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("writing csv: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}

	return nil
}
