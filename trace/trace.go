package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Phase identifies the event type in the Trace Event Format. Each phase is
// a single character understood by trace viewers.
type Phase string

const (
	// PhaseComplete is a duration event carrying both timestamp and
	// duration in a single entry.
	PhaseComplete Phase = "X"
	// PhaseDurationBegin marks the start of a duration event.
	PhaseDurationBegin Phase = "B"
	// PhaseDurationEnd marks the end of a duration event.
	PhaseDurationEnd Phase = "E"
	// PhaseInstant is a zero-duration marker event.
	PhaseInstant Phase = "i"
	// PhaseMetadata carries viewer metadata such as process names.
	PhaseMetadata Phase = "M"
)

// ErrNoEvents indicates a decoded file contained no trace events.
var ErrNoEvents = errors.New("trace file contains no events")

// Event is a single entry in the traceEvents array.
type Event struct {
	// Name is the event name shown by the viewer.
	Name string `json:"name"`
	// Category is a comma-separated category list, usable for filtering.
	Category string `json:"cat,omitempty"`
	// Phase is the event type.
	Phase Phase `json:"ph"`
	// TimestampMicros is the event start on the tracing clock, in
	// microseconds.
	TimestampMicros int64 `json:"ts"`
	// DurationMicros is the event duration in microseconds. Only
	// meaningful for [PhaseComplete] events.
	DurationMicros int64 `json:"dur,omitempty"`
	// ProcessID and ThreadID place the event on a viewer track.
	ProcessID int `json:"pid"`
	ThreadID  int `json:"tid"`
	// Args holds arbitrary per-event metadata shown in the viewer's
	// analysis pane.
	Args map[string]any `json:"args,omitempty"`
}

// File is the top-level Trace Event Format object.
type File struct {
	TraceEvents []Event `json:"traceEvents"`
	// DisplayTimeUnit selects the unit timestamps are displayed in,
	// "ms" or "ns". Viewers default to "ms" when empty.
	DisplayTimeUnit string `json:"displayTimeUnit,omitempty"`
	// OtherData is free-form trace metadata.
	OtherData map[string]string `json:"otherData,omitempty"`
}

// SortByStart orders the trace events by start timestamp, ascending.
// Events with equal timestamps keep their relative order.
func (f *File) SortByStart() {
	slices.SortStableFunc(f.TraceEvents, func(a, b Event) int {
		switch {
		case a.TimestampMicros < b.TimestampMicros:
			return -1
		case a.TimestampMicros > b.TimestampMicros:
			return 1
		}

		return 0
	})
}

// Write encodes f as indented JSON to w.
func Write(w io.Writer, f File) error {
	if f.TraceEvents == nil {
		// Viewers require traceEvents to be present even when empty.
		f.TraceEvents = []Event{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(f)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}

	return nil
}

// Read decodes a trace file from r. It returns [ErrNoEvents] if the file
// is well-formed but holds no events.
func Read(r io.Reader) (File, error) {
	var f File

	err := json.NewDecoder(r).Decode(&f)
	if err != nil {
		return File{}, fmt.Errorf("decoding trace: %w", err)
	}

	if len(f.TraceEvents) == 0 {
		return File{}, ErrNoEvents
	}

	return f, nil
}
