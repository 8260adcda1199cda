package trace_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anne-lang/profiler/trace"
)

func TestWriteRead(t *testing.T) {
	t.Parallel()

	in := trace.File{
		TraceEvents: []trace.Event{
			{
				Name:            "load",
				Category:        "scope",
				Phase:           trace.PhaseComplete,
				TimestampMicros: 829,
				DurationMicros:  4,
				ProcessID:       42,
			},
			{
				Name:            "parse",
				Phase:           trace.PhaseComplete,
				TimestampMicros: 850,
				DurationMicros:  12,
				ProcessID:       42,
				Args:            map[string]any{"file": "main.anne"},
			},
		},
		DisplayTimeUnit: "ms",
		OtherData:       map[string]string{"exporter": "test"},
	}

	var buf bytes.Buffer

	err := trace.Write(&buf, in)
	require.NoError(t, err)

	out, err := trace.Read(&buf)
	require.NoError(t, err)

	require.Len(t, out.TraceEvents, 2)
	assert.Equal(t, "load", out.TraceEvents[0].Name)
	assert.Equal(t, trace.PhaseComplete, out.TraceEvents[0].Phase)
	assert.Equal(t, int64(829), out.TraceEvents[0].TimestampMicros)
	assert.Equal(t, int64(4), out.TraceEvents[0].DurationMicros)
	assert.Equal(t, 42, out.TraceEvents[0].ProcessID)
	assert.Equal(t, "main.anne", out.TraceEvents[1].Args["file"])
	assert.Equal(t, "ms", out.DisplayTimeUnit)
	assert.Equal(t, "test", out.OtherData["exporter"])
}

func TestWrite_NilEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := trace.Write(&buf, trace.File{})
	require.NoError(t, err)

	// traceEvents must be an array, not null, for viewers to accept the
	// file.
	assert.Contains(t, buf.String(), `"traceEvents": []`)
	assert.NotContains(t, buf.String(), "null")
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantErr error
	}{
		"empty events": {
			input:   `{"traceEvents": []}`,
			wantErr: trace.ErrNoEvents,
		},
		"malformed json": {
			input: `{"traceEvents": [`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := trace.Read(strings.NewReader(tc.input))
			require.Error(t, err)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestFile_SortByStart(t *testing.T) {
	t.Parallel()

	f := trace.File{
		TraceEvents: []trace.Event{
			{Name: "c", TimestampMicros: 30},
			{Name: "a", TimestampMicros: 10},
			{Name: "b", TimestampMicros: 20},
			{Name: "a2", TimestampMicros: 10},
		},
	}

	f.SortByStart()

	got := make([]string, 0, len(f.TraceEvents))
	for _, ev := range f.TraceEvents {
		got = append(got, ev.Name)
	}

	// Stable sort keeps a before a2.
	assert.Equal(t, []string{"a", "a2", "b", "c"}, got)
}
