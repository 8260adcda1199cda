// Package trace encodes profiling data in Chrome's Trace Event Format.
//
// The format is a JSON object with a traceEvents array, loadable by
// chrome://tracing, Perfetto, and Speedscope. Only the subset emitted by
// this module is modeled: complete ("X") duration events with microsecond
// timestamps, plus free-form trace metadata.
//
// Use [Write] to encode a [File] and [Read] to decode one:
//
//	f := trace.File{
//	    TraceEvents: []trace.Event{{
//	        Name:            "load",
//	        Phase:           trace.PhaseComplete,
//	        TimestampMicros: 829,
//	        DurationMicros:  4,
//	    }},
//	}
//	err := trace.Write(w, f)
//
// See https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU
// for the full format description.
package trace
