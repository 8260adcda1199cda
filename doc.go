// Package profiler records named wall-clock timing scopes and persists
// them to disk.
//
// A [Profiler] is a profiling session. Scopes are started by name, ended
// to record their duration, and saved as a Chrome Trace Event Format file
// (see [github.com/anne-lang/profiler/trace]) or as CSV.
//
// Typical usage:
//
//	p := profiler.New()
//	defer p.Close()
//
//	scope := p.StartScope("load")
//	// ... work ...
//	scope.End()
//
//	err := p.Save("out.trace.json")
//
// Profiler methods are safe for concurrent use by multiple goroutines. A
// [Scope] handle is not; end each scope on the goroutine that started it,
// or hand it off with proper synchronization.
package profiler
