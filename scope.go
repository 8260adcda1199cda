package profiler

import "time"

// Scope is a named timing span within a profiling session. It is created
// by [Profiler.StartScope] and closed by [Scope.End]; its zero value has
// no meaning.
//
// A Scope must not be shared across goroutines without synchronization.
type Scope struct {
	p     *Profiler
	name  string
	start time.Time
	ended bool
}

// Name returns the scope name.
func (s *Scope) Name() string {
	return s.name
}

// End closes the scope, recording its duration in the profiler that
// started it. Ending a scope twice is a no-op.
func (s *Scope) End() {
	if s == nil || s.p == nil {
		return
	}

	s.p.EndScope(s)
}
