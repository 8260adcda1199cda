package profiler

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Record is one completed scope measurement.
type Record struct {
	// Name is the scope name passed to [Profiler.StartScope].
	Name string
	// Start is when the scope was started.
	Start time.Time
	// Duration is the wall-clock span between start and end.
	Duration time.Duration
}

// Profiler is a profiling session. It collects completed scope records
// until closed.
//
// Create instances with [New]. All methods are safe for concurrent use.
type Profiler struct {
	logger *slog.Logger
	now    func() time.Time
	pid    int

	mu      sync.Mutex
	records []Record
	open    int
	closed  bool
}

// Option configures a [Profiler] at construction time.
type Option func(*Profiler)

// WithLogger sets the logger used for diagnostic output. The default
// discards all logs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithClock overrides the time source, which is useful in tests.
func WithClock(now func() time.Time) Option {
	return func(p *Profiler) {
		p.now = now
	}
}

// New creates a new [Profiler] ready to record scopes.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		pid:    os.Getpid(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// StartScope begins a named timing scope. The returned [Scope] is ended
// with [Scope.End] or [Profiler.EndScope].
//
// Starting a scope on a closed profiler returns an inert scope whose end
// records nothing.
func (p *Profiler) StartScope(name string) *Scope {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		p.logger.Debug("scope started on closed profiler", "scope", name)

		return &Scope{name: name}
	}

	p.open++
	p.mu.Unlock()

	return &Scope{
		p:     p,
		name:  name,
		start: p.now(),
	}
}

// EndScope ends a scope started by this profiler, recording its duration.
//
// Ending a scope twice is a no-op. A scope started by a different
// profiler is ignored with a warning; the record belongs to the profiler
// that started it.
func (p *Profiler) EndScope(s *Scope) {
	if s == nil || s.p == nil {
		return
	}

	if s.p != p {
		p.logger.Warn("scope belongs to a different profiler", "scope", s.name)

		return
	}

	end := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if s.ended {
		p.logger.Debug("scope already ended", "scope", s.name)

		return
	}

	s.ended = true
	p.open--

	if p.closed {
		p.logger.Warn("dropping scope ended after close", "scope", s.name)

		return
	}

	p.records = append(p.records, Record{
		Name:     s.name,
		Start:    s.start,
		Duration: end.Sub(s.start),
	})
}

// Records returns a snapshot of all completed scope records, in the order
// they ended.
func (p *Profiler) Records() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Record, len(p.records))
	copy(out, p.records)

	return out
}

// Durations groups completed record durations by scope name.
func (p *Profiler) Durations() map[string][]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string][]time.Duration, len(p.records))
	for _, r := range p.records {
		out[r.Name] = append(out[r.Name], r.Duration)
	}

	return out
}

// Reset discards all completed records. In-flight scopes are unaffected
// and still record when ended.
func (p *Profiler) Reset() {
	p.mu.Lock()
	p.records = p.records[:0]
	p.mu.Unlock()
}

// Close ends the session. In-flight scopes are discarded: ending them
// after Close records nothing. Completed records are retained, so
// [Profiler.Save] remains valid after Close. Close is idempotent.
func (p *Profiler) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	if p.open > 0 {
		p.logger.Warn("closing with in-flight scopes", "count", p.open)
	}

	return nil
}
