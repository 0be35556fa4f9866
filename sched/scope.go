package sched

import (
	"slices"
	"time"
)

// Scope is a teardown token. Everything registered through a scope is
// dropped once the scope closes, and continuations wrapped by it turn into
// no-ops.
type Scope struct {
	loop   *Loop
	closed bool
	nextID uint64
	onStop []cleanup
}

type cleanup struct {
	id uint64
	fn func()
}

// Timer is a handle to a pending After or Every registration.
type Timer struct {
	scope    *Scope
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
	stopped  bool
}

// Stop cancels the timer. It is safe to call more than once.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// Active reports whether the timer can still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped && !t.scope.Closed()
}

// Closed reports whether the scope was torn down.
func (s *Scope) Closed() bool {
	return s == nil || s.closed
}

// After runs fn once, d from now.
func (s *Scope) After(d time.Duration, fn func()) *Timer {
	if s.Closed() || fn == nil {
		return nil
	}
	return s.loop.schedule(s, d, 0, fn)
}

// Every runs fn each interval until stopped or the scope closes.
func (s *Scope) Every(interval time.Duration, fn func()) *Timer {
	if s.Closed() || fn == nil {
		return nil
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.loop.schedule(s, interval, interval, fn)
}

// Post runs fn at the start of the next Advance.
func (s *Scope) Post(fn func()) {
	if s.Closed() || fn == nil {
		return
	}
	s.loop.posted = append(s.loop.posted, posted{scope: s, fn: fn})
}

// Wrap guards a continuation handed to another service: once the scope
// closes, calling the returned func does nothing.
func (s *Scope) Wrap(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return func() {
		if s.Closed() {
			return
		}
		fn()
	}
}

// OnClose registers cleanup run once when the scope closes, in reverse
// registration order. The returned func unregisters it; holders that finish
// before the scope does should call it.
func (s *Scope) OnClose(fn func()) (remove func()) {
	if s.Closed() || fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.onStop = append(s.onStop, cleanup{id: id, fn: fn})
	return func() {
		s.onStop = slices.DeleteFunc(s.onStop, func(c cleanup) bool { return c.id == id })
	}
}

// Cleanups returns the number of registered OnClose funcs.
func (s *Scope) Cleanups() int {
	if s == nil {
		return 0
	}
	return len(s.onStop)
}

// Close tears the scope down. Pending timers never fire afterwards.
func (s *Scope) Close() {
	if s.Closed() {
		return
	}
	s.closed = true
	stops := s.onStop
	s.onStop = nil
	for i := len(stops) - 1; i >= 0; i-- {
		stops[i].fn()
	}
}
