// Package sched is the cooperative event loop every scene and object runs on.
// Nothing here blocks: work is queued as continuations and fired from
// Loop.Advance on the caller's goroutine.
package sched

import (
	"container/heap"
	"time"
)

// Loop owns simulated time and the pending timers of every scope.
type Loop struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
	posted []posted
}

type posted struct {
	scope *Scope
	fn    func()
}

// NewLoop returns a loop at time zero.
func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the elapsed simulated time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Pending returns the number of live timers.
func (l *Loop) Pending() int {
	n := 0
	for _, t := range l.timers {
		if !t.stopped && !t.scope.Closed() {
			n++
		}
	}
	return n
}

// Scope opens a new teardown token on the loop.
func (l *Loop) Scope() *Scope {
	return &Scope{loop: l}
}

// Advance moves time forward by dt. Posted continuations run first, then
// timers fire in due order (ties broken by registration order). A timer
// registered while advancing fires in the same call if it is already due.
func (l *Loop) Advance(dt time.Duration) {
	l.drainPosted()
	target := l.now + dt
	for len(l.timers) > 0 {
		next := l.timers[0]
		if next.due > target {
			break
		}
		heap.Pop(&l.timers)
		if next.stopped || next.scope.Closed() {
			continue
		}
		if next.due > l.now {
			l.now = next.due
		}
		if next.interval > 0 {
			next.due += next.interval
			next.seq = l.nextSeq()
			heap.Push(&l.timers, next)
		} else {
			next.stopped = true
		}
		next.fn()
		l.drainPosted()
	}
	l.now = target
}

func (l *Loop) drainPosted() {
	for len(l.posted) > 0 {
		batch := l.posted
		l.posted = nil
		for _, p := range batch {
			if !p.scope.Closed() {
				p.fn()
			}
		}
	}
}

func (l *Loop) nextSeq() uint64 {
	l.seq++
	return l.seq
}

func (l *Loop) schedule(s *Scope, delay, interval time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	t := &Timer{
		scope:    s,
		due:      l.now + delay,
		interval: interval,
		seq:      l.nextSeq(),
		fn:       fn,
	}
	heap.Push(&l.timers, t)
	return t
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*Timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
