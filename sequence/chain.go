// Package sequence runs cutscene chains: lines, sounds, pauses and effects
// executed strictly one after another on the cooperative loop.
package sequence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/milk9111/roadtrip/audio"
	"github.com/milk9111/roadtrip/sched"
)

// Speaker animates an actor's mouth while one of its lines plays.
type Speaker interface {
	Talk()
	Silence()
}

type stepKind int

const (
	stepSound stepKind = iota
	stepDelay
	stepDo
	stepAwait
)

// Step is one entry of a chain.
type Step struct {
	kind    stepKind
	speaker Speaker
	sound   string
	delay   time.Duration
	fn      func()
	await   func(done func())
}

// Line plays sound while speaker talks. speaker may be nil.
func Line(speaker Speaker, sound string) Step {
	return Step{kind: stepSound, speaker: speaker, sound: sound}
}

// Sound plays sound to completion.
func Sound(sound string) Step {
	return Step{kind: stepSound, sound: sound}
}

// Delay waits d.
func Delay(d time.Duration) Step {
	return Step{kind: stepDelay, delay: d}
}

// Do runs fn and moves straight on.
func Do(fn func()) Step {
	return Step{kind: stepDo, fn: fn}
}

// Await calls fn and waits until fn, or something it hands done to, calls
// done. Late or repeated calls are ignored.
func Await(fn func(done func())) Step {
	return Step{kind: stepAwait, await: fn}
}

func (s Step) String() string {
	switch s.kind {
	case stepSound:
		return "sound " + s.sound
	case stepDelay:
		return fmt.Sprintf("delay %s", s.delay)
	case stepAwait:
		return "await"
	default:
		return "do"
	}
}

// Deps are the services a chain runs on.
type Deps struct {
	Audio audio.Service
	Scope *sched.Scope
	Log   *slog.Logger
}

type state int

const (
	idle state = iota
	running
	finished
	cancelled
)

// Chain is a linear list of steps with a cursor. It runs at most once.
type Chain struct {
	name   string
	deps   Deps
	steps  []Step
	cursor int
	state  state
	onDone []func()
	timer  *sched.Timer
	unhook func()
}

func New(name string, deps Deps, steps ...Step) *Chain {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Chain{name: name, deps: deps, steps: steps}
}

// Append adds steps before the chain starts.
func (c *Chain) Append(steps ...Step) {
	if c.state != idle {
		return
	}
	c.steps = append(c.steps, steps...)
}

// OnDone registers fn to run after the last step.
func (c *Chain) OnDone(fn func()) {
	if fn != nil {
		c.onDone = append(c.onDone, fn)
	}
}

func (c *Chain) Name() string    { return c.name }
func (c *Chain) Len() int        { return len(c.steps) }
func (c *Chain) Cursor() int     { return c.cursor }
func (c *Chain) Running() bool   { return c.state == running }
func (c *Chain) Finished() bool  { return c.state == finished }
func (c *Chain) Cancelled() bool { return c.state == cancelled }

// Start begins execution. It reports false if the chain is already running,
// has finished or was cancelled, or its scope is closed.
func (c *Chain) Start() bool {
	if c.state != idle || c.deps.Scope.Closed() {
		return false
	}
	c.state = running
	c.unhook = c.deps.Scope.OnClose(c.Cancel)
	c.deps.Log.Debug("sequence: start", "chain", c.name, "steps", len(c.steps))
	c.run()
	return true
}

// Cancel stops the chain where it is. Pending continuations become no-ops
// and the current sound is stopped.
func (c *Chain) Cancel() {
	if c.state != running {
		if c.state == idle {
			c.state = cancelled
		}
		return
	}
	c.state = cancelled
	c.timer.Stop()
	if c.cursor < len(c.steps) {
		step := c.steps[c.cursor]
		if step.kind == stepSound {
			if c.deps.Audio != nil {
				c.deps.Audio.Stop(step.sound)
			}
			if step.speaker != nil {
				step.speaker.Silence()
			}
		}
	}
	c.deps.Log.Debug("sequence: cancelled", "chain", c.name, "cursor", c.cursor)
	c.release()
}

func (c *Chain) run() {
	for c.state == running {
		if c.cursor >= len(c.steps) {
			c.finish()
			return
		}
		step := c.steps[c.cursor]
		switch step.kind {
		case stepDo:
			if step.fn != nil {
				step.fn()
			}
			if c.state != running || c.deps.Scope.Closed() {
				return
			}
			c.cursor++
		case stepDelay:
			c.timer = c.deps.Scope.After(step.delay, c.continuation(c.cursor, nil))
			return
		case stepAwait:
			if step.await == nil {
				c.cursor++
				continue
			}
			step.await(c.deps.Scope.Wrap(c.continuation(c.cursor, nil)))
			return
		case stepSound:
			if c.deps.Audio == nil {
				c.deps.Log.Warn("sequence: no audio service, skipping line", "chain", c.name, "sound", step.sound)
				c.cursor++
				continue
			}
			if step.speaker != nil {
				step.speaker.Talk()
			}
			c.deps.Audio.Play(step.sound, c.deps.Scope.Wrap(c.continuation(c.cursor, step.speaker)))
			return
		}
	}
}

// continuation advances past step idx exactly once.
func (c *Chain) continuation(idx int, speaker Speaker) func() {
	return func() {
		if c.state != running || c.cursor != idx {
			return
		}
		if speaker != nil {
			speaker.Silence()
		}
		c.cursor++
		c.run()
	}
}

func (c *Chain) finish() {
	c.state = finished
	c.deps.Log.Debug("sequence: done", "chain", c.name)
	done := c.onDone
	c.release()
	for _, fn := range done {
		fn()
	}
}

func (c *Chain) release() {
	c.steps = nil
	c.onDone = nil
	c.timer = nil
	if c.unhook != nil {
		c.unhook()
		c.unhook = nil
	}
}
