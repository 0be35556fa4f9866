// Package anim plays named clips for a single object and reports completion.
package anim

import "errors"

// TicksPerSecond is the rate Player.Tick is expected to be called at.
const TicksPerSecond = 60

var ErrUnknownClip = errors.New("anim: unknown clip")

// Clip describes one named animation. Frames lists the sheet frame index
// shown at each step, so a reversed clip is just the same indices backwards.
type Clip struct {
	Frames []int
	FPS    float64
	Loop   bool
}

// Span returns the frames first..last inclusive, counting down when last is
// smaller than first.
func Span(first, last int) []int {
	step := 1
	n := last - first + 1
	if last < first {
		step = -1
		n = first - last + 1
	}
	out := make([]int, 0, n)
	for f := first; len(out) < n; f += step {
		out = append(out, f)
	}
	return out
}

func (c Clip) ticksPerFrame() int {
	if c.FPS <= 0 {
		return 1
	}
	t := int(TicksPerSecond / c.FPS)
	if t < 1 {
		t = 1
	}
	return t
}

// Duration returns the number of ticks a non-looping clip takes to finish.
func (c Clip) Duration() int {
	if len(c.Frames) == 0 {
		return 0
	}
	return len(c.Frames) * c.ticksPerFrame()
}
