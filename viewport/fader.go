// Package viewport tweens the full-screen fade overlay.
package viewport

import (
	"time"

	"github.com/milk9111/roadtrip/common"
)

// Fader tweens an overlay alpha between 0 (clear) and 1 (opaque).
type Fader struct {
	alpha   float64
	from    float64
	to      float64
	elapsed time.Duration
	dur     time.Duration
	active  bool
	onDone  func()
}

func NewFader() *Fader {
	return &Fader{}
}

// Alpha returns the current overlay opacity.
func (f *Fader) Alpha() float64 {
	return f.alpha
}

// Fading reports whether a tween is running.
func (f *Fader) Fading() bool {
	return f.active
}

// FadeTo starts a linear tween to alpha over d, replacing any running tween;
// the replaced tween's callback is dropped. A zero duration lands at once.
func (f *Fader) FadeTo(alpha float64, d time.Duration, onDone func()) {
	alpha = common.Clamp01(alpha)
	f.from = f.alpha
	f.to = alpha
	f.elapsed = 0
	f.dur = d
	f.onDone = onDone
	f.active = true
	if d <= 0 {
		f.finish()
	}
}

// Update advances the running tween by dt.
func (f *Fader) Update(dt time.Duration) {
	if !f.active {
		return
	}
	f.elapsed += dt
	if f.elapsed >= f.dur {
		f.finish()
		return
	}
	t := float64(f.elapsed) / float64(f.dur)
	f.alpha = common.Lerp(f.from, f.to, t)
}

func (f *Fader) finish() {
	f.alpha = f.to
	f.active = false
	done := f.onDone
	f.onDone = nil
	if done != nil {
		done()
	}
}
