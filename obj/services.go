// Package obj holds the map objects that react to the car crossing their
// zones: bridges, teleports, sound triggers, the far-away medal and scene
// entrances.
package obj

import (
	"log/slog"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/audio"
	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/sched"
)

// Car is the command surface objects use on the shared car.
type Car interface {
	Position() cp.Vector
	Direction() int
	Enabled() bool
	SetEnabled(on bool)
	SetSpeed(v float64)
	StepBack(n int)
	TeleportTo(pos cp.Vector, dir int)
	HasPart(id ledger.PartID) bool
	Property(name string) int
	HasMedal(id int) bool
	AddMedal(id int) bool
}

// LocationChanger swaps the active location. With immediate set the swap
// happens before the call returns.
type LocationChanger interface {
	ChangeLocation(id string, immediate bool) error
}

// Fader fades the whole viewport and calls onDone when it gets there.
type Fader interface {
	FadeTo(alpha float64, d time.Duration, onDone func())
}

// Services is everything an object may reach. Timers belongs to the current
// location and closes with it; Session lives for the whole run.
type Services struct {
	Audio     audio.Service
	Timers    *sched.Scope
	Session   *sched.Scope
	Ledger    *ledger.Ledger
	Locations LocationChanger
	Viewport  Fader
	Log       *slog.Logger
}

func (s *Services) logger() *slog.Logger {
	if s == nil || s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

func (s *Services) session() *sched.Scope {
	if s.Session != nil {
		return s.Session
	}
	return s.Timers
}
