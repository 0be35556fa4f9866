// Package scene runs locations: driving maps built from levels, and the
// cutscene locations the car can drive into.
package scene

import (
	"log/slog"

	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/audio"
	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/obj"
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/sched"
	"github.com/milk9111/roadtrip/sequence"
	"github.com/milk9111/roadtrip/vehicle"
	"github.com/milk9111/roadtrip/viewport"
)

// Services is the session state shared by every location.
type Services struct {
	Loop     *sched.Loop
	Audio    audio.Service
	Ledger   *ledger.Ledger
	Car      *vehicle.Car
	Viewport *viewport.Fader
	Store    ledger.Store
	Profile  string
	Catalogs *prefabs.Catalogs
	Registry *obj.Registry
	Log      *slog.Logger
}

// Location is one place the session can be in.
type Location interface {
	Enter(st *Stage) error
	Update()
	Exit()
}

// Stage is what a location gets while it is current. Scope closes when the
// location is left.
type Stage struct {
	*Services
	ID       string
	Scope    *sched.Scope
	Session  *sched.Scope
	Director *Director
	Log      *slog.Logger

	actors  []*obj.Actor
	ambient []string
}

// Deps returns chain dependencies bound to the location scope.
func (s *Stage) Deps() sequence.Deps {
	return sequence.Deps{Audio: s.Audio, Scope: s.Scope, Log: s.Log}
}

// Objects returns the services handed to map objects.
func (s *Stage) Objects() *obj.Services {
	svc := &obj.Services{
		Audio:   s.Audio,
		Timers:  s.Scope,
		Session: s.Session,
		Ledger:  s.Ledger,
		Log:     s.Log,
	}
	if s.Director != nil {
		svc.Locations = s.Director
	}
	if s.Viewport != nil {
		svc.Viewport = s.Viewport
	}
	return svc
}

var (
	talkClip = anim.Clip{Frames: anim.Span(1, 4), FPS: 8, Loop: true}
	idleClip = anim.Clip{Frames: []int{0}, FPS: 1}
)

// Actor returns the named speaker, creating it on first use.
func (s *Stage) Actor(name string) *obj.Actor {
	for _, a := range s.actors {
		if a.Name() == name {
			return a
		}
	}
	a := obj.NewActor(name, talkClip, idleClip, s.Log)
	s.actors = append(s.actors, a)
	return a
}

func (s *Stage) Actors() []*obj.Actor {
	return s.actors
}

func (s *Stage) tickActors() {
	for _, a := range s.actors {
		a.Anim().Tick()
	}
}

// PlayAmbient starts looping sounds that stop when the location is left.
func (s *Stage) PlayAmbient(ids ...string) {
	if s.Audio == nil {
		return
	}
	for _, id := range ids {
		s.Audio.Play(id, nil)
		s.ambient = append(s.ambient, id)
	}
}

// StopAmbient stops every sound started through PlayAmbient.
func (s *Stage) StopAmbient() {
	if s.Audio == nil {
		return
	}
	for _, id := range s.ambient {
		s.Audio.Stop(id)
	}
	s.ambient = nil
}

// Go is a chain step that leaves for id once the current frame is done.
func (s *Stage) Go(id string) sequence.Step {
	return sequence.Do(func() { s.change(id) })
}

func (s *Stage) change(id string) {
	if s.Director == nil {
		s.Log.Error("scene: no director", "location", id)
		return
	}
	if err := s.Director.ChangeLocation(id, false); err != nil {
		s.Log.Error("scene: change location", "location", id, "err", err)
	}
}
