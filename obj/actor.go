package obj

import (
	"log/slog"

	"github.com/milk9111/roadtrip/anim"
)

// Actor is a scene character whose mouth moves while it has a line.
type Actor struct {
	name   string
	player *anim.Player
	log    *slog.Logger
}

func NewActor(name string, talk, idle anim.Clip, log *slog.Logger) *Actor {
	if log == nil {
		log = slog.Default()
	}
	p := anim.NewPlayer()
	p.Define("talk", talk)
	p.Define("idle", idle)
	a := &Actor{name: name, player: p, log: log}
	a.Silence()
	return a
}

func (a *Actor) Name() string       { return a.name }
func (a *Actor) Anim() *anim.Player { return a.player }
func (a *Actor) Talking() bool      { return a.player.Current() == "talk" }

func (a *Actor) Talk()    { a.play("talk") }
func (a *Actor) Silence() { a.play("idle") }

func (a *Actor) play(clip string) {
	if _, err := a.player.Play(clip); err != nil {
		a.log.Warn("actor: play", "actor", a.name, "clip", clip, "err", err)
	}
}
