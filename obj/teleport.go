package obj

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/sched"
	"github.com/milk9111/roadtrip/sequence"
)

const (
	defaultFade     = 200 * time.Millisecond
	defaultCooldown = 500 * time.Millisecond
)

// Teleport moves the car to a target position, optionally in another
// location, behind a fade to black.
type Teleport struct {
	Base
	svc      *Services
	target   *cp.Vector
	location string
	fade     time.Duration
	cooldown time.Duration
	props    prefabs.TeleportProps

	busy  bool
	chain *sequence.Chain
	rearm *sched.Timer
}

func NewTeleport(inst Instance, svc *Services) (TriggerZone, error) {
	props, err := prefabs.DecodeProps[prefabs.TeleportProps](inst.Props)
	if err != nil {
		return nil, err
	}
	t := &Teleport{
		Base:     NewBase(inst, svc.logger()),
		svc:      svc,
		location: props.TargetLocation,
		fade:     inst.Spec.Fade(),
		cooldown: inst.Spec.Cooldown(),
		props:    props,
	}
	t.dir = props.Direction
	if t.fade <= 0 {
		t.fade = defaultFade
	}
	if t.cooldown <= 0 {
		t.cooldown = defaultCooldown
	}
	return t, nil
}

func (t *Teleport) OnCreate() {
	if t.props.TargetX == nil || t.props.TargetY == nil {
		t.log.Error("teleport: missing target position, car will not be moved",
			"target_x", t.props.TargetX != nil, "target_y", t.props.TargetY != nil)
		return
	}
	target := cp.Vector{X: *t.props.TargetX, Y: *t.props.TargetY}
	t.target = &target
}

// Busy reports whether a teleport or its cooldown is in progress.
func (t *Teleport) Busy() bool { return t.busy }

func (t *Teleport) OnEnterInner(car Car) {
	if t.busy {
		t.log.Debug("teleport: busy")
		return
	}
	t.busy = true
	car.SetEnabled(false)

	deps := sequence.Deps{Audio: t.svc.Audio, Scope: t.svc.session(), Log: t.log}
	t.chain = sequence.New("teleport "+t.id, deps,
		sequence.Await(t.fadeTo(1)),
		sequence.Do(t.changeLocation),
		sequence.Do(func() {
			if t.target != nil {
				car.TeleportTo(*t.target, t.dir)
			}
		}),
		sequence.Await(t.fadeTo(0)),
		sequence.Do(func() {
			car.SetEnabled(true)
			t.startCooldown()
		}),
	)
	if !t.chain.Start() {
		t.log.Warn("teleport: no scope to run on")
		car.SetEnabled(true)
		t.busy = false
	}
}

func (t *Teleport) fadeTo(alpha float64) func(done func()) {
	return func(done func()) {
		if t.svc.Viewport == nil {
			done()
			return
		}
		t.svc.Viewport.FadeTo(alpha, t.fade, done)
	}
}

func (t *Teleport) changeLocation() {
	if t.location == "" {
		return
	}
	if t.svc.Locations == nil {
		t.log.Error("teleport: no location service", "location", t.location)
		return
	}
	if err := t.svc.Locations.ChangeLocation(t.location, true); err != nil {
		t.log.Error("teleport: change location", "location", t.location, "err", err)
	}
}

func (t *Teleport) startCooldown() {
	t.rearm = t.svc.Timers.After(t.cooldown, func() {
		t.busy = false
	})
	if t.rearm == nil {
		// the location this teleport lived in is gone
		t.busy = false
	}
}
