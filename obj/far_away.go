package obj

import (
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/sequence"
)

const defaultFarAwayMedal = 2

// FarAway awards a medal the first time the car reaches the far corner of
// the world. It stays dormant once the medal is owned.
type FarAway struct {
	Base
	svc   *Services
	medal int
	line  string
	busy  bool
	car   Car
}

func NewFarAway(inst Instance, svc *Services) (TriggerZone, error) {
	props, err := prefabs.DecodeProps[prefabs.MedalProps](inst.Props)
	if err != nil {
		return nil, err
	}
	f := &FarAway{
		Base:  NewBase(inst, svc.logger()),
		svc:   svc,
		medal: inst.Spec.Medal,
		line:  inst.Spec.Line,
	}
	if props.Medal > 0 {
		f.medal = props.Medal
	}
	if props.Line != "" {
		f.line = props.Line
	}
	if f.medal <= 0 {
		f.medal = defaultFarAwayMedal
	}
	return f, nil
}

func (f *FarAway) Medal() int { return f.medal }

func (f *FarAway) OnCreate() {
	if f.svc.Ledger != nil && f.svc.Ledger.HasMedal(f.medal) {
		f.SetActive(false)
		return
	}
	f.svc.Timers.OnClose(func() {
		if f.busy && f.car != nil {
			f.car.SetEnabled(true)
		}
	})
}

func (f *FarAway) OnEnterInner(car Car) {
	if !f.Active() || f.busy {
		return
	}
	if car.HasMedal(f.medal) {
		f.SetActive(false)
		return
	}
	f.busy = true
	f.car = car
	car.SetEnabled(false)

	deps := sequence.Deps{Audio: f.svc.Audio, Scope: f.svc.Timers, Log: f.log}
	chain := sequence.New("far away "+f.id, deps,
		sequence.Line(nil, f.line),
		sequence.Do(func() {
			car.AddMedal(f.medal)
			f.SetActive(false)
			f.busy = false
			car.SetEnabled(true)
		}),
	)
	if !chain.Start() {
		f.busy = false
		car.SetEnabled(true)
	}
}
