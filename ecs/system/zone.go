package system

import (
	"github.com/milk9111/roadtrip/ecs"
	"github.com/milk9111/roadtrip/ecs/component"
)

// ZoneSystem reports the car crossing object zones. Entities are visited in
// ascending order; on entry outer is reported before inner, on exit inner
// before outer. Nothing is reported while the car is disabled.
//
// With Continuous set, enter callbacks repeat every frame the car overlaps
// a volume and exit callbacks every frame it does not.
type ZoneSystem struct {
	Continuous bool
}

func NewZoneSystem() *ZoneSystem { return &ZoneSystem{} }

func (zs *ZoneSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	carEnt, ok := ecs.First(w, component.CarComponent.Kind())
	if !ok {
		return
	}
	ref, _ := ecs.Get(w, carEnt, component.CarComponent.Kind())
	car := ref.Car
	if car == nil {
		return
	}

	ecs.ForEach2(w, component.ZoneComponent.Kind(), component.TriggerComponent.Kind(), func(_ ecs.Entity, zone *component.Zone, trig *component.Trigger) {
		o := trig.Object
		if o == nil || !car.Enabled() {
			return
		}
		if !o.Active() {
			zone.InOuter, zone.InInner = false, false
			return
		}

		pos := car.Position()
		inOuter := zone.Outer.ContainsVect(pos)
		inInner := zone.Inner.ContainsVect(pos)

		if inOuter && (zs.Continuous || !zone.InOuter) {
			zone.InOuter = true
			o.OnEnterOuter(car)
		}
		if inInner && car.Enabled() && (zs.Continuous || !zone.InInner) {
			zone.InInner = true
			o.OnEnterInner(car)
		}
		if !inInner && car.Enabled() && (zs.Continuous || zone.InInner) {
			zone.InInner = false
			o.OnExitInner(car)
		}
		if !inOuter && car.Enabled() && (zs.Continuous || zone.InOuter) {
			zone.InOuter = false
			o.OnExitOuter(car)
		}
	})
}
