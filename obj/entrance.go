package obj

import "github.com/milk9111/roadtrip/prefabs"

// Entrance hands the car over to a scene when it drives in.
type Entrance struct {
	Base
	svc       *Services
	location  string
	requested bool
}

func NewEntrance(inst Instance, svc *Services) (TriggerZone, error) {
	props, err := prefabs.DecodeProps[prefabs.EntranceProps](inst.Props)
	if err != nil {
		return nil, err
	}
	return &Entrance{Base: NewBase(inst, svc.logger()), svc: svc, location: props.Location}, nil
}

func (e *Entrance) Location() string { return e.location }

func (e *Entrance) OnCreate() {
	if e.location == "" {
		e.log.Error("entrance: no location")
		e.SetActive(false)
	}
}

func (e *Entrance) OnEnterInner(car Car) {
	if e.requested {
		return
	}
	if e.svc.Locations == nil {
		e.log.Error("entrance: no location service", "location", e.location)
		return
	}
	e.requested = true
	car.SetSpeed(0)
	if err := e.svc.Locations.ChangeLocation(e.location, false); err != nil {
		e.log.Error("entrance: change location", "location", e.location, "err", err)
		e.requested = false
	}
}
