package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/ecs"
	"github.com/milk9111/roadtrip/ecs/component"
	"github.com/milk9111/roadtrip/ecs/system"
	"github.com/milk9111/roadtrip/levels"
	"github.com/milk9111/roadtrip/obj"
)

// MapLocation is a driving map: the car plus the level's objects in an ECS
// world, stepped by the drive, zone and animation systems.
type MapLocation struct {
	name      string
	level     *levels.Level
	world     *ecs.World
	scheduler *ecs.Scheduler
	zones     *system.ZoneSystem
	input     *component.DriveInput
	objects   []obj.TriggerZone
}

func NewMapLocation(name string) *MapLocation {
	return &MapLocation{name: name}
}

func (m *MapLocation) Enter(st *Stage) error {
	lvl, err := levels.Load(m.name)
	if err != nil {
		return err
	}
	m.level = lvl
	m.world = ecs.NewWorld()

	car := st.Car
	if car == nil {
		return fmt.Errorf("scene: map %s: no car", m.name)
	}
	// Coming back from a scene the car resumes where it left the map.
	if st.Director == nil || st.Director.LastMap() != m.name || car.Position() == (cp.Vector{}) {
		car.TeleportTo(cp.Vector{X: lvl.CarStart.X, Y: lvl.CarStart.Y}, lvl.CarStart.Dir)
	}

	carEnt := ecs.CreateEntity(m.world)
	m.input = &component.DriveInput{}
	if err := ecs.Add(m.world, carEnt, component.CarComponent.Kind(), &component.Car{Car: car}); err != nil {
		return err
	}
	if err := ecs.Add(m.world, carEnt, component.DriveInputComponent.Kind(), m.input); err != nil {
		return err
	}

	insts := make([]obj.Instance, 0, len(lvl.Entities))
	for _, e := range lvl.Entities {
		insts = append(insts, obj.Instance{ID: e.ID, Type: e.Type, Pos: cp.Vector{X: e.X, Y: e.Y}, Props: e.Props})
	}
	for _, zone := range st.Registry.CreateAll(insts, st.Objects()) {
		if err := m.spawn(zone, car.Position()); err != nil {
			return err
		}
		m.objects = append(m.objects, zone)
	}

	m.zones = system.NewZoneSystem()
	m.scheduler = ecs.NewScheduler(system.NewDriveSystem())
	m.scheduler.Add(ecs.PhaseAnimate, system.NewAnimationSystem())
	m.scheduler.Add(ecs.PhaseTrigger, m.zones)
	st.PlayAmbient(lvl.Ambient...)
	st.Log.Debug("scene: map built", "objects", len(m.objects))
	return nil
}

// spawn adds the object's entity. Zones the car already overlaps start out
// occupied so that arriving on top of an object does not trigger it.
func (m *MapLocation) spawn(zone obj.TriggerZone, carPos cp.Vector) error {
	e := ecs.CreateEntity(m.world)
	outer, inner := obj.Bounds(zone.Position(), zone.Zone())
	z := &component.Zone{
		Outer:   outer,
		Inner:   inner,
		InOuter: outer.ContainsVect(carPos),
		InInner: inner.ContainsVect(carPos),
	}
	if err := ecs.Add(m.world, e, component.TransformComponent.Kind(), &component.Transform{Pos: zone.Position()}); err != nil {
		return err
	}
	if err := ecs.Add(m.world, e, component.ZoneComponent.Kind(), z); err != nil {
		return err
	}
	if err := ecs.Add(m.world, e, component.TriggerComponent.Kind(), &component.Trigger{Object: zone}); err != nil {
		return err
	}
	if a, ok := zone.(interface{ Anim() *anim.Player }); ok {
		if err := ecs.Add(m.world, e, component.AnimationComponent.Kind(), &component.Animation{Player: a.Anim()}); err != nil {
			return err
		}
	}
	return nil
}

func (m *MapLocation) Update() {
	if m.scheduler == nil {
		return
	}
	m.scheduler.Update(m.world)
}

func (m *MapLocation) Exit() {}

func (m *MapLocation) Name() string               { return m.name }
func (m *MapLocation) Level() *levels.Level       { return m.level }
func (m *MapLocation) World() *ecs.World          { return m.world }
func (m *MapLocation) Objects() []obj.TriggerZone { return m.objects }

// Input is the drive intent read by the drive system each frame.
func (m *MapLocation) Input() *component.DriveInput { return m.input }

// Object returns the object with id.
func (m *MapLocation) Object(id string) (obj.TriggerZone, bool) {
	for _, o := range m.objects {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}
