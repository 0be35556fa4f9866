package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/ecs"
	"github.com/milk9111/roadtrip/ecs/component"
	"github.com/milk9111/roadtrip/obj"
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probe records every callback it receives.
type probe struct {
	obj.Base
	name   string
	events *[]string
}

func (p *probe) OnEnterOuter(_ obj.Car) { *p.events = append(*p.events, p.name+" enter outer") }
func (p *probe) OnExitOuter(_ obj.Car)  { *p.events = append(*p.events, p.name+" exit outer") }
func (p *probe) OnEnterInner(_ obj.Car) { *p.events = append(*p.events, p.name+" enter inner") }
func (p *probe) OnExitInner(_ obj.Car)  { *p.events = append(*p.events, p.name+" exit inner") }

var probeZone = prefabs.ZoneSpec{Outer: prefabs.ExtentSpec{W: 50, H: 50}, Inner: prefabs.ExtentSpec{W: 10, H: 10}}

func addProbe(t *testing.T, w *ecs.World, name string, pos cp.Vector, events *[]string) *probe {
	t.Helper()
	p := &probe{Base: obj.NewBase(obj.Instance{ID: name, Type: "probe", Pos: pos, Spec: prefabs.ObjectSpec{Zone: probeZone}}, nil), name: name, events: events}
	e := ecs.CreateEntity(w)
	outer, inner := obj.Bounds(pos, p.Zone())
	require.NoError(t, ecs.Add(w, e, component.ZoneComponent.Kind(), &component.Zone{Outer: outer, Inner: inner}))
	require.NoError(t, ecs.Add(w, e, component.TriggerComponent.Kind(), &component.Trigger{Object: p}))
	return p
}

func addCar(t *testing.T, w *ecs.World) *vehicle.Car {
	t.Helper()
	car := vehicle.New(nil)
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.CarComponent.Kind(), &component.Car{Car: car}))
	require.NoError(t, ecs.Add(w, e, component.DriveInputComponent.Kind(), &component.DriveInput{}))
	return car
}

func TestZoneEdgesFireOnce(t *testing.T) {
	w := ecs.NewWorld()
	car := addCar(t, w)
	var events []string
	addProbe(t, w, "a", cp.Vector{}, &events)
	zs := NewZoneSystem()

	car.TeleportTo(cp.Vector{X: 200}, 0)
	zs.Update(w)
	assert.Empty(t, events)

	car.TeleportTo(cp.Vector{}, 0)
	zs.Update(w)
	zs.Update(w)
	assert.Equal(t, []string{"a enter outer", "a enter inner"}, events)

	events = nil
	car.TeleportTo(cp.Vector{X: 200}, 0)
	zs.Update(w)
	zs.Update(w)
	assert.Equal(t, []string{"a exit inner", "a exit outer"}, events)
}

func TestZoneOrderAcrossEntities(t *testing.T) {
	w := ecs.NewWorld()
	car := addCar(t, w)
	var events []string
	addProbe(t, w, "first", cp.Vector{X: 5}, &events)
	addProbe(t, w, "second", cp.Vector{X: -5}, &events)

	car.TeleportTo(cp.Vector{}, 0)
	NewZoneSystem().Update(w)
	assert.Equal(t, []string{
		"first enter outer", "first enter inner",
		"second enter outer", "second enter inner",
	}, events)
}

func TestZoneSilentWhileCarDisabled(t *testing.T) {
	w := ecs.NewWorld()
	car := addCar(t, w)
	var events []string
	addProbe(t, w, "a", cp.Vector{}, &events)
	zs := NewZoneSystem()

	car.SetEnabled(false)
	car.TeleportTo(cp.Vector{}, 0)
	zs.Update(w)
	assert.Empty(t, events)

	car.SetEnabled(true)
	zs.Update(w)
	assert.Equal(t, []string{"a enter outer", "a enter inner"}, events)
}

func TestZoneSkipsInactiveObjects(t *testing.T) {
	w := ecs.NewWorld()
	car := addCar(t, w)
	var events []string
	p := addProbe(t, w, "a", cp.Vector{}, &events)
	p.SetActive(false)

	car.TeleportTo(cp.Vector{}, 0)
	NewZoneSystem().Update(w)
	assert.Empty(t, events)
}

func TestContinuousReportingRepeats(t *testing.T) {
	w := ecs.NewWorld()
	car := addCar(t, w)
	var events []string
	addProbe(t, w, "a", cp.Vector{}, &events)
	zs := &ZoneSystem{Continuous: true}

	car.TeleportTo(cp.Vector{X: 20}, 0)
	zs.Update(w)
	zs.Update(w)
	assert.Equal(t, []string{
		"a enter outer", "a exit inner",
		"a enter outer", "a exit inner",
	}, events)
}

func TestDriveSystem(t *testing.T) {
	w := ecs.NewWorld()
	car := addCar(t, w)
	e, ok := ecs.First(w, component.DriveInputComponent.Kind())
	require.True(t, ok)
	in, _ := ecs.Get(w, e, component.DriveInputComponent.Kind())

	in.Throttle = 2
	in.Turn = 4
	NewDriveSystem().Update(w)

	assert.Equal(t, 5, car.Direction())
	assert.Zero(t, in.Turn)
	assert.InDelta(t, 2, car.Position().X, 1e-9)
	assert.InDelta(t, 0, car.Position().Y, 1e-9)

	car.SetEnabled(false)
	before := car.Position()
	NewDriveSystem().Update(w)
	assert.Equal(t, before, car.Position())
}

func TestAnimationSystemTicks(t *testing.T) {
	w := ecs.NewWorld()
	p := anim.NewPlayer()
	p.Define("open", anim.Clip{Frames: anim.Span(0, 3), FPS: 60})
	_, err := p.Play("open")
	require.NoError(t, err)

	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Player: p}))

	sys := NewAnimationSystem()
	sys.Update(w)
	sys.Update(w)
	assert.Equal(t, 2, p.Frame())
}
