package obj

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/prefabs"
)

// TriggerZone is the contract every map object satisfies. The zone system
// calls the callbacks on each crossing of the outer and inner volumes; an
// object must tolerate the same callback arriving again while it is still
// busy with the previous one.
type TriggerZone interface {
	ID() string
	Type() string
	Position() cp.Vector
	Zone() prefabs.ZoneSpec
	Active() bool

	OnCreate()
	OnEnterOuter(car Car)
	OnExitOuter(car Car)
	OnEnterInner(car Car)
	OnExitInner(car Car)
}

// Instance is one placed object as read from a level.
type Instance struct {
	ID    string
	Type  string
	Pos   cp.Vector
	Props map[string]any
	Spec  prefabs.ObjectSpec
}

// Base carries the shared object state. Embedding it gives no-op callbacks.
type Base struct {
	id       string
	kind     string
	pos      cp.Vector
	dir      int
	zone     prefabs.ZoneSpec
	anim     *anim.Player
	inactive bool
	log      *slog.Logger
}

func NewBase(inst Instance, log *slog.Logger) Base {
	if log == nil {
		log = slog.Default()
	}
	b := Base{
		id:   inst.ID,
		kind: inst.Type,
		pos:  inst.Pos,
		zone: inst.Spec.Zone,
		anim: anim.NewPlayer(),
		log:  log.With("object", inst.ID, "type", inst.Type),
	}
	for name, clip := range inst.Spec.Clips {
		b.anim.Define(name, clip.Clip())
	}
	return b
}

func (b *Base) ID() string             { return b.id }
func (b *Base) Type() string           { return b.kind }
func (b *Base) Position() cp.Vector    { return b.pos }
func (b *Base) Direction() int         { return b.dir }
func (b *Base) Zone() prefabs.ZoneSpec { return b.zone }

// Anim is the object's single animation channel.
func (b *Base) Anim() *anim.Player { return b.anim }

// Active reports whether the object still takes part in zone checks.
func (b *Base) Active() bool { return !b.inactive }

func (b *Base) SetActive(on bool) { b.inactive = !on }

func (b *Base) OnCreate()          {}
func (b *Base) OnEnterOuter(_ Car) {}
func (b *Base) OnExitOuter(_ Car)  {}
func (b *Base) OnEnterInner(_ Car) {}
func (b *Base) OnExitInner(_ Car)  {}

// Bounds returns the outer and inner volumes centred on pos.
func Bounds(pos cp.Vector, zone prefabs.ZoneSpec) (outer, inner cp.BB) {
	outer = cp.NewBBForExtents(pos, zone.Outer.W, zone.Outer.H)
	inner = cp.NewBBForExtents(pos, zone.Inner.W, zone.Inner.H)
	return outer, inner
}
