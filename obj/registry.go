package obj

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/milk9111/roadtrip/prefabs"
)

var ErrUnknownType = errors.New("obj: unknown object type")

// Constructor builds an object from its level instance. It must not run
// side effects; those belong in OnCreate.
type Constructor func(inst Instance, svc *Services) (TriggerZone, error)

// Registry maps level object types to constructors and shared definitions.
type Registry struct {
	ctors map[string]Constructor
	specs map[string]prefabs.ObjectSpec
	log   *slog.Logger
}

// NewRegistry returns a registry with the built-in object types.
func NewRegistry(specs map[string]prefabs.ObjectSpec, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	r := &Registry{ctors: map[string]Constructor{}, specs: specs, log: log}
	r.Register("bridge", NewBridge)
	r.Register("teleport", NewTeleport)
	r.Register("sound", NewSound)
	r.Register("far_away", NewFarAway)
	r.Register("entrance", NewEntrance)
	return r
}

func (r *Registry) Register(kind string, ctor Constructor) {
	r.ctors[kind] = ctor
}

// SetSpecs swaps the shared definitions, e.g. after a hot reload. Objects
// already built keep theirs.
func (r *Registry) SetSpecs(specs map[string]prefabs.ObjectSpec) {
	r.specs = specs
}

func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Create builds inst and calls OnCreate on it exactly once.
func (r *Registry) Create(inst Instance, svc *Services) (TriggerZone, error) {
	ctor, ok := r.ctors[inst.Type]
	if !ok {
		return nil, fmt.Errorf("obj: create %s: %w: %q", inst.ID, ErrUnknownType, inst.Type)
	}
	if spec, ok := r.specs[inst.Type]; ok && inst.Spec.Type == "" {
		inst.Spec = spec
	}
	if svc == nil {
		svc = &Services{}
	}
	if svc.Log == nil {
		svc.Log = r.log
	}

	zone, err := ctor(inst, svc)
	if err != nil {
		return nil, fmt.Errorf("obj: create %s: %w", inst.ID, err)
	}
	zone.OnCreate()
	return zone, nil
}

// CreateAll builds every instance, logging and skipping the ones that fail.
func (r *Registry) CreateAll(insts []Instance, svc *Services) []TriggerZone {
	out := make([]TriggerZone, 0, len(insts))
	for _, inst := range insts {
		zone, err := r.Create(inst, svc)
		if err != nil {
			r.log.Warn("obj: skipping object", "id", inst.ID, "type", inst.Type, "err", err)
			continue
		}
		out = append(out, zone)
	}
	return out
}
