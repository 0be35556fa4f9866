package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/levels"
	"github.com/milk9111/roadtrip/logging"
	"github.com/milk9111/roadtrip/obj"
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/sched"
)

var ErrUnknownLocation = errors.New("scene: unknown location")

const (
	// World names the map the car last drove on.
	World = "world"
	// DefaultMap is where World points before any map was visited.
	DefaultMap = "map03"
)

// Factory builds a fresh location each time it is entered.
type Factory func() Location

// Director owns the session and swaps the current location.
type Director struct {
	svc       *Services
	session   *sched.Scope
	factories map[string]Factory
	maps      map[string]bool

	stage   *Stage
	current Location
	lastMap string

	pending    string
	hasPending bool
	swapping   bool

	log *slog.Logger
}

func NewDirector(svc *Services) *Director {
	if svc.Log == nil {
		svc.Log = slog.Default()
	}
	if svc.Registry == nil {
		var specs map[string]prefabs.ObjectSpec
		if svc.Catalogs != nil {
			specs = svc.Catalogs.Objects
		}
		svc.Registry = obj.NewRegistry(specs, svc.Log)
	}
	d := &Director{
		svc:       svc,
		factories: map[string]Factory{},
		maps:      map[string]bool{},
		log:       svc.Log,
	}
	d.session = svc.Loop.Scope()

	for _, name := range levels.Names() {
		d.RegisterMap(name)
	}
	d.Register("yard", func() Location { return NewYard() })
	d.Register("sture", func() Location { return NewStureStortand() })
	d.Register("treecar", func() Location { return NewTreeCar() })
	d.Register("luddelabb", func() Location { return NewScripted("luddelabb", "91e001v0") })
	d.Register("ocean", func() Location { return NewScripted("ocean", "93e001v0") })
	return d
}

// Register adds or replaces a location.
func (d *Director) Register(id string, f Factory) {
	d.factories[id] = f
	delete(d.maps, id)
}

// RegisterMap adds a driving map loaded from levels.
func (d *Director) RegisterMap(name string) {
	d.factories[name] = func() Location { return NewMapLocation(name) }
	d.maps[name] = true
}

func (d *Director) Locations() []string {
	out := make([]string, 0, len(d.factories))
	for id := range d.factories {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Current returns the id of the active location, empty before the first.
func (d *Director) Current() string {
	if d.stage == nil {
		return ""
	}
	return d.stage.ID
}

func (d *Director) Location() Location  { return d.current }
func (d *Director) Stage() *Stage       { return d.stage }
func (d *Director) Services() *Services { return d.svc }

// LastMap is the map World currently resolves to.
func (d *Director) LastMap() string {
	if d.lastMap == "" {
		return DefaultMap
	}
	return d.lastMap
}

// Pending reports a queued location change.
func (d *Director) Pending() (string, bool) {
	return d.pending, d.hasPending
}

// ChangeLocation switches to id. With immediate unset the switch happens at
// the start of the next Update; a later request replaces a queued one.
func (d *Director) ChangeLocation(id string, immediate bool) error {
	resolved, err := d.resolve(id)
	if err != nil {
		return err
	}
	if !immediate || d.swapping {
		d.pending = resolved
		d.hasPending = true
		return nil
	}
	return d.swap(resolved)
}

func (d *Director) resolve(id string) (string, error) {
	if id == World {
		id = d.LastMap()
	}
	if _, ok := d.factories[id]; !ok {
		return "", fmt.Errorf("scene: change location %q: %w", id, ErrUnknownLocation)
	}
	return id, nil
}

func (d *Director) swap(id string) error {
	d.swapping = true
	defer func() { d.swapping = false }()

	d.leave()
	if err := d.Save(context.Background()); err != nil {
		d.log.Error("scene: save on location change", "err", err)
	}

	st := &Stage{
		Services: d.svc,
		ID:       id,
		Scope:    d.svc.Loop.Scope(),
		Session:  d.session,
		Director: d,
		Log:      logging.WithLocation(d.log, id),
	}
	loc := d.factories[id]()
	d.stage = st
	d.current = loc
	if err := loc.Enter(st); err != nil {
		d.leave()
		return fmt.Errorf("scene: enter %s: %w", id, err)
	}
	if d.maps[id] {
		d.lastMap = id
	}
	d.log.Info("scene: location entered", "location", id)
	return nil
}

func (d *Director) leave() {
	if d.current == nil {
		return
	}
	d.current.Exit()
	d.stage.StopAmbient()
	d.stage.Scope.Close()
	d.log.Debug("scene: location left", "location", d.stage.ID)
	d.current = nil
	d.stage = nil
}

// Update runs one frame: a queued location change, the location itself,
// then timers, the fade and audio.
func (d *Director) Update(dt time.Duration) {
	if d.hasPending {
		id := d.pending
		d.pending, d.hasPending = "", false
		if err := d.swap(id); err != nil {
			d.log.Error("scene: change location", "location", id, "err", err)
		}
	}
	if d.current != nil {
		d.current.Update()
	}
	d.svc.Loop.Advance(dt)
	if d.svc.Viewport != nil {
		d.svc.Viewport.Update(dt)
	}
	if mixer, ok := d.svc.Audio.(interface{ Update() }); ok {
		mixer.Update()
	}
}

// Load restores the ledger from the store. A missing save leaves it as is.
func (d *Director) Load(ctx context.Context) error {
	if d.svc.Store == nil {
		return nil
	}
	snap, err := d.svc.Store.Load(ctx, d.svc.Profile)
	if errors.Is(err, ledger.ErrNoSave) {
		d.log.Info("scene: no save, starting fresh", "profile", d.svc.Profile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("scene: load: %w", err)
	}
	d.svc.Ledger.Restore(snap)
	return nil
}

func (d *Director) Save(ctx context.Context) error {
	if d.svc.Store == nil {
		return nil
	}
	snap := d.svc.Ledger.Snapshot(d.svc.Profile)
	if err := d.svc.Store.Save(ctx, d.svc.Profile, snap); err != nil {
		return fmt.Errorf("scene: save: %w", err)
	}
	return nil
}

// Reload re-reads the definition files after an edit. Objects already
// placed keep their old definitions until their location is re-entered.
func (d *Director) Reload(change prefabs.Change) error {
	switch change.Kind {
	case prefabs.ChangeScript:
		d.log.Info("scene: script changed, applies on next entry", "path", change.Path)
		return nil
	case prefabs.ChangeLevel:
		name := strings.TrimSuffix(filepath.Base(change.Path), filepath.Ext(change.Path))
		if _, known := d.factories[name]; !known {
			if _, err := levels.Load(name); err != nil {
				return fmt.Errorf("scene: reload: %w", err)
			}
			d.RegisterMap(name)
		}
		d.log.Info("scene: level changed, applies on next entry", "level", name)
		return nil
	}
	cats, err := prefabs.LoadCatalogs()
	if err != nil {
		return fmt.Errorf("scene: reload: %w", err)
	}
	d.svc.Catalogs = cats
	d.svc.Registry.SetSpecs(cats.Objects)
	d.log.Info("scene: definitions reloaded", "path", change.Path)
	return nil
}

// Close leaves the current location, saves, and ends the session scope.
func (d *Director) Close(ctx context.Context) error {
	d.leave()
	d.session.Close()
	return d.Save(ctx)
}
