// Package session wires a playable session out of the config: catalogs,
// save store, ledger, car and the scene director. Both entry points use it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/milk9111/roadtrip/audio"
	"github.com/milk9111/roadtrip/config"
	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/levels"
	"github.com/milk9111/roadtrip/logging"
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/scene"
	"github.com/milk9111/roadtrip/sched"
	"github.com/milk9111/roadtrip/vehicle"
	"github.com/milk9111/roadtrip/viewport"
)

const appName = "roadtrip"

// AudioFactory builds the sound service once the catalog is known. scope
// lives as long as the session.
type AudioFactory func(catalog audio.Catalog, scope *sched.Scope, log *slog.Logger) audio.Service

// Headless plays sounds on the loop clock without an audio device.
func Headless(catalog audio.Catalog, scope *sched.Scope, log *slog.Logger) audio.Service {
	return audio.NewTimed(catalog, scope, log)
}

type Session struct {
	Config   config.Config
	Loop     *sched.Loop
	Audio    audio.Service
	Catalogs *prefabs.Catalogs
	Ledger   *ledger.Ledger
	Car      *vehicle.Car
	Fader    *viewport.Fader
	Director *scene.Director
	Log      *slog.Logger

	store   ledger.Store
	closers []func() error
	watcher *prefabs.Watcher
}

// Open builds a session and enters cfg.StartLocation. newAudio may be nil.
func Open(ctx context.Context, cfg config.Config, newAudio AudioFactory, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	if newAudio == nil {
		newAudio = Headless
	}

	cats, err := prefabs.LoadCatalogs()
	if err != nil {
		return nil, fmt.Errorf("session: open: %w", err)
	}

	s := &Session{
		Config:   cfg,
		Loop:     sched.NewLoop(),
		Catalogs: cats,
		Fader:    viewport.NewFader(),
		Log:      log,
	}

	store, closeStore, err := OpenStore(ctx, cfg.Save)
	if err != nil {
		return nil, fmt.Errorf("session: open: %w", err)
	}
	s.store = store
	if closeStore != nil {
		s.closers = append(s.closers, closeStore)
	}

	s.Audio = newAudio(cats.Sounds, s.Loop.Scope(), log)
	s.Ledger = ledger.New(cats.Parts, newRand(cfg.Seed), log)
	s.Car = vehicle.New(s.Ledger)
	s.Director = scene.NewDirector(&scene.Services{
		Loop:     s.Loop,
		Audio:    s.Audio,
		Ledger:   s.Ledger,
		Car:      s.Car,
		Viewport: s.Fader,
		Store:    store,
		Profile:  cfg.Save.Profile,
		Catalogs: cats,
		Log:      log,
	})

	if err := s.Director.Load(ctx); err != nil {
		s.closeAll()
		return nil, fmt.Errorf("session: open: %w", err)
	}
	if err := s.Director.ChangeLocation(cfg.StartLocation, true); err != nil {
		s.closeAll()
		return nil, fmt.Errorf("session: open: %w", err)
	}

	if cfg.HotReload {
		s.watch()
	}

	log.Info("session: started", "location", s.Director.Current(), "profile", cfg.Save.Profile, "backend", cfg.Save.Backend)
	return s, nil
}

// OpenStore returns the save backend cfg names, plus a closer when the
// backend holds a connection.
func OpenStore(ctx context.Context, cfg config.Save) (ledger.Store, func() error, error) {
	switch cfg.Backend {
	case "file":
		return ledger.NewFileStore(cfg.Dir), nil, nil
	case "gdata":
		store, err := ledger.OpenGdataStore(appName)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "redis":
		client, err := ledger.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return ledger.NewRedisStore(client, cfg.RedisPrefix), client.Close, nil
	case "memory":
		return ledger.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("session: save backend %q: %w", cfg.Backend, config.ErrInvalid)
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// watch follows the on-disk prefab and level directories that exist. Script
// edits under prefabs/scripts are picked up through the prefab directory.
func (s *Session) watch() {
	var dirs []string
	for _, dir := range []string{prefabs.Dir, levels.Dir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		s.Log.Debug("session: no definition directories on disk, hot reload off")
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		s.Log.Warn("session: hot reload disabled", "err", err)
		return
	}
	s.watcher = w
	s.closers = append(s.closers, w.Close)
}

// Update applies pending definition edits and runs one frame.
func (s *Session) Update(dt time.Duration) {
	s.drainReloads()
	s.Director.Update(dt)
}

func (s *Session) drainReloads() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-s.watcher.Changes:
			if !ok {
				return
			}
			if err := s.Director.Reload(change); err != nil {
				logging.WithError(s.Log, err).Error("session: reload", "path", change.Path)
			}
		case err, ok := <-s.watcher.Errors:
			if ok {
				logging.WithError(s.Log, err).Warn("session: watcher")
			}
		default:
			return
		}
	}
}

// Map returns the current driving map, if the session is on one.
func (s *Session) Map() (*scene.MapLocation, bool) {
	m, ok := s.Director.Location().(*scene.MapLocation)
	return m, ok
}

// Drive sets the drive intent for the next frame. Off a map it does nothing.
func (s *Session) Drive(throttle float64, turn int) {
	m, ok := s.Map()
	if !ok || m.Input() == nil {
		return
	}
	m.Input().Throttle = throttle
	m.Input().Turn = turn
}

// OpenMailbox checks the mailbox when the session is in the yard.
func (s *Session) OpenMailbox() (ledger.Mission, []ledger.PartID, bool) {
	y, ok := s.Director.Location().(*scene.Yard)
	if !ok {
		return ledger.Mission{}, nil, false
	}
	return y.OpenMailbox()
}

// Leave drives out of the yard.
func (s *Session) Leave() bool {
	y, ok := s.Director.Location().(*scene.Yard)
	if ok {
		y.Leave()
	}
	return ok
}

// Close saves the ledger and releases the store and watcher.
func (s *Session) Close(ctx context.Context) error {
	err := s.Director.Close(ctx)
	return errors.Join(err, s.closeAll())
}

func (s *Session) closeAll() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
