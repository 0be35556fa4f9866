package audio

import (
	"log/slog"

	"github.com/milk9111/roadtrip/sched"
)

// Timed is a headless Service: a sound "plays" for its catalog duration on
// the loop and then completes. Looping sounds play until stopped.
type Timed struct {
	catalog Catalog
	scope   *sched.Scope
	log     *slog.Logger
	voices  map[string]*sched.Timer
	loops   map[string]bool
	history []string
}

func NewTimed(catalog Catalog, scope *sched.Scope, log *slog.Logger) *Timed {
	if log == nil {
		log = slog.Default()
	}
	return &Timed{
		catalog: catalog,
		scope:   scope,
		log:     log,
		voices:  map[string]*sched.Timer{},
		loops:   map[string]bool{},
	}
}

func (t *Timed) Play(id string, onComplete func()) {
	t.Stop(id)
	t.history = append(t.history, id)

	snd, ok := t.catalog.Lookup(id)
	if !ok {
		t.log.Warn("audio: unknown sound, completing immediately", "sound", id)
	}
	if snd.Loop {
		t.loops[id] = true
		return
	}

	var timer *sched.Timer
	timer = t.scope.After(snd.Duration, func() {
		if t.voices[id] == timer {
			delete(t.voices, id)
		}
		if onComplete != nil {
			onComplete()
		}
	})
	if timer != nil {
		t.voices[id] = timer
	}
}

func (t *Timed) Stop(id string) {
	if timer, ok := t.voices[id]; ok {
		timer.Stop()
		delete(t.voices, id)
	}
	delete(t.loops, id)
}

func (t *Timed) Playing(id string) bool {
	if t.loops[id] {
		return true
	}
	_, ok := t.voices[id]
	return ok
}

// History returns every id passed to Play, oldest first.
func (t *Timed) History() []string {
	return append([]string(nil), t.history...)
}
