package audio

import (
	"log/slog"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/roadtrip/sched"
)

// PlayerLoader opens a decoded ebiten player for an asset path.
type PlayerLoader func(path string) (*ebaudio.Player, error)

type voice struct {
	player     *ebaudio.Player
	loop       bool
	onComplete func()
}

// Mixer plays catalog sounds through ebiten. Call Update once per tick to
// deliver completions and restart loops.
type Mixer struct {
	catalog Catalog
	load    PlayerLoader
	scope   *sched.Scope
	log     *slog.Logger
	cache   map[string]*ebaudio.Player
	voices  map[string]*voice
}

func NewMixer(catalog Catalog, load PlayerLoader, scope *sched.Scope, log *slog.Logger) *Mixer {
	if log == nil {
		log = slog.Default()
	}
	return &Mixer{
		catalog: catalog,
		load:    load,
		scope:   scope,
		log:     log,
		cache:   map[string]*ebaudio.Player{},
		voices:  map[string]*voice{},
	}
}

func (m *Mixer) Play(id string, onComplete func()) {
	m.Stop(id)

	player, snd, err := m.player(id)
	if err != nil {
		// Missing audio must not strand a waiting sequence.
		m.log.Warn("audio: cannot play sound", "sound", id, "err", err)
		if onComplete != nil {
			m.scope.Post(onComplete)
		}
		return
	}

	vol := snd.Volume
	if vol <= 0 {
		vol = 1
	}
	player.SetVolume(vol)
	if err := player.Rewind(); err != nil {
		m.log.Warn("audio: rewind failed", "sound", id, "err", err)
	}
	player.Play()
	m.voices[id] = &voice{player: player, loop: snd.Loop, onComplete: onComplete}
}

func (m *Mixer) Stop(id string) {
	v, ok := m.voices[id]
	if !ok {
		return
	}
	delete(m.voices, id)
	v.player.Pause()
}

func (m *Mixer) Playing(id string) bool {
	_, ok := m.voices[id]
	return ok
}

// Update restarts finished loops and completes finished one-shots.
func (m *Mixer) Update() {
	for id, v := range m.voices {
		if v.player.IsPlaying() {
			continue
		}
		if v.loop {
			_ = v.player.Rewind()
			v.player.Play()
			continue
		}
		delete(m.voices, id)
		if v.onComplete != nil {
			v.onComplete()
		}
	}
}

func (m *Mixer) player(id string) (*ebaudio.Player, Sound, error) {
	snd, ok := m.catalog.Lookup(id)
	if !ok {
		return nil, snd, errUnknownSound(id)
	}
	if p, ok := m.cache[id]; ok {
		return p, snd, nil
	}
	p, err := m.load(snd.File)
	if err != nil {
		return nil, snd, err
	}
	m.cache[id] = p
	return p, snd, nil
}
