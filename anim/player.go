package anim

import "fmt"

// Handle represents one Play call. It completes at most once and never
// completes if another clip replaced it first.
type Handle struct {
	clip      string
	done      bool
	cancelled bool
	listeners []func()
}

// Clip returns the clip name the handle was created for.
func (h *Handle) Clip() string {
	if h == nil {
		return ""
	}
	return h.clip
}

// Done reports whether the clip ran to its last frame.
func (h *Handle) Done() bool {
	return h != nil && h.done
}

// Cancelled reports whether another Play or Stop superseded the handle.
func (h *Handle) Cancelled() bool {
	return h != nil && h.cancelled
}

// OnComplete adds a listener fired once when the clip finishes. Adding to a
// finished handle fires immediately; adding to a cancelled one is ignored.
func (h *Handle) OnComplete(fn func()) {
	if h == nil || fn == nil || h.cancelled {
		return
	}
	if h.done {
		fn()
		return
	}
	h.listeners = append(h.listeners, fn)
}

func (h *Handle) complete() {
	if h.done || h.cancelled {
		return
	}
	h.done = true
	listeners := h.listeners
	h.listeners = nil
	for _, fn := range listeners {
		fn()
	}
}

func (h *Handle) cancel() {
	if h.done {
		return
	}
	h.cancelled = true
	h.listeners = nil
}

// Player holds the clip set of one object and at most one clip in flight.
type Player struct {
	clips   map[string]Clip
	current string
	cursor  int
	timer   int
	playing bool
	handle  *Handle
}

func NewPlayer() *Player {
	return &Player{clips: map[string]Clip{}}
}

// Define registers or replaces a clip.
func (p *Player) Define(name string, clip Clip) {
	if p.clips == nil {
		p.clips = map[string]Clip{}
	}
	p.clips[name] = clip
}

// Defined reports whether name was registered.
func (p *Player) Defined(name string) bool {
	_, ok := p.clips[name]
	return ok
}

// Play starts name from its first frame, superseding any clip in flight.
func (p *Player) Play(name string) (*Handle, error) {
	clip, ok := p.clips[name]
	if !ok || len(clip.Frames) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}
	if p.handle != nil {
		p.handle.cancel()
	}
	p.current = name
	p.cursor = 0
	p.timer = 0
	p.playing = true
	p.handle = &Handle{clip: name}
	return p.handle, nil
}

// Stop halts playback on the current frame without completing the handle.
func (p *Player) Stop() {
	p.playing = false
	if p.handle != nil {
		p.handle.cancel()
		p.handle = nil
	}
}

// Current returns the active clip name, empty before the first Play.
func (p *Player) Current() string {
	return p.current
}

// Playing reports whether a clip is in flight.
func (p *Player) Playing() bool {
	return p.playing
}

// Frame returns the sheet frame index currently shown, or 0 before any clip
// was played.
func (p *Player) Frame() int {
	clip, ok := p.clips[p.current]
	if !ok || len(clip.Frames) == 0 {
		return 0
	}
	return clip.Frames[p.cursor]
}

// Tick advances playback by one frame of the game loop.
func (p *Player) Tick() {
	if !p.playing {
		return
	}
	clip, ok := p.clips[p.current]
	if !ok || len(clip.Frames) == 0 {
		p.playing = false
		return
	}

	p.timer++
	if p.timer < clip.ticksPerFrame() {
		return
	}
	p.timer = 0
	p.cursor++
	if p.cursor < len(clip.Frames) {
		return
	}
	if clip.Loop {
		p.cursor = 0
		return
	}

	p.cursor = len(clip.Frames) - 1
	p.playing = false
	h := p.handle
	p.handle = nil
	if h != nil {
		h.complete()
	}
}

// Finish jumps to the last frame and completes the current handle.
func (p *Player) Finish() {
	if !p.playing {
		return
	}
	clip := p.clips[p.current]
	if clip.Loop {
		return
	}
	p.cursor = len(clip.Frames) - 1
	p.timer = 0
	p.playing = false
	h := p.handle
	p.handle = nil
	if h != nil {
		h.complete()
	}
}
