// Package audiotest provides an audio.Service whose sounds finish only when a
// test says so.
package audiotest

// Recorder implements audio.Service and records every call.
type Recorder struct {
	played  []string
	stopped []string
	pending map[string]func()
	playing map[string]bool
}

func NewRecorder() *Recorder {
	return &Recorder{pending: map[string]func(){}, playing: map[string]bool{}}
}

func (r *Recorder) Play(id string, onComplete func()) {
	r.played = append(r.played, id)
	r.playing[id] = true
	if onComplete != nil {
		r.pending[id] = onComplete
	} else {
		delete(r.pending, id)
	}
}

func (r *Recorder) Stop(id string) {
	r.stopped = append(r.stopped, id)
	delete(r.playing, id)
	delete(r.pending, id)
}

func (r *Recorder) Playing(id string) bool {
	return r.playing[id]
}

// Complete finishes id as if it played to the end. It reports false when id
// is not playing.
func (r *Recorder) Complete(id string) bool {
	if !r.playing[id] {
		return false
	}
	delete(r.playing, id)
	fn := r.pending[id]
	delete(r.pending, id)
	if fn != nil {
		fn()
	}
	return true
}

// Played returns every id passed to Play, oldest first.
func (r *Recorder) Played() []string {
	return append([]string(nil), r.played...)
}

// Stopped returns every id passed to Stop, oldest first.
func (r *Recorder) Stopped() []string {
	return append([]string(nil), r.stopped...)
}

// Count returns how many times id was played.
func (r *Recorder) Count(id string) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}
