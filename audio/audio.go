// Package audio is the sound service the scenes and map objects talk to.
package audio

import "time"

// Service plays catalog sounds by id. Completion callbacks fire at most once
// and never for a sound that was stopped or replaced.
type Service interface {
	Play(id string, onComplete func())
	Stop(id string)
	Playing(id string) bool
}

// Sound is one catalog entry.
type Sound struct {
	ID       string
	File     string
	Duration time.Duration
	Loop     bool
	Volume   float64
}

// Catalog maps sound ids to their entries.
type Catalog map[string]Sound

// Lookup returns the entry for id.
func (c Catalog) Lookup(id string) (Sound, bool) {
	s, ok := c[id]
	return s, ok
}
