package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PlacedPart is a yard part with its drop position.
type PlacedPart struct {
	ID PartID  `yaml:"id" json:"id"`
	At Position `yaml:"at" json:"at"`
}

// Snapshot is the persisted form of a Ledger.
type Snapshot struct {
	Profile           string       `yaml:"profile" json:"profile"`
	SavedAt           time.Time    `yaml:"saved_at" json:"saved_at"`
	Flags             []string     `yaml:"flags,omitempty" json:"flags,omitempty"`
	PermanentFlags    []string     `yaml:"permanent_flags,omitempty" json:"permanent_flags,omitempty"`
	Yard              []PlacedPart `yaml:"yard,omitempty" json:"yard,omitempty"`
	Installed         []PartID     `yaml:"installed,omitempty" json:"installed,omitempty"`
	Drawn             []PartID     `yaml:"drawn,omitempty" json:"drawn,omitempty"`
	CompletedMissions []int        `yaml:"completed_missions,omitempty" json:"completed_missions,omitempty"`
	GivenMissions     []int        `yaml:"given_missions,omitempty" json:"given_missions,omitempty"`
	Medals            []int        `yaml:"medals,omitempty" json:"medals,omitempty"`
	PostalHistory     []PartID     `yaml:"postal_history,omitempty" json:"postal_history,omitempty"`
}

// NewProfileID returns a fresh save profile identifier.
func NewProfileID() string {
	return uuid.NewString()
}

// Snapshot copies the ledger into a persistable value.
func (l *Ledger) Snapshot(profile string) *Snapshot {
	s := &Snapshot{
		Profile:           profile,
		SavedAt:           time.Now().UTC(),
		Flags:             sortedStrings(l.flags),
		PermanentFlags:    sortedStrings(l.permanent),
		Installed:         sortedKeys(l.installed),
		Drawn:             sortedKeys(l.drawn),
		CompletedMissions: sortedKeys(l.completed),
		GivenMissions:     sortedKeys(l.given),
		Medals:            sortedKeys(l.medals),
		PostalHistory:     append([]PartID(nil), l.postal...),
	}
	for _, id := range l.YardParts() {
		s.Yard = append(s.Yard, PlacedPart{ID: id, At: l.yard[id]})
	}
	return s
}

// Restore replaces the ledger contents with s. A nil snapshot empties it.
func (l *Ledger) Restore(s *Snapshot) {
	l.reset()
	if s == nil {
		return
	}
	for _, f := range s.Flags {
		l.flags[f] = true
	}
	for _, f := range s.PermanentFlags {
		l.permanent[f] = true
	}
	for _, p := range s.Yard {
		l.yard[p.ID] = p.At
		l.drawn[p.ID] = true
	}
	for _, id := range s.Installed {
		l.installed[id] = true
		l.drawn[id] = true
	}
	for _, id := range s.Drawn {
		l.drawn[id] = true
	}
	for _, id := range s.CompletedMissions {
		l.completed[id] = true
	}
	for _, id := range s.GivenMissions {
		l.given[id] = true
	}
	for _, id := range s.Medals {
		l.medals[id] = true
	}
	l.postal = append([]PartID(nil), s.PostalHistory...)
}

func sortedStrings(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
