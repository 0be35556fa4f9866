package ledger

import "slices"

type MissionKind string

const (
	MissionTelephone MissionKind = "telephone"
	MissionMail      MissionKind = "mail"
)

// Mission is one catalog entry of work the player can be handed. Flag, when
// set, is put on the car for every trip while the mission is open.
type Mission struct {
	ID    int         `yaml:"id"`
	Kind  MissionKind `yaml:"kind"`
	Sound string      `yaml:"sound"`
	Image string      `yaml:"image"`
	Gift  bool        `yaml:"gift"`
	Flag  string      `yaml:"flag"`
}

// NextMission returns the lowest-id mission of kind that was neither given
// nor completed. An empty kind matches any mission.
func (l *Ledger) NextMission(missions []Mission, kind MissionKind) (Mission, bool) {
	sorted := slices.Clone(missions)
	slices.SortFunc(sorted, func(a, b Mission) int { return a.ID - b.ID })
	for _, m := range sorted {
		if l.given[m.ID] || l.completed[m.ID] {
			continue
		}
		if kind != "" && m.Kind != kind {
			continue
		}
		return m, true
	}
	return Mission{}, false
}

// OpenMissions returns the missions that were given and not yet completed,
// in id order.
func (l *Ledger) OpenMissions(missions []Mission) []Mission {
	var out []Mission
	for _, m := range missions {
		if l.given[m.ID] && !l.completed[m.ID] {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b Mission) int { return a.ID - b.ID })
	return out
}
