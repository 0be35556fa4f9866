// Package ledger records everything the player has earned: flags, missions,
// medals and car parts. Every write is idempotent and visible to the next read
// immediately. A Ledger is owned by the game loop and is not safe for
// concurrent use.
package ledger

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
)

// ErrPoolExhausted is returned when every reward part was already granted.
var ErrPoolExhausted = errors.New("ledger: reward pool exhausted")

type PartID int

// Position is a yard coordinate.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// YardArea bounds where granted parts are dropped. Parts land on a horizontal
// strip at height Y.
type YardArea struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	Y    float64 `yaml:"y"`
}

// DefaultYard is the drop strip in front of the garage.
var DefaultYard = YardArea{MinX: 290, MaxX: 580, Y: 440}

// Random returns a whole-pixel position inside the area.
func (a YardArea) Random(r *rand.Rand) Position {
	span := int(a.MaxX - a.MinX)
	if span < 0 {
		span = 0
	}
	return Position{X: a.MinX + float64(r.IntN(span+1)), Y: a.Y}
}

// Catalog is the static part data a ledger draws from.
type Catalog struct {
	RewardPool []PartID
	Postal     []PartID
	Properties map[PartID]map[string]int
	Yard       YardArea
}

// Ledger is the in-memory progression state of one save profile.
type Ledger struct {
	catalog Catalog
	rng     *rand.Rand
	log     *slog.Logger

	flags     map[string]bool
	permanent map[string]bool
	yard      map[PartID]Position
	installed map[PartID]bool
	drawn     map[PartID]bool
	completed map[int]bool
	given     map[int]bool
	medals    map[int]bool
	postal    []PartID
}

func New(catalog Catalog, rng *rand.Rand, log *slog.Logger) *Ledger {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = slog.Default()
	}
	if catalog.Yard == (YardArea{}) {
		catalog.Yard = DefaultYard
	}
	l := &Ledger{catalog: catalog, rng: rng, log: log}
	l.reset()
	return l
}

func (l *Ledger) reset() {
	l.flags = map[string]bool{}
	l.permanent = map[string]bool{}
	l.yard = map[PartID]Position{}
	l.installed = map[PartID]bool{}
	l.drawn = map[PartID]bool{}
	l.completed = map[int]bool{}
	l.given = map[int]bool{}
	l.medals = map[int]bool{}
	l.postal = nil
}

// Catalog returns the static part data.
func (l *Ledger) Catalog() Catalog {
	return l.catalog
}

// Rand returns the ledger's random source so callers share one seed.
func (l *Ledger) Rand() *rand.Rand {
	return l.rng
}

// HasFlag reports whether id is set, permanent or not.
func (l *Ledger) HasFlag(id string) bool {
	return l.flags[id] || l.permanent[id]
}

// SetFlag sets a removable flag.
func (l *Ledger) SetFlag(id string) {
	if id == "" || l.permanent[id] {
		return
	}
	l.flags[id] = true
}

// SetPermanentFlag sets a flag that ClearFlag and trip resets never remove.
func (l *Ledger) SetPermanentFlag(id string) {
	if id == "" {
		return
	}
	delete(l.flags, id)
	l.permanent[id] = true
}

// ClearFlag removes a removable flag. It reports false if the flag was unset
// or permanent.
func (l *Ledger) ClearFlag(id string) bool {
	if !l.flags[id] {
		return false
	}
	delete(l.flags, id)
	return true
}

// ResetTripFlags drops every removable flag, as when the car leaves the yard.
func (l *Ledger) ResetTripFlags() {
	l.flags = map[string]bool{}
}

// HasPart reports whether the part is owned: lying in the yard or installed.
func (l *Ledger) HasPart(id PartID) bool {
	_, inYard := l.yard[id]
	return inYard || l.installed[id]
}

// AddPart drops id in the yard at pos. An owned part stays where it is.
func (l *Ledger) AddPart(id PartID, pos Position) bool {
	if l.HasPart(id) {
		return false
	}
	l.yard[id] = pos
	l.drawn[id] = true
	return true
}

// GrantPart drops id at a random yard position and returns where it landed.
func (l *Ledger) GrantPart(id PartID) (Position, bool) {
	pos := l.catalog.Yard.Random(l.rng)
	if !l.AddPart(id, pos) {
		return Position{}, false
	}
	l.log.Debug("ledger: part granted", "part", id, "x", pos.X, "y", pos.Y)
	return pos, true
}

// YardPosition returns where a yard part lies.
func (l *Ledger) YardPosition(id PartID) (Position, bool) {
	pos, ok := l.yard[id]
	return pos, ok
}

// InstallPart moves an owned part from the yard onto the car.
func (l *Ledger) InstallPart(id PartID) bool {
	if _, ok := l.yard[id]; !ok {
		return false
	}
	delete(l.yard, id)
	l.installed[id] = true
	return true
}

// Installed reports whether id is fitted to the car.
func (l *Ledger) Installed(id PartID) bool {
	return l.installed[id]
}

// InstalledParts returns the fitted parts in ascending order.
func (l *Ledger) InstalledParts() []PartID {
	return sortedKeys(l.installed)
}

// YardParts returns the parts lying in the yard in ascending order.
func (l *Ledger) YardParts() []PartID {
	out := make([]PartID, 0, len(l.yard))
	for id := range l.yard {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Property sums a named property over the installed parts.
func (l *Ledger) Property(name string) int {
	total := 0
	for id := range l.installed {
		total += l.catalog.Properties[id][name]
	}
	return total
}

// DrawRandomUngrantedPart takes one part out of the reward pool. The result
// is never owned and never drawn before; ErrPoolExhausted is returned once
// nothing is left.
func (l *Ledger) DrawRandomUngrantedPart() (PartID, error) {
	candidates := make([]PartID, 0, len(l.catalog.RewardPool))
	for _, id := range l.catalog.RewardPool {
		if l.drawn[id] || l.HasPart(id) {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return 0, ErrPoolExhausted
	}
	id := candidates[l.rng.IntN(len(candidates))]
	l.drawn[id] = true
	return id, nil
}

// MarkMissionComplete records a finished mission. It reports true only the
// first time, so callers can hang the reward on the result.
func (l *Ledger) MarkMissionComplete(id int) bool {
	if l.completed[id] {
		return false
	}
	l.completed[id] = true
	return true
}

func (l *Ledger) MissionComplete(id int) bool {
	return l.completed[id]
}

// MarkMissionGiven records that the player received a mission.
func (l *Ledger) MarkMissionGiven(id int) bool {
	if l.given[id] {
		return false
	}
	l.given[id] = true
	return true
}

func (l *Ledger) MissionGiven(id int) bool {
	return l.given[id]
}

// CompletedMissions returns the completed mission ids in ascending order.
func (l *Ledger) CompletedMissions() []int {
	return sortedKeys(l.completed)
}

func (l *Ledger) HasMedal(id int) bool {
	return l.medals[id]
}

// AddMedal awards a medal once and reports whether it was new.
func (l *Ledger) AddMedal(id int) bool {
	if l.medals[id] {
		return false
	}
	l.medals[id] = true
	return true
}

// Medals returns the awarded medals in ascending order.
func (l *Ledger) Medals() []int {
	return sortedKeys(l.medals)
}

func sortedKeys[K PartID | int](m map[K]bool) []K {
	out := make([]K, 0, len(m))
	for k, ok := range m {
		if ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
