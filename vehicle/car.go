// Package vehicle holds the player's car. Map objects steer it only through
// the command methods; the motion fields are private.
package vehicle

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/ledger"
)

// Directions is the number of headings the car sprite is drawn in.
const Directions = 16

const historyLen = 32

// Car is the player's vehicle.
type Car struct {
	pos      cp.Vector
	dir      int
	speed    float64
	maxSpeed float64
	enabled  bool
	history  []cp.Vector
	ledger   *ledger.Ledger
}

func New(l *ledger.Ledger) *Car {
	return &Car{dir: 1, maxSpeed: 4, enabled: true, ledger: l}
}

func (c *Car) Position() cp.Vector { return c.pos }
func (c *Car) Direction() int      { return c.dir }
func (c *Car) Speed() float64      { return c.speed }
func (c *Car) Enabled() bool       { return c.enabled }

// Ledger returns the progression ledger the car reports to.
func (c *Car) Ledger() *ledger.Ledger { return c.ledger }

// SetEnabled gates driving and zone callbacks. A disabled car also stops.
func (c *Car) SetEnabled(on bool) {
	c.enabled = on
	if !on {
		c.speed = 0
	}
}

// SetSpeed clamps v to [-max/2, max].
func (c *Car) SetSpeed(v float64) {
	c.speed = math.Max(-c.maxSpeed/2, math.Min(c.maxSpeed, v))
}

// SetMaxSpeed changes the forward speed limit.
func (c *Car) SetMaxSpeed(v float64) {
	if v > 0 {
		c.maxSpeed = v
	}
}

// StepBack undoes the last n moves. With too little history the car is
// pushed n units against its heading instead.
func (c *Car) StepBack(n int) {
	if n <= 0 {
		return
	}
	if len(c.history) >= n {
		c.pos = c.history[len(c.history)-n]
		c.history = c.history[:len(c.history)-n]
		return
	}
	c.history = c.history[:0]
	c.pos = c.pos.Sub(Heading(c.dir).Mult(float64(n)))
}

// TeleportTo places the car at pos facing dir. Zero dir keeps the heading.
func (c *Car) TeleportTo(pos cp.Vector, dir int) {
	c.pos = pos
	if dir != 0 {
		c.dir = normalizeDir(dir)
	}
	c.history = c.history[:0]
}

// Steer rotates the heading by delta sixteenths of a turn.
func (c *Car) Steer(delta int) {
	c.dir = normalizeDir(c.dir + delta)
}

// Advance moves the car one tick along its heading.
func (c *Car) Advance() {
	if !c.enabled || c.speed == 0 {
		return
	}
	if len(c.history) == historyLen {
		copy(c.history, c.history[1:])
		c.history = c.history[:historyLen-1]
	}
	c.history = append(c.history, c.pos)
	c.pos = c.pos.Add(Heading(c.dir).Mult(c.speed))
}

// HasPart reports whether id is installed on the car.
func (c *Car) HasPart(id ledger.PartID) bool {
	return c.ledger != nil && c.ledger.Installed(id)
}

// Property sums a named property over the installed parts.
func (c *Car) Property(name string) int {
	if c.ledger == nil {
		return 0
	}
	return c.ledger.Property(name)
}

func (c *Car) HasMedal(id int) bool {
	return c.ledger != nil && c.ledger.HasMedal(id)
}

func (c *Car) AddMedal(id int) bool {
	return c.ledger != nil && c.ledger.AddMedal(id)
}

// Heading returns the unit vector for a direction. Direction 1 faces up the
// screen and the index grows clockwise.
func Heading(dir int) cp.Vector {
	a := -math.Pi/2 + float64(normalizeDir(dir)-1)*2*math.Pi/Directions
	return cp.ForAngle(a)
}

func normalizeDir(d int) int {
	d = (d - 1) % Directions
	if d < 0 {
		d += Directions
	}
	return d + 1
}
