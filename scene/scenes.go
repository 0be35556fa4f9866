package scene

import (
	"time"

	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/sequence"
)

// cutscene is the shared shape of the talking locations: build a chain on
// entry, run it, animate the speakers.
type cutscene struct {
	st    *Stage
	chain *sequence.Chain
}

func (c *cutscene) run(st *Stage, name string, steps ...sequence.Step) {
	c.st = st
	c.chain = sequence.New(name, st.Deps(), steps...)
	if !c.chain.Start() {
		st.Log.Warn("scene: chain did not start", "chain", name)
	}
}

func (c *cutscene) Update() {
	if c.st != nil {
		c.st.tickActors()
	}
}

func (c *cutscene) Exit() {}

// Chain is the running cutscene, nil before Enter.
func (c *cutscene) Chain() *sequence.Chain { return c.chain }

const (
	lemonadeFlag = "#Lemonade"
	lemonadePart = ledger.PartID(162)
	tankPart     = ledger.PartID(172)
)

// StureStortand is the lemonade stand. Sture trades a lemonade for a tank,
// or asks for one.
type StureStortand struct {
	cutscene
}

func NewStureStortand() *StureStortand { return &StureStortand{} }

func (s *StureStortand) Enter(st *Stage) error {
	st.PlayAmbient("88e001v0")
	sture := st.Actor("sture")
	mulle := st.Actor("mulle")

	var steps []sequence.Step
	if st.Ledger.HasFlag(lemonadeFlag) {
		steps = append(steps,
			sequence.Line(sture, "88d005v0"),
			sequence.Line(mulle, "88d006v0"),
			Reward{Part: lemonadePart, Clear: []string{lemonadeFlag}, Mission: 3}.Step(st),
		)
	} else {
		steps = append(steps, sequence.Line(sture, "88d002v0"))
		if st.Car != nil && st.Car.HasPart(tankPart) {
			steps = append(steps, sequence.Line(mulle, "88d004v0"))
		} else {
			steps = append(steps, sequence.Line(mulle, "88d003v0"))
		}
	}
	steps = append(steps, sequence.Delay(time.Second), st.Go(World))
	s.run(st, "sture", steps...)
	return nil
}

const (
	treeStrength = 3
	treeFlag     = "#TreeRemoved"
	dingSound    = "00d035v0"
)

// TreeCar is the fallen tree across the road. A strong enough car pulls
// it away.
type TreeCar struct {
	cutscene
}

func NewTreeCar() *TreeCar { return &TreeCar{} }

func (t *TreeCar) Enter(st *Stage) error {
	mulle := st.Actor("mulle")

	if st.Ledger.HasFlag(treeFlag) {
		t.run(st, "treecar", st.Go(World))
		return nil
	}

	strength := 0
	if st.Car != nil {
		strength = st.Car.Property("strength")
	}
	if strength < treeStrength {
		t.run(st, "treecar",
			sequence.Line(mulle, "83d003v0"),
			st.Go(World),
		)
		return nil
	}

	t.run(st, "treecar",
		sequence.Line(mulle, "83d007v0"),
		sequence.Line(mulle, "83d008v0"),
		Reward{RandomPart: true, Sound: dingSound, Permanent: []string{treeFlag}, Mission: 5, Location: World}.Step(st),
	)
	return nil
}
