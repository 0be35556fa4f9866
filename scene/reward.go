package scene

import (
	"errors"
	"strconv"

	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/sequence"
)

// Reward is the closing effect of a cutscene. Its parts run in a fixed
// order inside one step: grant a part, update flags and the mission, stop
// the scene's loops, then leave.
type Reward struct {
	// Part is granted as is; RandomPart draws one from the reward pool.
	Part       ledger.PartID
	RandomPart bool
	Sound      string

	Flags     []string
	Permanent []string
	Clear     []string
	Mission   int

	Stop     []string
	Location string
}

// RewardSpec is the loosely typed form scripts hand over. Part is a part id
// or "random".
type RewardSpec struct {
	Part      string   `yaml:"part"`
	Sound     string   `yaml:"sound"`
	Flags     []string `yaml:"flags"`
	Permanent []string `yaml:"permanent"`
	Clear     []string `yaml:"clear"`
	Mission   int      `yaml:"mission"`
	Stop      []string `yaml:"stop"`
	Go        string   `yaml:"go"`
}

var errBadPart = errors.New("scene: reward part must be an id or \"random\"")

func (s RewardSpec) Reward() (Reward, error) {
	r := Reward{
		Sound:     s.Sound,
		Flags:     s.Flags,
		Permanent: s.Permanent,
		Clear:     s.Clear,
		Mission:   s.Mission,
		Stop:      s.Stop,
		Location:  s.Go,
	}
	switch s.Part {
	case "":
	case "random":
		r.RandomPart = true
	default:
		id, err := strconv.Atoi(s.Part)
		if err != nil || id <= 0 {
			return Reward{}, errBadPart
		}
		r.Part = ledger.PartID(id)
	}
	return r, nil
}

// Step wraps Apply as a chain step.
func (r Reward) Step(st *Stage) sequence.Step {
	return sequence.Do(func() { r.Apply(st) })
}

// Apply runs the reward now. It returns the granted part, or zero when none
// was granted. An exhausted pool or an already completed mission skips only
// the grant.
func (r Reward) Apply(st *Stage) ledger.PartID {
	var granted ledger.PartID
	if r.Mission > 0 && st.Ledger != nil && st.Ledger.MissionComplete(r.Mission) {
		st.Log.Debug("scene: mission already rewarded", "mission", r.Mission)
	} else {
		granted = r.grant(st)
	}

	if st.Ledger != nil {
		for _, f := range r.Flags {
			st.Ledger.SetFlag(f)
		}
		for _, f := range r.Permanent {
			st.Ledger.SetPermanentFlag(f)
		}
		for _, f := range r.Clear {
			st.Ledger.ClearFlag(f)
		}
		if r.Mission > 0 && st.Ledger.MarkMissionComplete(r.Mission) {
			st.Log.Info("scene: mission complete", "mission", r.Mission)
		}
	}

	if st.Audio != nil {
		for _, id := range r.Stop {
			st.Audio.Stop(id)
		}
	}

	if r.Location != "" {
		st.change(r.Location)
	}
	return granted
}

func (r Reward) grant(st *Stage) ledger.PartID {
	if st.Ledger == nil {
		st.Log.Error("scene: reward without ledger")
		return 0
	}
	id := r.Part
	if r.RandomPart {
		drawn, err := st.Ledger.DrawRandomUngrantedPart()
		if err != nil {
			st.Log.Warn("scene: no part to grant", "err", err)
			return 0
		}
		id = drawn
	}
	if id == 0 {
		return 0
	}
	pos, ok := st.Ledger.GrantPart(id)
	if !ok {
		st.Log.Debug("scene: part already owned", "part", id)
		return 0
	}
	st.Log.Info("scene: part granted", "part", id, "x", pos.X, "y", pos.Y)
	if r.Sound != "" && st.Audio != nil {
		st.Audio.Play(r.Sound, nil)
	}
	return id
}
