package scene

import (
	"time"

	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/sched"
	"github.com/milk9111/roadtrip/sequence"
)

const (
	ringSound     = "03e001v0"
	hangUpSound   = "04d001v0"
	shakeInterval = 100 * time.Millisecond
)

// Yard is home: the telephone rings with new missions, the mailbox holds
// letters, and driving out starts a new trip.
type Yard struct {
	cutscene
	shake  *sched.Timer
	shakes int
}

func NewYard() *Yard { return &Yard{} }

func (y *Yard) Enter(st *Stage) error {
	y.st = st
	if st.Catalogs == nil {
		return nil
	}
	m, ok := st.Ledger.NextMission(st.Catalogs.Missions, ledger.MissionTelephone)
	if !ok {
		return nil
	}
	st.Log.Info("scene: telephone", "mission", m.ID)
	y.shake = st.Scope.Every(shakeInterval, func() { y.shakes++ })
	y.run(st, "telephone",
		sequence.Sound(ringSound),
		sequence.Do(y.stopShaking),
		sequence.Sound(m.Sound),
		sequence.Sound(hangUpSound),
		sequence.Do(func() { st.Ledger.MarkMissionGiven(m.ID) }),
	)
	return nil
}

func (y *Yard) stopShaking() {
	y.shake.Stop()
	y.shake = nil
}

// Ringing reports whether the telephone is shaking.
func (y *Yard) Ringing() bool { return y.shake.Active() }

// ShakeOffset is the telephone's sideways jitter for this frame.
func (y *Yard) ShakeOffset() int {
	if !y.Ringing() {
		return 0
	}
	if y.shakes%2 == 0 {
		return -2
	}
	return 2
}

// OpenMailbox delivers the next mail mission, if any. Gift letters come with
// postal parts dropped in the yard; their ids are returned.
func (y *Yard) OpenMailbox() (ledger.Mission, []ledger.PartID, bool) {
	st := y.st
	if st == nil || st.Catalogs == nil {
		return ledger.Mission{}, nil, false
	}
	m, ok := st.Ledger.NextMission(st.Catalogs.Missions, ledger.MissionMail)
	if !ok {
		return ledger.Mission{}, nil, false
	}
	st.Ledger.MarkMissionGiven(m.ID)
	if st.Audio != nil && m.Sound != "" {
		st.Audio.Play(m.Sound, nil)
	}

	var gifts []ledger.PartID
	if m.Gift {
		for _, id := range st.Ledger.DrawPostalGifts() {
			if _, ok := st.Ledger.GrantPart(id); ok {
				gifts = append(gifts, id)
			}
		}
	}
	st.Log.Info("scene: mail", "mission", m.ID, "gifts", gifts)
	return m, gifts, true
}

// Leave drives out onto the road.
func (y *Yard) Leave() {
	if y.st != nil {
		y.st.change(World)
	}
}

// Exit starts a new trip: trip flags are cleared and the open missions put
// theirs back on the car.
func (y *Yard) Exit() {
	st := y.st
	if st == nil {
		return
	}
	st.Ledger.ResetTripFlags()
	if st.Catalogs == nil {
		return
	}
	for _, m := range st.Ledger.OpenMissions(st.Catalogs.Missions) {
		if m.Flag != "" {
			st.Ledger.SetFlag(m.Flag)
		}
	}
}
