package ledger

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(pool ...PartID) *Ledger {
	return New(Catalog{
		RewardPool: pool,
		Properties: map[PartID]map[string]int{
			10: {"strength": 2},
			11: {"strength": 1, "speed": 3},
		},
	}, rand.New(rand.NewPCG(1, 2)), nil)
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name      string
		run       func(l *Ledger) bool
		wantFlag  bool
		wantClear bool
	}{
		{
			name:     "removable_set_then_clear",
			run:      func(l *Ledger) bool { l.SetFlag("#Lemonade"); return l.ClearFlag("#Lemonade") },
			wantFlag: false, wantClear: true,
		},
		{
			name:     "permanent_survives_clear",
			run:      func(l *Ledger) bool { l.SetPermanentFlag("#Lemonade"); return l.ClearFlag("#Lemonade") },
			wantFlag: true, wantClear: false,
		},
		{
			name:     "permanent_set_twice_is_noop",
			run:      func(l *Ledger) bool { l.SetPermanentFlag("#Lemonade"); l.SetPermanentFlag("#Lemonade"); return false },
			wantFlag: true, wantClear: false,
		},
		{
			name:     "removable_cannot_downgrade_permanent",
			run:      func(l *Ledger) bool { l.SetPermanentFlag("#Lemonade"); l.SetFlag("#Lemonade"); return l.ClearFlag("#Lemonade") },
			wantFlag: true, wantClear: false,
		},
		{
			name:     "clear_unset",
			run:      func(l *Ledger) bool { return l.ClearFlag("#Lemonade") },
			wantFlag: false, wantClear: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger()
			assert.Equal(t, tc.wantClear, tc.run(l))
			assert.Equal(t, tc.wantFlag, l.HasFlag("#Lemonade"))
		})
	}
}

func TestResetTripFlagsKeepsPermanent(t *testing.T) {
	l := newTestLedger()
	l.SetFlag("#Lemonade")
	l.SetPermanentFlag("#OceanVisited")
	l.ResetTripFlags()
	assert.False(t, l.HasFlag("#Lemonade"))
	assert.True(t, l.HasFlag("#OceanVisited"))
}

func TestMarkMissionCompleteIsIdempotent(t *testing.T) {
	l := newTestLedger(1, 2, 3)

	rewards := 0
	for i := 0; i < 2; i++ {
		if l.MarkMissionComplete(6) {
			rewards++
		}
		assert.True(t, l.MissionComplete(6))
	}
	assert.Equal(t, 1, rewards)
	assert.Equal(t, []int{6}, l.CompletedMissions())
}

func TestDrawRandomUngrantedPartExhaustsPool(t *testing.T) {
	pool := []PartID{1, 2, 3, 4, 5, 6, 7}
	l := newTestLedger(pool...)

	seen := map[PartID]bool{}
	for range pool {
		id, err := l.DrawRandomUngrantedPart()
		require.NoError(t, err)
		assert.False(t, seen[id], "part %d drawn twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, len(pool))

	_, err := l.DrawRandomUngrantedPart()
	assert.True(t, errors.Is(err, ErrPoolExhausted))
}

func TestDrawSkipsOwnedParts(t *testing.T) {
	l := newTestLedger(1, 2)
	require.True(t, l.AddPart(1, Position{X: 300, Y: 440}))

	id, err := l.DrawRandomUngrantedPart()
	require.NoError(t, err)
	assert.Equal(t, PartID(2), id)

	_, err = l.DrawRandomUngrantedPart()
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestGrantPartLandsInYard(t *testing.T) {
	l := newTestLedger()
	for id := PartID(1); id <= 50; id++ {
		pos, ok := l.GrantPart(id)
		require.True(t, ok)
		assert.GreaterOrEqual(t, pos.X, DefaultYard.MinX)
		assert.LessOrEqual(t, pos.X, DefaultYard.MaxX)
		assert.Equal(t, DefaultYard.Y, pos.Y)
	}
	_, ok := l.GrantPart(1)
	assert.False(t, ok, "owned part is not granted twice")
}

func TestInstallAndProperties(t *testing.T) {
	l := newTestLedger()
	l.AddPart(10, Position{})
	l.AddPart(11, Position{})

	assert.False(t, l.InstallPart(12))
	require.True(t, l.InstallPart(10))
	require.True(t, l.InstallPart(11))

	assert.True(t, l.HasPart(10))
	assert.True(t, l.Installed(10))
	assert.Equal(t, 3, l.Property("strength"))
	assert.Equal(t, 3, l.Property("speed"))
	assert.Empty(t, l.YardParts())
	assert.Equal(t, []PartID{10, 11}, l.InstalledParts())
}

func TestMedals(t *testing.T) {
	l := newTestLedger()
	assert.True(t, l.AddMedal(2))
	assert.False(t, l.AddMedal(2))
	assert.True(t, l.HasMedal(2))
	assert.Equal(t, []int{2}, l.Medals())
}

func TestNextMission(t *testing.T) {
	missions := []Mission{
		{ID: 3, Kind: MissionMail, Sound: "50d003v0"},
		{ID: 1, Kind: MissionTelephone, Sound: "03d001v0"},
		{ID: 2, Kind: MissionTelephone, Sound: "03d002v0"},
	}
	l := newTestLedger()

	m, ok := l.NextMission(missions, MissionTelephone)
	require.True(t, ok)
	assert.Equal(t, 1, m.ID)

	l.MarkMissionGiven(1)
	l.MarkMissionComplete(2)
	_, ok = l.NextMission(missions, MissionTelephone)
	assert.False(t, ok)

	m, ok = l.NextMission(missions, "")
	require.True(t, ok)
	assert.Equal(t, 3, m.ID)

	l.MarkMissionGiven(3)
	open := l.OpenMissions(missions)
	require.Len(t, open, 2)
	assert.Equal(t, 1, open[0].ID)
	assert.Equal(t, 3, open[1].ID)
}

func TestDrawPostalGifts(t *testing.T) {
	l := New(Catalog{Postal: []PartID{13, 20, 17, 89, 120}}, rand.New(rand.NewPCG(3, 4)), nil)
	l.AddPart(20, Position{})

	first := l.DrawPostalGifts()
	assert.Len(t, first, 3)
	assert.NotContains(t, first, PartID(20))

	second := l.DrawPostalGifts()
	assert.Len(t, second, 1)
	for _, id := range second {
		assert.NotContains(t, first, id)
	}

	assert.Empty(t, l.DrawPostalGifts())
	assert.Len(t, l.PostalHistory(), 4)
}

func TestSnapshotRestore(t *testing.T) {
	l := newTestLedger(1, 2, 3)
	l.SetFlag("#Lemonade")
	l.SetPermanentFlag("#TreeRemoved")
	l.AddPart(10, Position{X: 300, Y: 440})
	l.AddPart(11, Position{X: 400, Y: 440})
	l.InstallPart(11)
	l.MarkMissionComplete(5)
	l.MarkMissionGiven(3)
	l.AddMedal(2)
	drawn, err := l.DrawRandomUngrantedPart()
	require.NoError(t, err)

	restored := newTestLedger(1, 2, 3)
	restored.Restore(l.Snapshot("p1"))

	assert.True(t, restored.HasFlag("#Lemonade"))
	assert.False(t, restored.ClearFlag("#TreeRemoved"))
	pos, ok := restored.YardPosition(10)
	require.True(t, ok)
	assert.Equal(t, Position{X: 300, Y: 440}, pos)
	assert.True(t, restored.Installed(11))
	assert.True(t, restored.MissionComplete(5))
	assert.True(t, restored.MissionGiven(3))
	assert.True(t, restored.HasMedal(2))

	for i := 0; i < 2; i++ {
		id, err := restored.DrawRandomUngrantedPart()
		require.NoError(t, err)
		assert.NotEqual(t, drawn, id)
	}
	_, err = restored.DrawRandomUngrantedPart()
	assert.ErrorIs(t, err, ErrPoolExhausted)
}
