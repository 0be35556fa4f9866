package vehicle

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roadtrip/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeading(t *testing.T) {
	tests := []struct {
		dir  int
		want cp.Vector
	}{
		{1, cp.Vector{X: 0, Y: -1}},
		{5, cp.Vector{X: 1, Y: 0}},
		{9, cp.Vector{X: 0, Y: 1}},
		{13, cp.Vector{X: -1, Y: 0}},
		{17, cp.Vector{X: 0, Y: -1}},
		{0, cp.Vector{X: -0.3826834, Y: -0.9238795}},
	}
	for _, tc := range tests {
		got := Heading(tc.dir)
		assert.InDelta(t, tc.want.X, got.X, 1e-6, "dir %d", tc.dir)
		assert.InDelta(t, tc.want.Y, got.Y, 1e-6, "dir %d", tc.dir)
	}
}

func TestAdvanceAndStepBack(t *testing.T) {
	c := New(nil)
	c.TeleportTo(cp.Vector{X: 100, Y: 100}, 5)
	c.SetSpeed(2)

	for i := 0; i < 3; i++ {
		c.Advance()
	}
	assert.InDelta(t, 106, c.Position().X, 1e-9)

	c.StepBack(2)
	assert.InDelta(t, 102, c.Position().X, 1e-9)

	c.StepBack(2)
	assert.InDelta(t, 100, c.Position().X, 1e-9, "short history pushes against the heading")
}

func TestDisabledCarDoesNotMove(t *testing.T) {
	c := New(nil)
	c.SetSpeed(3)
	c.SetEnabled(false)
	c.Advance()
	assert.Equal(t, cp.Vector{}, c.Position())
	assert.Zero(t, c.Speed())
}

func TestSpeedIsClamped(t *testing.T) {
	c := New(nil)
	c.SetMaxSpeed(4)
	c.SetSpeed(10)
	assert.Equal(t, 4.0, c.Speed())
	c.SetSpeed(-10)
	assert.Equal(t, -2.0, c.Speed())
}

func TestPartsAndMedalsGoThroughLedger(t *testing.T) {
	l := ledger.New(ledger.Catalog{Properties: map[ledger.PartID]map[string]int{172: {"strength": 3}}}, nil, nil)
	c := New(l)

	require.True(t, l.AddPart(172, ledger.Position{}))
	assert.False(t, c.HasPart(172), "a yard part is not installed")
	require.True(t, l.InstallPart(172))
	assert.True(t, c.HasPart(172))
	assert.Equal(t, 3, c.Property("strength"))

	assert.True(t, c.AddMedal(2))
	assert.False(t, c.AddMedal(2))
	assert.True(t, c.HasMedal(2))
}
