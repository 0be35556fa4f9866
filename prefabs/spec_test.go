package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/roadtrip/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogs(t *testing.T) {
	cats, err := LoadCatalogs()
	require.NoError(t, err)

	bridge, ok := cats.Objects["bridge"]
	require.True(t, ok)
	assert.Equal(t, 37, bridge.PassFrame)
	assert.Equal(t, 2, bridge.StepBack)
	require.Contains(t, bridge.Clips, "opening")
	opening := bridge.Clips["opening"].Clip()
	closing := bridge.Clips["closing"].Clip()
	assert.Equal(t, 0, opening.Frames[0])
	assert.Equal(t, opening.Frames[len(opening.Frames)-1], closing.Frames[0])

	teleport := cats.Objects["teleport"]
	assert.Equal(t, 200*time.Millisecond, teleport.Fade())
	assert.Equal(t, 500*time.Millisecond, teleport.Cooldown())

	assert.NotEmpty(t, cats.Parts.RewardPool)
	assert.NotContains(t, cats.Parts.RewardPool, ledger.PartID(162), "fixed rewards stay out of the random pool")
	assert.Equal(t, 1, cats.Parts.Properties[172]["strength"])
	assert.NotEmpty(t, cats.Parts.Postal)
	assert.Equal(t, 290.0, cats.Parts.Yard.MinX)

	_, ok = cats.Sounds.Lookup("88e001v0")
	assert.True(t, ok)
	assert.True(t, cats.Sounds["88e001v0"].Loop)

	assert.NotEmpty(t, cats.Missions)
}

func TestScriptsAreEmbedded(t *testing.T) {
	for _, name := range []string{"luddelabb", "scripts/ocean.tengo", "prefabs/scripts/ocean"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}

func TestDecodeProps(t *testing.T) {
	props := map[string]interface{}{"target_x": 100.0, "target_y": 200, "target_location": "mapB", "direction": 5}
	tp, err := DecodeProps[TeleportProps](props)
	require.NoError(t, err)
	require.NotNil(t, tp.TargetX)
	require.NotNil(t, tp.TargetY)
	assert.Equal(t, 100.0, *tp.TargetX)
	assert.Equal(t, 200.0, *tp.TargetY)
	assert.Equal(t, "mapB", tp.TargetLocation)
	assert.Equal(t, 5, tp.Direction)

	missing, err := DecodeProps[TeleportProps](map[string]interface{}{"target_location": "mapB"})
	require.NoError(t, err)
	assert.Nil(t, missing.TargetX)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/objects.yaml", ChangeSpec, true},
		{"prefabs/x.YML", ChangeSpec, true},
		{"prefabs/scripts/ocean.tengo", ChangeScript, true},
		{"levels/map27.json", ChangeLevel, true},
		{"prefabs/notes.txt", 0, false},
	}
	for _, tc := range tests {
		kind, ok := classify(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.kind, kind, tc.path)
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "objects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("objects: []\n"), 0o644))

	select {
	case c := <-w.Changes:
		assert.Equal(t, ChangeSpec, c.Kind)
		assert.Equal(t, "objects.yaml", filepath.Base(c.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherReportsNestedScriptEdits(t *testing.T) {
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.Mkdir(scripts, 0o755))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(scripts, "ocean.tengo"), []byte("build := func(engine) {}\n"), 0o644))

	select {
	case c := <-w.Changes:
		assert.Equal(t, ChangeScript, c.Kind)
		assert.Equal(t, "ocean.tengo", filepath.Base(c.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nowhere"))
	require.Error(t, err)
}
