package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"audio/00d035v0.wav", "audio/00d035v0.wav"},
		{"assets/audio/00d035v0.wav", "audio/00d035v0.wav"},
		{"/home/me/game/assets/audio/x.wav", "audio/x.wav"},
		{"/tmp/x.wav", "x.wav"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanAssetPath(tt.in), tt.in)
	}
}

func TestLoadFilePrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "audio"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "audio", "beep.wav"), []byte("RIFF"), 0o644))

	b, err := LoadFile("assets/audio/beep.wav")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), b)
	assert.True(t, Exists("audio/beep.wav"))
	assert.True(t, HasAudio("audio/missing.wav", "audio/beep.wav"))
}

func TestLoadFileMissing(t *testing.T) {
	old := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = old })

	_, err := LoadFile("audio/nothing.wav")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.False(t, Exists("audio/nothing.wav"))
	assert.False(t, HasAudio())

	_, err = LoadAudioPlayer("")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
