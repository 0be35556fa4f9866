// Package assets resolves sound files named by the catalog, preferring the
// on-disk copy over what is embedded in the binary.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *
var assetsFS embed.FS

// Dir is the on-disk asset directory consulted before the embedded copy.
var Dir = "assets"

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process audio context, creating it on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fs.ErrNotExist
	}
	if b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

// Exists reports whether path resolves on disk or in the embedded copy.
func Exists(path string) bool {
	clean := cleanAssetPath(path)
	if clean == "" {
		return false
	}
	if _, err := os.Stat(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return true
	}
	_, err := fs.Stat(assetsFS, clean)
	return err == nil
}

// HasAudio reports whether any of the paths can be loaded.
func HasAudio(paths ...string) bool {
	for _, p := range paths {
		if Exists(p) {
			return true
		}
	}
	return false
}

// LoadAudioPlayer loads an audio asset and creates a player for it. It
// matches audio.PlayerLoader.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("assets: %q: %w", path, fs.ErrNotExist)
		}
		return nil, err
	}

	ctx := Context()
	reader := bytes.NewReader(b)
	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
