package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadtrip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
start_location: map27
save:
  backend: memory
  profile: alice
`), 0o644))
	t.Setenv("ROADTRIP_PROFILE", "bob")
	t.Setenv("ROADTRIP_HOT_RELOAD", "true")
	t.Setenv("ROADTRIP_SEED", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "map27", cfg.StartLocation)
	assert.Equal(t, "memory", cfg.Save.Backend)
	assert.Equal(t, "bob", cfg.Save.Profile)
	assert.True(t, cfg.HotReload)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "saves", cfg.Save.Dir, "unset fields keep their defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"file", func(c *Config) {}, true},
		{"gdata", func(c *Config) { c.Save.Backend = "gdata" }, true},
		{"redis", func(c *Config) { c.Save.Backend = "redis" }, true},
		{"redis without addr", func(c *Config) { c.Save.Backend = "redis"; c.Save.RedisAddr = "" }, false},
		{"file without dir", func(c *Config) { c.Save.Dir = "" }, false},
		{"unknown backend", func(c *Config) { c.Save.Backend = "floppy" }, false},
		{"no profile", func(c *Config) { c.Save.Profile = "" }, false},
		{"no start", func(c *Config) { c.StartLocation = "" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	} {
		assert.Equal(t, want, Config{LogLevel: in}.Level(), in)
	}
}
