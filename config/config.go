package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const envPrefix = "ROADTRIP_"

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Environment   string `yaml:"environment"`
	LogLevel      string `yaml:"log_level"`
	StartLocation string `yaml:"start_location"`
	Save          Save   `yaml:"save"`
	HotReload     bool   `yaml:"hot_reload"`
	Seed          uint64 `yaml:"seed"`
	Debug         bool   `yaml:"debug"`
}

// Save selects where the ledger is persisted.
type Save struct {
	Backend     string `yaml:"backend"`
	Dir         string `yaml:"dir"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
	Profile     string `yaml:"profile"`
}

func Default() Config {
	return Config{
		Environment:   "development",
		LogLevel:      "info",
		StartLocation: "yard",
		Save: Save{
			Backend:     "file",
			Dir:         "saves",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "roadtrip:ledger:",
			Profile:     "default",
		},
	}
}

// Load layers an optional YAML file and ROADTRIP_* variables over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.StartLocation = getEnv("START_LOCATION", c.StartLocation)
	c.Save.Backend = getEnv("SAVE_BACKEND", c.Save.Backend)
	c.Save.Dir = getEnv("SAVE_DIR", c.Save.Dir)
	c.Save.RedisAddr = getEnv("REDIS_ADDR", c.Save.RedisAddr)
	c.Save.RedisPrefix = getEnv("REDIS_PREFIX", c.Save.RedisPrefix)
	c.Save.Profile = getEnv("PROFILE", c.Save.Profile)
	c.HotReload = getEnvBool("HOT_RELOAD", c.HotReload)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	if v := os.Getenv(envPrefix + "SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
}

func (c Config) Validate() error {
	switch c.Save.Backend {
	case "file":
		if c.Save.Dir == "" {
			return fmt.Errorf("%w: save.dir is required for the file backend", ErrInvalid)
		}
	case "redis":
		if c.Save.RedisAddr == "" {
			return fmt.Errorf("%w: save.redis_addr is required for the redis backend", ErrInvalid)
		}
	case "gdata", "memory":
	default:
		return fmt.Errorf("%w: unknown save backend %q", ErrInvalid, c.Save.Backend)
	}
	if c.Save.Profile == "" {
		return fmt.Errorf("%w: save.profile is empty", ErrInvalid)
	}
	if c.StartLocation == "" {
		return fmt.Errorf("%w: start_location is empty", ErrInvalid)
	}
	return nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
