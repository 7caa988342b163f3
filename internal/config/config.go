// Package config loads lift's optional TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/syncer"
)

const FileName = "config.toml"

// Duration reads TOML strings such as "200ms" or "5s".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type Sync struct {
	MaxAttempts  int      `toml:"max_attempts,omitempty"`
	InitialDelay Duration `toml:"initial_delay,omitempty"`
	MaxDelay     Duration `toml:"max_delay,omitempty"`
	Multiplier   float64  `toml:"multiplier,omitempty"`
	Timeout      Duration `toml:"timeout,omitempty"`
}

type Wizard struct {
	TransitionLock Duration `toml:"transition_lock,omitempty"`
}

// Config is the merged configuration. Zero fields mean "not set" until
// Default fills them.
type Config struct {
	DB       string `toml:"db,omitempty"`
	APIURL   string `toml:"api_url,omitempty"`
	Catalog  string `toml:"catalog,omitempty"`
	Username string `toml:"username,omitempty"`
	Email    string `toml:"email,omitempty"`
	Debug    bool   `toml:"debug,omitempty"`
	Sync     Sync   `toml:"sync,omitempty"`
	Wizard   Wizard `toml:"wizard,omitempty"`

	// Warnings lists unknown keys found in the file.
	Warnings []string `toml:"-"`
}

// Dir returns $XDG_CONFIG_HOME/lift, falling back to ~/.config/lift.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, constants.AppName)
}

func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Default returns built-in settings.
func Default() Config {
	return Config{
		DB: filepath.Join(Dir(), constants.AppName+".db"),
		Sync: Sync{
			MaxAttempts:  constants.DefaultSyncMaxAttempts,
			InitialDelay: Duration(constants.DefaultSyncInitialDelay),
			MaxDelay:     Duration(constants.DefaultSyncMaxDelay),
			Multiplier:   constants.DefaultSyncMultiplier,
			Timeout:      Duration(constants.DefaultSyncTimeout),
		},
		Wizard: Wizard{TransitionLock: Duration(constants.DefaultTransitionLock)},
	}
}

// LoadFile parses path. A missing file returns os.ErrNotExist.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(&cfg)

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		cfg = Config{}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, e := range strict.Errors {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in %s: %s", path, e.Key()))
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load merges defaults <- file <- overrides. A missing file is not an error.
func Load(path string, overrides Config) (Config, error) {
	cfg := Default()
	file, err := LoadFile(path)
	switch {
	case err == nil:
		cfg = Merge(cfg, file)
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, err
	}
	return Merge(cfg, overrides), nil
}

// Merge returns base with every set field of over applied.
func Merge(base, over Config) Config {
	if over.DB != "" {
		base.DB = over.DB
	}
	if over.APIURL != "" {
		base.APIURL = over.APIURL
	}
	if over.Catalog != "" {
		base.Catalog = over.Catalog
	}
	if over.Username != "" {
		base.Username = over.Username
	}
	if over.Email != "" {
		base.Email = over.Email
	}
	if over.Debug {
		base.Debug = true
	}
	if over.Sync.MaxAttempts > 0 {
		base.Sync.MaxAttempts = over.Sync.MaxAttempts
	}
	if over.Sync.InitialDelay > 0 {
		base.Sync.InitialDelay = over.Sync.InitialDelay
	}
	if over.Sync.MaxDelay > 0 {
		base.Sync.MaxDelay = over.Sync.MaxDelay
	}
	if over.Sync.Multiplier > 0 {
		base.Sync.Multiplier = over.Sync.Multiplier
	}
	if over.Sync.Timeout > 0 {
		base.Sync.Timeout = over.Sync.Timeout
	}
	if over.Wizard.TransitionLock > 0 {
		base.Wizard.TransitionLock = over.Wizard.TransitionLock
	}
	base.Warnings = append(base.Warnings, over.Warnings...)
	return base
}

func (c Config) Policy() syncer.Policy {
	return syncer.Policy{
		MaxAttempts:  c.Sync.MaxAttempts,
		InitialDelay: time.Duration(c.Sync.InitialDelay),
		MaxDelay:     time.Duration(c.Sync.MaxDelay),
		Multiplier:   c.Sync.Multiplier,
		Timeout:      time.Duration(c.Sync.Timeout),
	}
}

func (c Config) TransitionLock() time.Duration {
	return time.Duration(c.Wizard.TransitionLock)
}

// Write saves c to path unless a file is already there.
func Write(path string, c Config) error {
	if _, err := os.Stat(path); err == nil {
		return os.ErrExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
