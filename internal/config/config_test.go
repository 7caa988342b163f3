package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), Config{})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := Default()
	if cfg.DB != want.DB || cfg.Sync != want.Sync || cfg.Wizard != want.Wizard {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if !strings.HasSuffix(cfg.DB, filepath.Join("lift", "lift.db")) {
		t.Errorf("DB = %q", cfg.DB)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, `
db = "/data/file.db"
api_url = "https://file.example.com"
username = "FileUser"

[sync]
max_attempts = 5
initial_delay = "50ms"

[wizard]
transition_lock = "1s"
`)

	cfg, err := Load(path, Config{APIURL: "https://flag.example.com", Debug: true})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"db from file", cfg.DB, "/data/file.db"},
		{"api url from flag", cfg.APIURL, "https://flag.example.com"},
		{"username from file", cfg.Username, "FileUser"},
		{"debug from flag", cfg.Debug, true},
		{"attempts from file", cfg.Policy().MaxAttempts, 5},
		{"initial delay from file", cfg.Policy().InitialDelay, 50 * time.Millisecond},
		{"max delay default", cfg.Policy().MaxDelay, 5 * time.Second},
		{"multiplier default", cfg.Policy().Multiplier, 2.0},
		{"transition lock from file", cfg.TransitionLock(), time.Second},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadUnknownKeysWarn(t *testing.T) {
	path := writeFile(t, `
username = "Eve"
colour = "blue"

[sync]
retries = 9
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Username != "Eve" {
		t.Errorf("Username = %q", cfg.Username)
	}
	if len(cfg.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2", cfg.Warnings)
	}
	joined := strings.Join(cfg.Warnings, "\n")
	if !strings.Contains(joined, "colour") || !strings.Contains(joined, "retries") {
		t.Errorf("Warnings = %v", cfg.Warnings)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "username = "},
		{"bad duration", "[sync]\ninitial_delay = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content), Config{}); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	in := Default()
	in.Username = "Eve"

	if err := Write(path, in); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if out.Username != "Eve" || out.Sync != in.Sync || out.Wizard != in.Wizard {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if err := Write(path, in); !errors.Is(err, os.ErrExist) {
		t.Errorf("second Write() error = %v, want ErrExist", err)
	}
}
