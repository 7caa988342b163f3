package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCreatesLogFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Info("statement saved", "id", "abc")

	if _, err := os.Stat(filepath.Dir(LogFile(configDir))); os.IsNotExist(err) {
		t.Errorf("log directory was not created")
	}
	if !strings.HasSuffix(LogFile(configDir), filepath.Join("logs", "lift.log")) {
		t.Errorf("unexpected log file path %q", LogFile(configDir))
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"normal mode drops debug", false, false},
		{"debug mode keeps debug", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Init(Config{Debug: tt.debug, Output: &buf}); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			t.Cleanup(func() { Logger = nil })

			Debug("debug line")
			Warn("warn line", "attempt", 2)

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "warn line") || !strings.Contains(out, "attempt=2") {
				t.Errorf("missing warn line in %q", out)
			}
		})
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil

	Debug("ignored")
	Info("ignored")
	Warn("ignored")
	Error("ignored")
}
