package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       func(dir string) Config
		wantLevel log.Level
	}{
		{name: "default", cfg: func(dir string) Config { return Config{ConfigDir: dir} }, wantLevel: log.WarnLevel},
		{name: "debug", cfg: func(dir string) Config { return Config{ConfigDir: dir, Debug: true} }, wantLevel: log.DebugLevel},
		{name: "echo", cfg: func(dir string) Config { return Config{ConfigDir: dir, Echo: true} }, wantLevel: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configDir := filepath.Join(t.TempDir(), "config")
			if err := Init(tt.cfg(configDir)); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			t.Cleanup(func() { Logger = nil })

			if _, err := os.Stat(filepath.Join(configDir, "logs")); err != nil {
				t.Errorf("log directory was not created: %v", err)
			}
			if Logger == nil {
				t.Fatal("Logger is nil after initialization")
			}
			if Logger.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", Logger.GetLevel(), tt.wantLevel)
			}

			Debug("debug message")
			Info("info message", "habit", "h1")
			Warn("warn message")
			Error("error message", "error", "boom")
		})
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	if With("request", "abc") == nil {
		t.Error("With() returned nil without Init")
	}
}

func TestWithCarriesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	Logger = log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	t.Cleanup(func() { Logger = nil })

	With("owner", "alice").Info("submitted")

	out := buf.String()
	if !strings.Contains(out, "owner=alice") || !strings.Contains(out, "submitted") {
		t.Errorf("unexpected log output: %q", out)
	}
}
