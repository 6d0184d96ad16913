package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNopBeforeInit(t *testing.T) {
	// Packages log from tests without calling Init; this must not panic.
	Info("before init", zap.Int("n", 1))
	Named("physics").Debug("still fine")
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "trailhead.log")

	err := InitWithOptions(Options{
		Level: "debug",
		File:  FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = InitWithOptions(Options{}) }()

	Named("assets").Warn("model load failed", zap.String("path", "hero.glb"))
	Debug("frame", zap.Int("n", 7))
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if entry["component"] != "assets" {
		t.Errorf("component = %v, want assets", entry["component"])
	}
	if entry["path"] != "hero.glb" {
		t.Errorf("path = %v, want hero.glb", entry["path"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		lines int
	}{
		{"debug", 3},
		{"info", 2},
		{"warn", 1},
		{"error", 0},
		{"bogus", 2}, // falls back to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "level.log")
			if err := InitWithOptions(Options{Level: tt.level, File: DefaultFileConfig(logFile)}); err != nil {
				t.Fatalf("init: %v", err)
			}
			defer func() { _ = InitWithOptions(Options{}) }()

			Debug("d")
			Info("i")
			Warn("w")
			Sync()

			data, _ := os.ReadFile(logFile)
			got := 0
			if s := strings.TrimSpace(string(data)); s != "" {
				got = len(strings.Split(s, "\n"))
			}
			if got != tt.lines {
				t.Errorf("level %s: got %d lines, want %d", tt.level, got, tt.lines)
			}
		})
	}
}
