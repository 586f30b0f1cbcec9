package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{" warn ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewDebugFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", DebugLogFile)
	logger, closeFn, err := New(Options{Debug: true, File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("catalog scan", zap.String("dir", "UserProfiles"))
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{"DEBUG", " | ", "catalog scan", "UserProfiles"} {
		if !strings.Contains(line, want) {
			t.Errorf("log %q missing %q", line, want)
		}
	}
}

func TestNewAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), DebugLogFile)
	for i := 0; i < 2; i++ {
		logger, closeFn, err := New(Options{Debug: true, File: path})
		if err != nil {
			t.Fatal(err)
		}
		logger.Info("started")
		closeFn()
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "started"); n != 2 {
		t.Errorf("log has %d lines, want 2", n)
	}
}

func TestNewLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), DebugLogFile)
	logger, closeFn, err := New(Options{Debug: true, File: path, Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	closeFn()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("log = %q", data)
	}
}

func TestNewStdout(t *testing.T) {
	logger, closeFn, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("stdout logger should default to info")
	}
}
