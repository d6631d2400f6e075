package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"Error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)

	logger.Info().Msg("quiet")
	logger.Warn().Str("track", "Golden").Msg("unavailable")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, `"track":"Golden"`) {
		t.Errorf("warn message missing field: %s", out)
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spin.log")

	logger, err := Init(Options{Level: "info", File: path, Verbose: true})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("verbose level = %v, want debug", logger.GetLevel())
	}

	logger.Debug().Msg("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, want message", data)
	}
}

func TestDefaultFile(t *testing.T) {
	if got := filepath.Base(DefaultFile()); got != Filename {
		t.Errorf("DefaultFile() base = %q, want %q", got, Filename)
	}
}
