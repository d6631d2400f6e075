// Package logging configures the process-wide zerolog logger.
//
// The terminal belongs to the TUI while spin is playing, so log output goes
// to a rotating file rather than stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Filename is the log file name used when no explicit path is configured.
const Filename = "spin.log"

// Options controls logger initialisation.
type Options struct {
	Level   string
	File    string
	Verbose bool
}

// DefaultFile returns the log path under the user cache directory.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "spin", Filename)
}

// ParseLevel maps a config level name onto a zerolog level. Empty or
// unknown names fall back to info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Init points the global logger at a rotating log file and returns it.
func Init(opts Options) (zerolog.Logger, error) {
	logFile := opts.File
	if logFile == "" {
		logFile = DefaultFile()
	}

	err := os.MkdirAll(filepath.Dir(logFile), 0755)
	if err != nil {
		return zerolog.Nop(), err
	}

	var writers = []io.Writer{&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    1,
		MaxBackups: 2,
	}}

	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	log.Logger = New(io.MultiWriter(writers...), level)

	return log.Logger, nil
}

// New builds a logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
