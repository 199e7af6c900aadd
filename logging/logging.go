package logging

import (
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

var (
	logger    = zerolog.Nop()
	debugMode atomic.Bool
)

// SetupLogging configures logging.
// If filename is empty, logging is disabled (the TUI owns the terminal).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string, debug bool) (cleanup func(), err error) {
	debugMode.Store(debug)

	if filename == "" {
		log.SetOutput(io.Discard)
		logger = zerolog.Nop()
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()

	// configure Bubble Tea logger (also redirects the stdlib logger)
	tf, err := tea.LogToFile(filename, "tea")
	if err != nil {
		f.Close()
		return nil, err
	}

	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// SetOutput points the logger at w; used by tests and the headless export.
func SetOutput(w io.Writer, debug bool) {
	debugMode.Store(debug)
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func IsDebugMode() bool { return debugMode.Load() }

func Debug(msg string) { logger.Debug().Msg(msg) }
func Debugf(format string, args ...any) { logger.Debug().Msgf(format, args...) }
func Infof(format string, args ...any) { logger.Info().Msgf(format, args...) }
func Warnf(format string, args ...any) { logger.Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { logger.Error().Msgf(format, args...) }
