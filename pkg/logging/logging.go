// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup(cfg.SlogLevel())
//	slog.Info("Storage initialized", "database", path)
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs a tint handler on stderr as the default slog logger.
// Colors are disabled when stderr is not a terminal.
func Setup(level slog.Level) {
	noColor := !isatty.IsTerminal(os.Stderr.Fd())
	slog.SetDefault(New(os.Stderr, level, noColor))
}

// New returns a tint-backed logger writing to w.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    noColor,
		}),
	)
}
