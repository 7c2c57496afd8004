package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Format selects the slog.Handler a logger is built with.
type Format string

const (
	// FormatAuto picks text for an interactive terminal, JSON otherwise.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type config struct {
	level  slog.Level
	format Format
	output io.Writer
}

// Option configures New.
type Option func(*config)

// WithLevel sets the minimum level a logger emits. Defaults to slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat forces text or JSON output instead of auto-detecting from the
// output's terminal-ness.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithOutput sets the writer logs are emitted to. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// New builds a *slog.Logger per the given options.
func New(opts ...Option) *slog.Logger {
	c := config{
		level:  slog.LevelInfo,
		format: FormatAuto,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(&c)
	}

	handlerOpts := &slog.HandlerOptions{Level: c.level}

	format := c.format
	if format == FormatAuto {
		format = FormatJSON
		if f, ok := c.output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatText
		}
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(c.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(c.output, handlerOpts)
	}
	return slog.New(handler)
}
