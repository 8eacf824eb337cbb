// Package cmdlogger is the slog handler used by amtc: plain messages, errors
// to stderr, everything else to stdout.
package cmdlogger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type Handler struct {
	stdout             io.Writer
	stderr             io.Writer
	hasErrored         bool
	everythingToStderr bool
	Level              slog.Leveler
}

var _ slog.Handler = &Handler{}

func New(stdout, stderr io.Writer) *Handler {
	return &Handler{
		stdout: stdout,
		stderr: stderr,
		Level:  slog.LevelInfo,
	}
}

// SendEverythingToStderr tells the handler to send all logs to stderr
// regardless of their level.
//
// Used when stdout carries an image or generated source.
func (h *Handler) SendEverythingToStderr() {
	h.everythingToStderr = true
}

func (h *Handler) SetLevel(level slog.Leveler) {
	h.Level = level
}

func (h *Handler) writer(level slog.Level) io.Writer {
	if h.everythingToStderr || level >= slog.LevelError {
		return h.stderr
	}

	return h.stdout
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if level >= slog.LevelError {
		h.hasErrored = true
	}

	return level >= h.Level.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	if record.Level >= slog.LevelError {
		h.hasErrored = true
	}

	msg := record.Message

	record.Attrs(func(attr slog.Attr) bool {
		msg += " " + attr.String()
		return true
	})

	_, err := fmt.Fprint(h.writer(record.Level), msg+"\n")

	return err
}

// HasErrored returns true if there have been any calls to Handle with
// a level of [slog.LevelError].
func (h *Handler) HasErrored() bool {
	return h.hasErrored
}

func (h *Handler) WithAttrs(_ []slog.Attr) slog.Handler {
	panic("not supported")
}

func (h *Handler) WithGroup(_ string) slog.Handler {
	panic("not supported")
}
