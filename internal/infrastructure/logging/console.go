package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// consoleTimeFormat is the timestamp layout of console lines.
const consoleTimeFormat = "2006-01-02T15:04:05"

// ConsoleHandler is a slog.Handler producing one coloured line per record:
//
//	2026-01-02T15:04:05 | INFO  | connected service=virtualdrive host=127.0.0.1
//
// Colours are dropped automatically when the output is not a terminal.
type ConsoleHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// NewConsoleHandler creates a ConsoleHandler writing records at or above level to out.
func NewConsoleHandler(out io.Writer, level slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
	}
}

// Enabled reports whether records at level are written.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes one record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(color.GreenString(r.Time.Format(consoleTimeFormat)))
	b.WriteString(" | ")
	b.WriteString(levelString(r.Level))
	b.WriteString(" | ")
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs returns a handler that always writes attrs.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func levelString(level slog.Level) string {
	text := fmt.Sprintf("%-5s", level.String())
	switch {
	case level >= slog.LevelError:
		return color.RedString(text)
	case level >= slog.LevelWarn:
		return color.YellowString(text)
	case level >= slog.LevelInfo:
		return color.BlueString(text)
	default:
		return color.MagentaString(text)
	}
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix+a.Key+".", ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(color.CyanString(prefix + a.Key))
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}
