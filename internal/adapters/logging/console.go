package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// consoleHandler renders "time | LEVEL | message key=value" lines styled with
// lipgloss.
type consoleHandler struct {
	out    io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	styles styles
	attrs  []slog.Attr
	group  string
}

func newConsoleHandler(out io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{
		out:    out,
		mu:     &sync.Mutex{},
		level:  level,
		styles: newStyles(),
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	sep := h.styles.sep.Render(" | ")

	if !r.Time.IsZero() {
		b.WriteString(h.styles.time.Render(r.Time.Format(consoleTimeLayout)))
		b.WriteString(sep)
	}
	b.WriteString(h.styles.level(r.Level).Render(fmt.Sprintf("%-5s", r.Level.String())))
	b.WriteString(sep)
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		h.writeAttr(&b, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&b, h.qualify(attr))
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *consoleHandler) writeAttr(b *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(h.styles.attrKey.Render(attr.Key + "="))
	b.WriteString(attr.Value.Resolve().String())
}

func (h *consoleHandler) qualify(attr slog.Attr) slog.Attr {
	if h.group != "" {
		attr.Key = h.group + "." + attr.Key
	}
	return attr
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(attr))
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}
