// Package logbuf keeps recent log records in memory so a UI can show them.
package logbuf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is a single captured log record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Buffer is a fixed-size ring of entries, safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	entries []Entry
	index   int
	count   int
	version uint64
}

// New creates a buffer holding at most size entries.
func New(size int) *Buffer {
	if size <= 0 {
		size = 1
	}
	return &Buffer{entries: make([]Entry, size)}
}

func (b *Buffer) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.index] = e
	b.index = (b.index + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
	b.version++
}

// Recent returns up to max entries, newest first. max <= 0 returns all.
func (b *Buffer) Recent(max int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := b.count
	if max > 0 && max < n {
		n = max
	}
	if n == 0 {
		return nil
	}

	size := len(b.entries)
	out := make([]Entry, n)
	for i := range out {
		out[i] = b.entries[(b.index-1-i+size)%size]
	}
	return out
}

// Version changes every time an entry is added.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Handler is a slog.Handler that writes into a Buffer.
type Handler struct {
	buf    *Buffer
	level  slog.Leveler
	prefix string // preformatted attrs from WithAttrs
	group  string
}

// NewHandler returns a handler capturing records at or above level.
// Passing a *slog.LevelVar lets the threshold change at runtime.
func NewHandler(buf *Buffer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{buf: buf, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	sb.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.group, a)
		return true
	})

	h.buf.Add(Entry{Time: r.Time, Level: r.Level, Message: sb.String()})
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var sb strings.Builder
	sb.WriteString(h.prefix)
	for _, a := range attrs {
		writeAttr(&sb, h.group, a)
	}
	clone := *h
	clone.prefix = sb.String()
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group == "" {
		clone.group = name
	} else {
		clone.group = clone.group + "." + name
	}
	return &clone
}

func writeAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, key, ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value)
}

// Format renders an entry as a single display line.
func Format(e Entry) string {
	var level string
	switch {
	case e.Level >= slog.LevelError:
		level = "ERR"
	case e.Level >= slog.LevelWarn:
		level = "WRN"
	case e.Level >= slog.LevelInfo:
		level = "INF"
	default:
		level = "DBG"
	}
	return fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05"), level, e.Message)
}

// ShiftLevel moves v one step (4 levels) towards more or less verbose,
// clamped to Debug..Error, and returns the new level.
func ShiftLevel(v *slog.LevelVar, quieter bool) slog.Level {
	l := v.Level()
	if quieter {
		l += 4
	} else {
		l -= 4
	}
	l = min(max(l, slog.LevelDebug), slog.LevelError)
	v.Set(l)
	return l
}

// ParseLevel accepts debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
