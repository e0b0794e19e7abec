// Package logging provides a bounded ring-buffer slog.Handler used by
// Debug mode (spec §9's supplemented debug overlay): the last N log
// records are kept in memory and rendered in-app, instead of (or in
// addition to) the teacher's verbose-flag-to-file approach, since a
// full-screen bubbletea program can't share stderr with log output.
package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Record is a single captured log line, frozen from a slog.Record.
type Record struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// RingHandler is an slog.Handler that keeps only the most recent
// Capacity records, overwriting the oldest once full.
type RingHandler struct {
	mu       *sync.Mutex // shared with handlers derived via WithAttrs
	buf      *[]Record   // shared with handlers derived via WithAttrs
	capacity int
	level    slog.Leveler
	attrs    []slog.Attr
}

func NewRingHandler(capacity int, level slog.Leveler) *RingHandler {
	if capacity <= 0 {
		capacity = 500
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &RingHandler{mu: &sync.Mutex{}, buf: &[]Record{}, capacity: capacity, level: level}
}

func (h *RingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *RingHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	rec := Record{Time: r.Time, Level: r.Level, Message: r.Message, Attrs: attrs}

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.buf = append(*h.buf, rec)
	if len(*h.buf) > h.capacity {
		*h.buf = (*h.buf)[len(*h.buf)-h.capacity:]
	}
	return nil
}

func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &RingHandler{mu: h.mu, buf: h.buf, capacity: h.capacity, level: h.level, attrs: merged}
}

func (h *RingHandler) WithGroup(_ string) slog.Handler {
	// Groups are not modeled; the debug overlay only needs a flat
	// message/attrs view, not namespaced attribute trees.
	return h
}

// Snapshot returns a copy of the currently buffered records, oldest
// first, safe to render while logging continues on another goroutine
// (bubbletea commands run concurrently with the Update loop).
func (h *RingHandler) Snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(*h.buf))
	copy(out, *h.buf)
	return out
}
