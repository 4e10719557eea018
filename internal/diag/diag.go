// Package diag provides a slog handler whose output can be muted for a scope.
//
// Simulators log through a [Handler]; callers that must not surface those
// diagnostics wrap the noisy section in [Quiet] or pair [Handler.Mute] with a
// deferred release. Mutes nest and are reference counted.
package diag

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

type Handler struct {
	inner slog.Handler
	muted *atomic.Int32
}

func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner, muted: new(atomic.Int32)}
}

// Discard returns a handler that drops everything, muted or not.
func Discard() *Handler {
	return NewHandler(slog.NewTextHandler(io.Discard, nil))
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.muted.Load() > 0 {
		return false
	}
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h.muted.Load() > 0 {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

// Derived handlers share the mute counter with their parent.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs), muted: h.muted}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), muted: h.muted}
}

func (h *Handler) Muted() bool {
	return h.muted.Load() > 0
}

// Mute suppresses output until the returned release func is called. Release
// is idempotent.
func (h *Handler) Mute() (release func()) {
	h.muted.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { h.muted.Add(-1) })
	}
}

// Quiet runs fn with h muted. The mute is lifted even if fn panics.
func Quiet[T any](h *Handler, fn func() (T, error)) (T, error) {
	release := h.Mute()
	defer release()
	return fn()
}
