package api

import (
	"context"
	"net/http"
	"sync"

	"domainstatus/internal/resolver"

	"github.com/go-faster/jx"
)

// ProgressHandler remembers the latest progress of a run and serves it as
// JSON. It is a resolver.Observer.
type ProgressHandler struct {
	mu   sync.RWMutex
	last resolver.Progress
}

var (
	_ resolver.Observer = (*ProgressHandler)(nil)
	_ http.Handler      = (*ProgressHandler)(nil)
)

// NewProgressHandler returns a handler for a run over total domains.
func NewProgressHandler(total int) *ProgressHandler {
	return &ProgressHandler{last: resolver.Progress{Total: total}}
}

// Progress records p.
func (h *ProgressHandler) Progress(_ context.Context, p resolver.Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = p
}

// Snapshot returns the latest recorded progress.
func (h *ProgressHandler) Snapshot() resolver.Progress {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.last
}

// ServeHTTP writes {"done":..,"total":..,"percent":..,"finished":..}.
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

		return
	}

	p := h.Snapshot()

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("done", func(e *jx.Encoder) { e.Int(p.Done) })
		e.Field("total", func(e *jx.Encoder) { e.Int(p.Total) })
		e.Field("percent", func(e *jx.Encoder) { e.Int(p.Percent) })
		e.Field("finished", func(e *jx.Encoder) { e.Bool(p.Done == p.Total) })
	})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(e.Bytes())
}
