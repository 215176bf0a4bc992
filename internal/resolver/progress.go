package resolver

import (
	"context"

	"domainstatus/pkg/logger"

	"go.uber.org/zap"
)

// Progress is a coarse view of how far a batch has advanced.
type Progress struct {
	Done    int
	Total   int
	Percent int
}

// Observer receives progress as units of work finish. Calls are made from a
// single goroutine, in completion order.
type Observer interface {
	Progress(ctx context.Context, p Progress)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, p Progress)

func (f ObserverFunc) Progress(ctx context.Context, p Progress) { f(ctx, p) }

// Observers fans progress out to several observers.
type Observers []Observer

func (o Observers) Progress(ctx context.Context, p Progress) {
	for _, obs := range o {
		obs.Progress(ctx, p)
	}
}

// LogObserver logs progress through the logger carried by ctx.
type LogObserver struct{}

func (LogObserver) Progress(ctx context.Context, p Progress) {
	logger.Info(ctx, "analysis progress",
		zap.Int("done", p.Done),
		zap.Int("total", p.Total),
		zap.Int("percent", p.Percent))
}

// progressThrottle decides which completions are worth reporting: the first,
// the last, and the first one to enter each new 10% band.
type progressThrottle struct {
	total    int
	done     int
	lastBand int
}

func newProgressThrottle(total int) *progressThrottle {
	return &progressThrottle{total: total, lastBand: -1}
}

// next records one completion and reports whether it should be emitted.
func (t *progressThrottle) next() (Progress, bool) {
	t.done++
	percent := t.done * 100 / t.total
	band := percent / 10
	p := Progress{Done: t.done, Total: t.total, Percent: percent}

	if t.done == 1 || t.done == t.total || band > t.lastBand {
		t.lastBand = band

		return p, true
	}

	return p, false
}
