// Package api configures the diagnostics HTTP server that can run alongside an
// analysis: Prometheus metrics, pprof and live progress.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"domainstatus/internal/config"
	"domainstatus/pkg/controller"
	"domainstatus/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap/exp/zapslog"
)

// ProgressPath is where the progress of the current run is served.
const ProgressPath = "/progress"

// Options holds configuration for the diagnostics server.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":9090".
	Addr string
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions maps the HTTP section of cfg to Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps are the collaborators exposed by the server.
type Deps struct {
	// Gatherer provides the metrics served at MetricsPath.
	Gatherer prometheus.Gatherer
	// Progress serves ProgressPath.
	Progress *ProgressHandler
}

// NewServer returns a configured *http.Server. Handlers run with the logger
// carried by ctx, and ctx is the base context of every request. The server's
// own error log is routed to the same logger.
func NewServer(ctx context.Context, deps Deps, opts Options) *http.Server {
	mux := http.NewServeMux()

	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	mux.Handle(controller.PprofPrefix, controller.PprofMux())
	mux.Handle(ProgressPath, deps.Progress)

	handler := controller.WithRecover(mux)
	handler = controller.WithLogger(ctx, handler)

	errorLog := slog.NewLogLogger(zapslog.NewHandler(logger.Get(ctx).Core(), zapslog.WithName("http")), slog.LevelError)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		ErrorLog:          errorLog,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}
