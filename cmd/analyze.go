package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"domainstatus/internal/api"
	"domainstatus/internal/config"
	"domainstatus/internal/extract"
	"domainstatus/internal/report"
	"domainstatus/internal/resolver"
	"domainstatus/pkg/logger"
	"domainstatus/pkg/metrics"
	"domainstatus/pkg/probe/dnsprobe"
	"domainstatus/pkg/probe/httpprobe"
	"domainstatus/pkg/probe/whoisprobe"
	"domainstatus/pkg/serrors"
	"domainstatus/pkg/storage/jsonfile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// analyzeFlags are the command-line overrides of the analyzer configuration.
type analyzeFlags struct {
	workers     int
	timeout     int
	noThreading bool
	outputDir   string
}

// apply copies the flags the user set onto cfg and validates the result.
func (f *analyzeFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Analyzer.Workers = f.workers
	}
	if flags.Changed("timeout") {
		cfg.Analyzer.TimeoutSeconds = f.timeout
	}
	if flags.Changed("no-threading") {
		cfg.Analyzer.Sequential = f.noThreading
	}
	if flags.Changed("output-dir") {
		cfg.Analyzer.OutputDir = f.outputDir
	}

	return cfg.Validate()
}

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) (func(ctx context.Context), error) {
	server := api.NewServer(ctx, deps, api.NewOptions(cfg))

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not listen on %q", server.Addr)
	}

	go func() {
		logger.Info(ctx, "starting diagnostics server...", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start diagnostics server", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping diagnostics server...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop diagnostics server", zap.Error(err))
		}
	}, nil
}

// networkProbes builds the probes that query real DNS, HTTP and WHOIS servers.
func networkProbes(cfg *config.Config) resolver.Probes {
	timeout := cfg.Timeout()

	return resolver.Probes{
		DNS:   dnsprobe.New(dnsprobe.Options{Server: cfg.DNS.Server, Timeout: timeout}),
		HTTP:  httpprobe.New(httpprobe.NewClient(), timeout),
		Whois: whoisprobe.New(whoisprobe.Options{Server: cfg.Whois.Server, Timeout: timeout}),
	}
}

func newResolver(
	cfg *config.Config,
	probes resolver.Probes,
	observer resolver.Observer,
	ins *metrics.Instruments,
) *resolver.Resolver {
	return resolver.New(probes, resolver.Options{
		Workers:    cfg.Analyzer.Workers,
		Sequential: cfg.Analyzer.Sequential,
		Timeout:    cfg.Timeout(),
	},
		resolver.WithObserver(observer),
		resolver.WithInstruments(ins),
		resolver.WithTracerProvider(otel.GetTracerProvider()),
	)
}

func analyzeCommand(a *app) *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <pixel-data.json>",
		Short: "Probes every domain of a pixel data file and writes a JSON report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			domains, err := extract.FromFile(ctx, args[0])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			mp, err := metrics.NewMeterProvider(reg)
			if err != nil {
				return serrors.Wrap(serrors.ErrInternal, err, "could not set up metrics")
			}
			defer func() {
				if err := mp.Shutdown(context.WithoutCancel(ctx)); err != nil {
					logger.Warn(ctx, "could not shut down meter provider", zap.Error(err))
				}
			}()

			ins, err := metrics.NewInstruments(mp)
			if err != nil {
				return serrors.Wrap(serrors.ErrInternal, err, "could not set up metrics")
			}

			progress := api.NewProgressHandler(len(domains))
			if cfg.HTTP.Addr != "" {
				stopServer, err := setupServer(ctx, cfg, api.Deps{Gatherer: reg, Progress: progress})
				if err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.GracefulShutdownTimeout)
					defer cancel()
					stopServer(shutdownCtx)
				}()
			}

			logger.Info(ctx, "analyzing domains",
				zap.String("input", args[0]),
				zap.Int("domains", len(domains)),
				zap.Int("workers", cfg.Analyzer.Workers),
				zap.Bool("sequential", cfg.Analyzer.Sequential),
				zap.Duration("timeout", cfg.Timeout()))

			started := time.Now()
			observer := resolver.Observers{resolver.LogObserver{}, progress}
			results := newResolver(cfg, a.newProbes(cfg), observer, ins).Resolve(ctx, domains)
			rep := report.Assemble(results, time.Now().UTC())

			w, err := jsonfile.New(cfg.Analyzer.OutputDir)
			if err != nil {
				return err
			}
			path, err := w.WriteReport(context.WithoutCancel(ctx), rep)
			if err != nil {
				return err
			}

			logger.Info(ctx, "analysis finished",
				zap.Int("domains", len(results)),
				zap.Duration("took", time.Since(started)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Domain analysis complete! Report saved to: %s\n", path) //nolint: errcheck
			fmt.Fprintf(out, "Analyzed %d domains\n", len(results))                   //nolint: errcheck

			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 10, "Number of domains probed concurrently")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 10, "Per-request timeout in seconds")
	cmd.Flags().BoolVar(&flags.noThreading, "no-threading", false, "Disable concurrency (sequential analysis)")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "reports", "Output directory for reports")

	return cmd
}
