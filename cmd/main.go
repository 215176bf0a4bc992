// Package main provides the CLI entrypoint for the domain status analyzer.
// It wires subcommands (analyze, domains), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"os"

	"domainstatus/internal/config"
	"domainstatus/internal/resolver"
	"domainstatus/pkg/logger"
	"domainstatus/pkg/serrors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configPath string
	verbose    bool

	// newProbes builds the signal probes for an analysis run.
	newProbes func(cfg *config.Config) resolver.Probes

	cfg *config.Config
	log *zap.Logger
}

// setup loads the configuration, builds the logger and attaches it to the
// command context together with a run id.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Environment: cfg.Environment,
		Verbose:     a.verbose,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Compress:    cfg.Log.Compress,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log.With(zap.String("run_id", uuid.NewString()))
	cmd.SetContext(logger.WithLogger(cmd.Context(), a.log))

	return nil
}

func (a *app) sync() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// main sets up the root Cobra command and registers subcommands before
// executing the CLI.
func main() {
	a := &app{newProbes: networkProbes}

	rootCmd := &cobra.Command{
		Use:               "domainstatus",
		Short:             "Checks whether the domains of a pixel-area artifact are still alive",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yml", "Config File Path")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		analyzeCommand(a),
		domainsCommand(),
	)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			if a.log != nil {
				a.log.Error("captured panic, exiting...", zap.Any("panic", p))
			}
			a.sync()

			panic(p)
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && a.log != nil {
		fields := []zap.Field{zap.Error(err)}
		if kind := serrors.KindOf(err); kind != nil {
			fields = append(fields, zap.String("kind", kind.Error()))
		}
		a.log.Error("command failed", fields...)
	}
	a.sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
