package logger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"domainstatus/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		opts      logger.Options
		wantDebug bool
	}{
		{"development", logger.Options{Environment: logger.DevelopmentEnvironment}, true},
		{"production", logger.Options{Environment: logger.ProductionEnvironment}, false},
		{"production verbose", logger.Options{Environment: logger.ProductionEnvironment, Verbose: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(tt.opts)
			require.NoError(t, err)
			ctx := logger.WithLogger(context.Background(), l)
			require.Equal(t, tt.wantDebug, logger.IsDebug(ctx))
		})
	}
}

func TestNew_FileSink(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "analyzer.log")
	l, err := logger.New(logger.Options{
		Environment: logger.ProductionEnvironment,
		File:        file,
		MaxSizeMB:   1,
	})
	require.NoError(t, err)

	l.Info("hello file", zap.String("k", "v"))
	_ = l.Sync()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello file")
}

func TestGet_FallsBackToNop(t *testing.T) {
	l := logger.Get(context.Background())
	require.NotNil(t, l)
	require.False(t, logger.IsDebug(context.Background()))
	require.NotPanics(t, func() {
		logger.Info(context.Background(), "dropped")
	})
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	ctx = logger.WithFields(ctx, zap.String("run", "r1"))

	logger.Debug(ctx, "debug message")
	logger.Warn(ctx, "warn message")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "r1", entries[0].ContextMap()["run"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
