package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"domainstatus/pkg/serrors"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment selects the logger flavour (development, production).
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Log configures the optional rotating log file.
	Log struct {
		// File is the path of the rotating log file; empty disables the file sink.
		File string `env:"LOG_FILE" env-default:"" yaml:"file"`
		// MaxSizeMB is the size in megabytes at which the file is rotated.
		MaxSizeMB int `env:"LOG_MAX_SIZE_MB" env-default:"10" yaml:"maxSizeMB"`
		// MaxBackups is the number of rotated files kept on disk.
		MaxBackups int `env:"LOG_MAX_BACKUPS" env-default:"5" yaml:"maxBackups"`
		// MaxAgeDays is the number of days rotated files are kept.
		MaxAgeDays int `env:"LOG_MAX_AGE_DAYS" env-default:"14" yaml:"maxAgeDays"`
		// Compress gzips rotated files.
		Compress bool `env:"LOG_COMPRESS" env-default:"true" yaml:"compress"`
	} `yaml:"log"`

	// Analyzer configures the domain resolver.
	Analyzer struct {
		// Workers is the number of domains probed simultaneously.
		Workers int `env:"ANALYZER_WORKERS" env-default:"10" yaml:"workers"`
		// TimeoutSeconds bounds each individual probe.
		TimeoutSeconds int `env:"ANALYZER_TIMEOUT_SECONDS" env-default:"10" yaml:"timeoutSeconds"`
		// Sequential probes one domain at a time.
		Sequential bool `env:"ANALYZER_SEQUENTIAL" env-default:"false" yaml:"sequential"`
		// OutputDir is where report files are written.
		OutputDir string `env:"ANALYZER_OUTPUT_DIR" env-default:"reports" yaml:"outputDir"`
	} `yaml:"analyzer"`

	// DNS configures the DNS probe.
	DNS struct {
		// Server is the resolver address (host:port). Empty uses the system resolver configuration.
		Server string `env:"DNS_SERVER" env-default:"" yaml:"server"`
	} `yaml:"dns"`

	// Whois configures the WHOIS probe.
	Whois struct {
		// Server pins every query to one WHOIS server. Empty follows IANA referrals.
		Server string `env:"WHOIS_SERVER" env-default:"" yaml:"server"`
	} `yaml:"whois"`

	// HTTP configures the optional diagnostics server that runs alongside an analysis.
	HTTP struct {
		// Addr is the listen address; empty disables the server.
		Addr string `env:"HTTP_ADDR" env-default:"" yaml:"addr"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers.
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// MetricsPath is where Prometheus metrics are exposed.
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// GracefulShutdownTimeout bounds the diagnostics server shutdown.
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Timeout returns the per-probe timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Analyzer.TimeoutSeconds) * time.Second
}

// Validate checks the values the resolver depends on.
func (c *Config) Validate() error {
	if c.Analyzer.Workers < 1 {
		return serrors.With(serrors.ErrInvalidInput, "workers must be positive, got %d", c.Analyzer.Workers)
	}
	if c.Analyzer.TimeoutSeconds < 1 {
		return serrors.With(serrors.ErrInvalidInput,
			"timeout must be a positive number of seconds, got %d", c.Analyzer.TimeoutSeconds)
	}

	return nil
}

// Load reads the yaml config file at configPath, with environment variables
// taking precedence. A missing file is not an error: the configuration is then
// read from the environment and defaults only.
//
// Load does not call Validate, so that command-line overrides can be applied
// first.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(configPath)
	switch {
	case configPath == "" || errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}
	default:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, serrors.Wrap(serrors.ErrInvalidInput, err, "could not read config")
		}
	}

	return &cfg, nil
}
