// Package config reads the game settings from the environment.
package config

import (
	"github.com/myrjola/detectivequest/internal/envstruct"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/myrjola/detectivequest/internal/observability"
	"io"
	"log/slog"
	"os"
)

var ErrInvalidConfig = errors.NewSentinel("invalid configuration")

// Config is populated from DETECTIVE_* environment variables. Command line flags take precedence.
type Config struct {
	// Casebook is the path of a casebook file. The built-in casebook is used when empty.
	Casebook string `env:"DETECTIVE_CASEBOOK" envDefault:""`
	// MaxSuspects bounds the suspect tally. Zero means no limit.
	MaxSuspects   int    `env:"DETECTIVE_MAX_SUSPECTS" envDefault:"0"`
	LogLevel      string `env:"DETECTIVE_LOG_LEVEL" envDefault:"warn"`
	LogFormat     string `env:"DETECTIVE_LOG_FORMAT" envDefault:"text"`
	LogFile       string `env:"DETECTIVE_LOG_FILE" envDefault:""`
	TracesEnabled bool   `env:"DETECTIVE_TRACES_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"DETECTIVE_OTLP_ENDPOINT" envDefault:"http://localhost:4318/v1/traces"`
}

// Load populates a Config using lookupEnv, which has the signature of [os.LookupEnv].
func Load(lookupEnv func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return Config{}, errors.Wrap(err, "populate config") //nolint:exhaustruct // zero on error
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err //nolint:exhaustruct // zero on error
	}
	return cfg, nil
}

// Validate checks the values that envstruct cannot.
func (c Config) Validate() error {
	if c.MaxSuspects < 0 {
		return errors.Wrap(ErrInvalidConfig, "max suspects must not be negative", slog.Int("maxSuspects", c.MaxSuspects))
	}
	if c.TracesEnabled && c.OTLPEndpoint == "" {
		return errors.Wrap(ErrInvalidConfig, "tracing needs an OTLP endpoint")
	}
	return nil
}

// Tracing derives the observability settings.
func (c Config) Tracing(serviceName, version string) observability.Config {
	return observability.Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Enabled:        c.TracesEnabled,
		Endpoint:       c.OTLPEndpoint,
	}
}

// NewLogger creates the logger described by the config. It writes to LogFile when set and to fallback otherwise.
// The returned close function releases the log file.
func (c Config) NewLogger(fallback io.Writer) (*slog.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:mnd // owner only
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file", slog.String("path", c.LogFile))
		}
		w = f
		closeFn = f.Close
	}
	logger, err := logging.NewLogger(w, c.LogLevel, c.LogFormat)
	if err != nil {
		_ = closeFn()
		return nil, nil, errors.Wrap(err, "create logger")
	}
	return logger, closeFn, nil
}
