// Package config loads JenksDiscretiser settings from defaults, a YAML file
// and SCIFEAT_ environment variables.
package config

import (
	"strings"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/YuminosukeSato/scifeat/pkg/log"
	"github.com/YuminosukeSato/scifeat/preprocessing"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
// SCIFEAT_N_JOBS sets n_jobs, SCIFEAT_VARIABLES="a,b" sets variables.
const EnvPrefix = "SCIFEAT_"

// Config holds the discretiser parameters and the log level.
type Config struct {
	Bins             int      `koanf:"bins"`
	Variables        []string `koanf:"variables"`
	ReturnObject     bool     `koanf:"return_object"`
	ReturnBoundaries bool     `koanf:"return_boundaries"`
	Precision        int      `koanf:"precision"`
	NJobs            int      `koanf:"n_jobs"`
	LogLevel         string   `koanf:"log_level"`
}

var (
	intKeys  = []string{"bins", "precision", "n_jobs"}
	boolKeys = []string{"return_object", "return_boundaries"}
)

// Load reads the configuration.
// Precedence (highest to lowest): env vars > config file > defaults.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"bins":              10,
		"return_object":     false,
		"return_boundaries": false,
		"precision":         3,
		"n_jobs":            1,
		"log_level":         "warn",
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. Load config file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", path)
		}
	}

	// 3. Load environment variables
	// Transform: SCIFEAT_RETURN_OBJECT -> return_object
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "variables" {
			names := strings.Split(value, ",")
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
			}
			return key, names
		}
		return key, value
	}), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if err := checkRawTypes(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// checkRawTypes rejects values the decoder would silently coerce, such as
// bins: 4.5 or return_object: 2. Strings come from the environment and are
// parsed by the decoder.
func checkRawTypes(k *koanf.Koanf) error {
	for _, key := range intKeys {
		switch v := k.Get(key).(type) {
		case float32, float64, bool, []interface{}, map[string]interface{}:
			return errors.NewValidationError(key, "must be an integer", v)
		}
	}
	for _, key := range boolKeys {
		switch v := k.Get(key).(type) {
		case bool, string:
		default:
			return errors.NewValidationError(key, "must be True or False", v)
		}
	}
	return nil
}

// Validate checks the parameters with the same rules as NewJenksDiscretiser
// and the log level name.
func (c *Config) Validate() error {
	if _, err := c.NewJenksDiscretiser(); err != nil {
		return err
	}
	if _, err := log.ToLogLevel(c.LogLevel); err != nil {
		return errors.NewValidationError("log_level", "must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// NewJenksDiscretiser builds a discretiser from the configuration.
// Extra options are applied after the configured ones.
func (c *Config) NewJenksDiscretiser(opts ...preprocessing.Option) (*preprocessing.JenksDiscretiser, error) {
	base := []preprocessing.Option{
		preprocessing.WithBins(c.Bins),
		preprocessing.WithReturnObject(c.ReturnObject),
		preprocessing.WithReturnBoundaries(c.ReturnBoundaries),
		preprocessing.WithPrecision(c.Precision),
		preprocessing.WithNJobs(c.NJobs),
	}
	if c.Variables != nil {
		base = append(base, preprocessing.WithVariables(c.Variables...))
	}
	return preprocessing.NewJenksDiscretiser(append(base, opts...)...)
}

// SetupLogger installs the global JSON logger at the configured level.
func (c *Config) SetupLogger() error {
	return log.SetupLogger(c.LogLevel)
}
