// Package envloader loads configuration from the environment, optionally
// layered on top of a config file, using viper.
package envloader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/stratumstore/opsmon/internal/config"
)

// envPrefix namespaces the environment variables read by this loader,
// e.g. OPSMON_WORKERS, OPSMON_QUEUE_SIZE, OPSMON_OPERATION_TIMEOUT.
const envPrefix = "OPSMON"

// EnvLoader loads configuration from OPSMON_* environment variables,
// optionally merged over a yaml config file. Environment values take
// precedence over file values. It implements the config.Loader interface.
type EnvLoader struct {
	// path is an optional filesystem path to a base configuration file.
	path string
}

var _ config.Loader = (*EnvLoader)(nil)

// NewEnvLoader creates a loader that reads from the environment only.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{}
}

// NewEnvLoaderWithFile creates a loader that reads the given file first and
// overlays environment variables on top.
func NewEnvLoaderWithFile(path string) *EnvLoader {
	return &EnvLoader{path: path}
}

// Load resolves the configuration, applies defaults for any unset fields,
// and validates the result.
func (l *EnvLoader) Load(ctx context.Context) (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := config.Default()
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("queue_size", defaults.QueueSize)
	v.SetDefault("operation_timeout", defaults.OperationTimeout)
	v.SetDefault("kinds", defaults.Kinds)

	if l.path != "" {
		v.SetConfigFile(l.path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
