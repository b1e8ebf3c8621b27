// Package config defines the configuration model for the operation
// monitoring module and the loaders that produce it.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultKinds lists the administrative operation kinds registered when the
// configuration does not name any.
var DefaultKinds = []string{
	"backup",
	"restore",
	"compaction",
	"revision-gc",
	"blob-gc",
}

// Config represents the top-level configuration.
type Config struct {
	// Workers is the number of goroutines draining the operation queue.
	Workers int `yaml:"workers" mapstructure:"workers"`

	// QueueSize bounds the number of launched but not yet executing
	// operations.
	QueueSize int `yaml:"queue_size" mapstructure:"queue_size"`

	// OperationTimeout bounds the execution time of a single operation.
	// Zero means no timeout.
	OperationTimeout time.Duration `yaml:"operation_timeout" mapstructure:"operation_timeout"`

	// Kinds lists the administrative operation kinds exposed to the
	// management surface. Anything outside this list reports UNAVAILABLE.
	Kinds []string `yaml:"kinds" mapstructure:"kinds"`
}

// UnmarshalYAML decodes the configuration, parsing operation_timeout from
// the usual duration notation ("90s", "2h").
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type configDTO struct {
		Workers          int      `yaml:"workers"`
		QueueSize        int      `yaml:"queue_size"`
		OperationTimeout string   `yaml:"operation_timeout"`
		Kinds            []string `yaml:"kinds"`
	}

	var dto configDTO
	if err := node.Decode(&dto); err != nil {
		return err
	}

	c.Workers = dto.Workers
	c.QueueSize = dto.QueueSize
	c.Kinds = dto.Kinds
	c.OperationTimeout = 0
	if dto.OperationTimeout != "" {
		d, err := time.ParseDuration(dto.OperationTimeout)
		if err != nil {
			return fmt.Errorf("invalid operation_timeout: %w", err)
		}
		c.OperationTimeout = d
	}

	return nil
}

// Default returns the configuration used when no overrides are provided.
func Default() *Config {
	return &Config{
		Workers:   2,
		QueueSize: 16,
		Kinds:     append([]string(nil), DefaultKinds...),
	}
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	if c.QueueSize == 0 {
		c.QueueSize = d.QueueSize
	}
	if len(c.Kinds) == 0 {
		c.Kinds = d.Kinds
	}
}

// Validate checks the configuration for values that cannot be served.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue_size must not be negative, got %d", c.QueueSize)
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("operation_timeout must not be negative, got %s", c.OperationTimeout)
	}
	if len(c.Kinds) == 0 {
		return fmt.Errorf("at least one operation kind is required")
	}
	seen := make(map[string]struct{}, len(c.Kinds))
	for _, kind := range c.Kinds {
		if kind == "" {
			return fmt.Errorf("operation kind must not be empty")
		}
		if _, ok := seen[kind]; ok {
			return fmt.Errorf("duplicate operation kind %q", kind)
		}
		seen[kind] = struct{}{}
	}
	return nil
}
