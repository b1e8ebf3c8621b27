package config

import "context"

// Loader resolves the module configuration from some backing source. The
// consumer does not care whether a Config came from a file on disk, the
// environment, or a mix of both; fileloader and envloader provide the two
// shipped implementations.
type Loader interface {
	// Load resolves the configuration. The returned Config has defaults
	// applied and has passed Validate.
	Load(ctx context.Context) (*Config, error)
}
