package show

import (
	"github.com/smartcontractkit/safe-txdetails/commands/env"
)

// EnvironmentLoaderFunc loads the runtime environment from a config path.
type EnvironmentLoaderFunc func(path string, opts ...env.LoadOption) (*env.Environment, error)

// Deps holds the injectable dependencies for the show command.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// EnvironmentLoader loads the config and builds the view pipeline.
	// Default: env.Load
	EnvironmentLoader EnvironmentLoaderFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.EnvironmentLoader == nil {
		d.EnvironmentLoader = env.Load
	}
}
