package serve

import (
	"context"

	"github.com/smartcontractkit/safe-txdetails/commands/env"
	"github.com/smartcontractkit/safe-txdetails/server"
)

// EnvironmentLoaderFunc loads the runtime environment from a config path.
type EnvironmentLoaderFunc func(path string, opts ...env.LoadOption) (*env.Environment, error)

// RunnerFunc serves srv on addr until ctx is done.
type RunnerFunc func(ctx context.Context, srv *server.Server, addr string) error

// Deps holds the injectable dependencies for the serve command.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// EnvironmentLoader loads the config and builds the view pipeline.
	// Default: env.Load
	EnvironmentLoader EnvironmentLoaderFunc

	// Runner serves the HTTP API.
	// Default: srv.Run
	Runner RunnerFunc
}

func defaultRunner(ctx context.Context, srv *server.Server, addr string) error {
	return srv.Run(ctx, addr)
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.EnvironmentLoader == nil {
		d.EnvironmentLoader = env.Load
	}
	if d.Runner == nil {
		d.Runner = defaultRunner
	}
}
