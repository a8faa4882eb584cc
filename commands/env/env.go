// Package env loads the runtime environment shared by txdetails commands: the validated
// config, the logger and the transaction view pipeline built from them.
package env

import (
	"fmt"

	"github.com/smartcontractkit/safe-txdetails/config"
	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/description"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/view"
)

// Environment is a loaded txdetails runtime.
type Environment struct {
	Config   *config.Config
	Logger   logger.Logger
	Decoders *decoder.Registry
	Loader   *view.Loader
}

// LoadConfig contains the parameters of Load.
type LoadConfig struct {
	// lggr replaces the logger built from the configured level.
	lggr logger.Logger

	// fetcher replaces the gateway client built from the config.
	fetcher view.DetailsFetcher

	// invoker replaces the decoding engine client built from the config.
	invoker decoder.Invoker
	// invokerSet records that invoker was given, since a nil invoker disables decoding.
	invokerSet bool
}

// LoadOption configures Load.
type LoadOption func(*LoadConfig)

// WithLogger uses lggr instead of a logger at the configured level.
func WithLogger(lggr logger.Logger) LoadOption {
	return func(c *LoadConfig) {
		c.lggr = lggr
	}
}

// WithFetcher uses fetcher instead of the configured gateway.
func WithFetcher(fetcher view.DetailsFetcher) LoadOption {
	return func(c *LoadConfig) {
		c.fetcher = fetcher
	}
}

// WithInvoker uses invoker instead of the configured engine. A nil invoker disables decoding.
func WithInvoker(invoker decoder.Invoker) LoadOption {
	return func(c *LoadConfig) {
		c.invoker = invoker
		c.invokerSet = true
	}
}

// Load reads and validates the config at path and builds the environment from it.
func Load(path string, opts ...LoadOption) (*Environment, error) {
	lc := &LoadConfig{}
	for _, opt := range opts {
		opt(lc)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	lggr := lc.lggr
	if lggr == nil {
		lggr, err = logger.NewWithLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
	}

	registry, err := cfg.DecoderRegistry()
	if err != nil {
		return nil, err
	}

	fetcher := lc.fetcher
	if fetcher == nil {
		fetcher = cfg.GatewayClient(lggr)
	}
	invoker := lc.invoker
	if !lc.invokerSet {
		invoker = cfg.Invoker()
	}

	resolver := description.NewResolver(registry, invoker, description.WithLogger(lggr.Named("resolver")))

	return &Environment{
		Config:   cfg,
		Logger:   lggr,
		Decoders: registry,
		Loader:   view.NewLoader(fetcher, resolver, lggr.Named("loader")),
	}, nil
}

// Service builds a view service on the environment's loader.
func (e *Environment) Service(opts ...view.ServiceOption) *view.Service {
	return view.NewService(e.Loader, append([]view.ServiceOption{view.WithServiceLogger(e.Logger)}, opts...)...)
}
