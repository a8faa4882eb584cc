// Package serve provides the command that runs the transaction details HTTP API.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/safe-txdetails/commands/env"
	"github.com/smartcontractkit/safe-txdetails/commands/flags"
	"github.com/smartcontractkit/safe-txdetails/commands/text"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/server"
)

var (
	serveShort = "Serve transaction detail views over HTTP"

	serveLong = text.LongDesc(`
		Runs the HTTP API that renders Safe transaction detail views.

		Endpoints:
		GET /v1/chains/{chainId}/transactions/{txId}/view?format=&walletChain=
		GET /v1/decoders
		GET /v1/formats
		GET /healthz
		GET /metrics

		The server shuts down gracefully on SIGINT or SIGTERM.
	`)

	serveExample = text.Examples(`
		# Serve on the configured address
		txdetails serve

		# Serve on a specific address with debug logs
		TXDETAILS_LOG_LEVEL=debug txdetails serve --listen 127.0.0.1:9000
	`)
)

// Config holds the configuration for the serve command.
type Config struct {
	// Logger replaces the logger built from the config. Optional.
	Logger logger.Logger

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// NewCommand creates the "serve" command.
func NewCommand(cfg Config) *cobra.Command {
	cfg.deps()

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   serveShort,
		Long:    serveLong,
		Example: serveExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, cfg,
				flags.MustString(cmd.Flags().GetString("config")),
				flags.MustString(cmd.Flags().GetString("listen")),
			)
		},
	}

	flags.Config(cmd)
	cmd.Flags().String("listen", "", "Listen address. Default is server.listen_address of the config")

	return cmd
}

func runServe(cmd *cobra.Command, cfg Config, configPath, listen string) error {
	deps := cfg.deps()

	var opts []env.LoadOption
	if cfg.Logger != nil {
		opts = append(opts, env.WithLogger(cfg.Logger))
	}
	e, err := deps.EnvironmentLoader(configPath, opts...)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	srv, err := server.New(e.Service(),
		server.WithLogger(e.Logger.Named("server")),
		server.WithDecoders(e.Decoders),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := listen
	if addr == "" {
		addr = e.Config.Server.ListenAddress
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.Logger.Infow("Starting transaction details server", "address", addr, "gateway", e.Config.Gateway.URL)

	return deps.Runner(ctx, srv, addr)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
