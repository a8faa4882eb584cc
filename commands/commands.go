// Package commands assembles the txdetails CLI.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory:
//
//	cmds := commands.New(lggr)
//	root, err := cmds.Root()
//	if err != nil {
//	    return err
//	}
//
// 2. Via direct package imports, injecting dependencies for testing:
//
//	cmd, err := show.NewCommand(show.Config{
//	    Logger: lggr,
//	    Deps:   show.Deps{EnvironmentLoader: myLoader},
//	})
package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/safe-txdetails/commands/decoders"
	"github.com/smartcontractkit/safe-txdetails/commands/serve"
	"github.com/smartcontractkit/safe-txdetails/commands/show"
	"github.com/smartcontractkit/safe-txdetails/commands/text"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

var rootLong = text.LongDesc(`
	Renders the detail view of Safe multisig transactions.

	Transaction details are fetched from the Safe client gateway. When the transaction was
	proposed by a Safe App with a registered decoder, a human readable description is
	resolved with it; otherwise the raw decoded call data is shown.

	Configuration is read from a YAML file and TXDETAILS_ environment variables.
`)

// Commands creates CLI commands that share a logger.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory. A nil logger lets every command build one at the
// configured log level.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// Show creates the show command.
func (c *Commands) Show() (*cobra.Command, error) {
	return show.NewCommand(show.Config{Logger: c.lggr})
}

// Decoders creates the decoders command group.
func (c *Commands) Decoders() *cobra.Command {
	return decoders.NewCommand(decoders.Config{Logger: c.lggr})
}

// Serve creates the serve command.
func (c *Commands) Serve() *cobra.Command {
	return serve.NewCommand(serve.Config{Logger: c.lggr})
}

// Root creates the txdetails root command with every subcommand attached.
func (c *Commands) Root() (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "txdetails",
		Short:         "Safe transaction details",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	showCmd, err := c.Show()
	if err != nil {
		return nil, err
	}
	root.AddCommand(showCmd, c.Decoders(), c.Serve())

	return root, nil
}
