// Package decoders provides commands for inspecting the configured decoder registry.
package decoders

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/safe-txdetails/commands/env"
	"github.com/smartcontractkit/safe-txdetails/commands/flags"
	"github.com/smartcontractkit/safe-txdetails/commands/text"
	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

var (
	decodersShort = "Decoder registry commands"

	decodersLong = text.LongDesc(`
		Commands for inspecting the decoder registry.

		The registry maps Safe App origins to the wrap URI of the decoder that describes
		their transactions. Entries are matched by substring in order and the first match wins.
	`)

	listExample = text.Examples(`
		# List the decoders of the default config
		txdetails decoders list

		# List the decoders of a specific config file
		txdetails decoders list --config prod.yml
	`)

	lookupExample = text.Examples(`
		# Find the decoder used for transactions proposed by the ENS App
		txdetails decoders lookup https://app.ens.domains
	`)
)

// ErrNoDecoder is returned by lookup when no entry matches the app url.
var ErrNoDecoder = errors.New("no decoder registered")

// EnvironmentLoaderFunc loads the runtime environment from a config path.
type EnvironmentLoaderFunc func(path string, opts ...env.LoadOption) (*env.Environment, error)

// Config holds the configuration for decoder commands.
type Config struct {
	// Logger replaces the logger built from the config. Optional.
	Logger logger.Logger

	// EnvironmentLoader loads the config. Default: env.Load
	EnvironmentLoader EnvironmentLoaderFunc
}

// NewCommand creates the decoders command with all subcommands.
func NewCommand(cfg Config) *cobra.Command {
	if cfg.EnvironmentLoader == nil {
		cfg.EnvironmentLoader = env.Load
	}

	cmd := &cobra.Command{
		Use:   "decoders",
		Short: decodersShort,
		Long:  decodersLong,
	}

	cmd.AddCommand(newListCmd(cfg))
	cmd.AddCommand(newLookupCmd(cfg))

	return cmd
}

func newListCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the registered decoders in match order",
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegistry(cfg, flags.MustString(cmd.Flags().GetString("config")))
			if err != nil {
				return err
			}

			entries := registry.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No decoders registered")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tAPP URL SUBSTRING\tDECODER")
			for i, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, e.AppURLSubstring, e.DecoderRef)
			}

			return w.Flush()
		},
	}
	flags.Config(cmd)

	return cmd
}

func newLookupCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lookup <app-url>",
		Short:   "Print the decoder used for a Safe App url",
		Example: lookupExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cfg, flags.MustString(cmd.Flags().GetString("config")))
			if err != nil {
				return err
			}

			ref, ok := registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w for %s", ErrNoDecoder, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)

			return nil
		},
	}
	flags.Config(cmd)

	return cmd
}

func loadRegistry(cfg Config, path string) (*decoder.Registry, error) {
	var opts []env.LoadOption
	if cfg.Logger != nil {
		opts = append(opts, env.WithLogger(cfg.Logger))
	}

	e, err := cfg.EnvironmentLoader(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return e.Decoders, nil
}
