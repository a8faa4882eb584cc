// Package show provides the command that renders the detail view of one Safe transaction.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/safe-txdetails/commands/env"
	"github.com/smartcontractkit/safe-txdetails/commands/flags"
	"github.com/smartcontractkit/safe-txdetails/commands/text"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/view"
	"github.com/smartcontractkit/safe-txdetails/view/renderer"
)

var (
	showShort = "Show the details of a Safe transaction"

	showLong = text.LongDesc(`
		Fetches a Safe transaction from the client gateway, resolves its human readable
		description with the decoder registered for its Safe App, and renders the detail view.

		The view lists the description, the decoded call data, warnings, the multisend
		actions and the signers. Sign, execute and reject actions are listed only for a
		connected wallet on the transaction's chain, passed with --wallet-chain.

		With --details-file the details are read from a local gateway response instead.
	`)

	showExample = text.Examples(`
		# Show a transaction as text
		txdetails show --chain 1 --tx multisig_0xA77DE01e157f9f57C7c4A326eeE9C4874D0598b6_0x3c72

		# Show the actions available to a wallet connected to mainnet, as markdown
		txdetails show --chain 1 --tx multisig_0xA77D_0x3c72 --wallet-chain 1 --format markdown

		# Render a saved gateway response to a YAML file
		txdetails show --chain 1 --details-file details.json --format yaml --out view.yml
	`)
)

// Config holds the configuration for the show command.
type Config struct {
	// Logger replaces the logger built from the config. Optional.
	Logger logger.Logger

	// Renderers replaces the default renderer registry. Optional.
	Renderers *renderer.Registry

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

type showFlags struct {
	configPath  string
	chainID     string
	txID        string
	walletChain string
	detailsFile string
	format      string
	out         string
}

// NewCommand creates the "show" command.
func NewCommand(cfg Config) (*cobra.Command, error) {
	cfg.deps()

	if cfg.Renderers == nil {
		r, err := renderer.DefaultRegistry()
		if err != nil {
			return nil, err
		}
		cfg.Renderers = r
	}

	cmd := &cobra.Command{
		Use:     "show",
		Short:   showShort,
		Long:    showLong,
		Example: showExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := showFlags{
				configPath:  flags.MustString(cmd.Flags().GetString("config")),
				chainID:     flags.MustString(cmd.Flags().GetString("chain")),
				txID:        flags.MustString(cmd.Flags().GetString("tx")),
				walletChain: flags.MustString(cmd.Flags().GetString("wallet-chain")),
				detailsFile: flags.MustString(cmd.Flags().GetString("details-file")),
				format:      flags.MustString(cmd.Flags().GetString("format")),
				out:         flags.MustString(cmd.Flags().GetString("out")),
			}

			return runShow(cmd, cfg, f)
		},
	}

	// Shared flags
	flags.Config(cmd)
	flags.Chain(cmd)
	flags.Format(cmd, renderer.IDText)
	flags.Output(cmd)

	// Local flags specific to this command
	cmd.Flags().String("tx", "", "Transaction id, e.g. multisig_<safe>_<safeTxHash>")
	cmd.Flags().String("wallet-chain", "", "Chain id of the connected wallet. Empty means no wallet")
	cmd.Flags().String("details-file", "", "Read the transaction details from a gateway JSON response")
	_ = cmd.MarkFlagRequired("chain")

	return cmd, nil
}

func runShow(cmd *cobra.Command, cfg Config, f showFlags) error {
	if f.txID == "" && f.detailsFile == "" {
		return errors.New("either --tx or --details-file is required")
	}
	if _, ok := cfg.Renderers.Get(f.format); !ok {
		return fmt.Errorf("unknown format %q, expected one of %v", f.format, cfg.Renderers.List())
	}

	deps := cfg.deps()

	var opts []env.LoadOption
	if cfg.Logger != nil {
		opts = append(opts, env.WithLogger(cfg.Logger))
	}
	if f.detailsFile != "" {
		details, err := readDetails(f.detailsFile)
		if err != nil {
			return err
		}
		if f.txID == "" {
			f.txID = details.TxID
		}
		opts = append(opts, env.WithFetcher(fileFetcher{details: details}))
	}

	e, err := deps.EnvironmentLoader(f.configPath, opts...)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	wallet := view.StaticWallet{Connected: f.walletChain != "", ChainID: f.walletChain}
	svc := e.Service(view.WithWallet(wallet))

	plan, err := svc.View(cmd.Context(), view.Request{
		ChainID: f.chainID,
		Summary: gateway.TransactionSummary{ID: f.txID},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", view.LoadErrorMessage, err)
	}

	w := cmd.OutOrStdout()
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := cfg.Renderers.Render(w, f.format, plan); err != nil {
		return fmt.Errorf("failed to render view: %w", err)
	}
	if f.out != "" {
		cmd.PrintErrf("Wrote %s view of %s to %s\n", f.format, plan.TxID, f.out)
	}

	return nil
}

func readDetails(path string) (*gateway.TransactionDetails, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read details file: %w", err)
	}

	var details gateway.TransactionDetails
	if err := json.Unmarshal(b, &details); err != nil {
		return nil, fmt.Errorf("failed to decode details file %s: %w", path, err)
	}

	return &details, nil
}

// fileFetcher serves details read from disk for any id.
type fileFetcher struct {
	details *gateway.TransactionDetails
}

func (f fileFetcher) GetTransactionDetails(context.Context, string, string) (*gateway.TransactionDetails, error) {
	return f.details, nil
}

