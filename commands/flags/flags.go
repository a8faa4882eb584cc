// Package flags provides the flags shared by txdetails commands.
//
// Command-specific flags should be defined locally in the command file.
package flags

import (
	"github.com/spf13/cobra"
)

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// Config adds the --config/-c flag naming the YAML config file.
// A missing file is not an error; defaults and env vars apply.
func Config(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "txdetails.yml", "Path of the config file")
}

// Chain adds the --chain flag holding the EVM chain id.
func Chain(cmd *cobra.Command) {
	cmd.Flags().String("chain", "", "EVM chain id of the Safe (required)")
}

// Format adds the --format/-f flag selecting the renderer.
func Format(cmd *cobra.Command, defaultValue string) {
	cmd.Flags().StringP("format", "f", defaultValue, "Output format: json, markdown, text or yaml")
}

// Output adds the --out/-o flag for writing to a file instead of stdout.
func Output(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output file path. Default is stdout")
}
