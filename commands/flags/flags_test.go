package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	Config(cmd)
	Chain(cmd)
	Format(cmd, "text")
	Output(cmd)

	require.NoError(t, cmd.ParseFlags([]string{"-c", "cfg.yml", "--chain", "137", "-f", "yaml"}))

	assert.Equal(t, "cfg.yml", MustString(cmd.Flags().GetString("config")))
	assert.Equal(t, "137", MustString(cmd.Flags().GetString("chain")))
	assert.Equal(t, "yaml", MustString(cmd.Flags().GetString("format")))
	assert.Empty(t, MustString(cmd.Flags().GetString("out")))
}

func TestFlags_Defaults(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	Config(cmd)
	Format(cmd, "json")

	assert.Equal(t, "txdetails.yml", cmd.Flags().Lookup("config").DefValue)
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
	assert.Equal(t, "json", cmd.Flags().Lookup("format").DefValue)
}
