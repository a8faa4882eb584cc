package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	lggr := logger.Nop()
	cmds := New(lggr)

	require.NotNil(t, cmds)
	assert.Equal(t, lggr, cmds.lggr)
}

func TestCommands_Root(t *testing.T) {
	t.Parallel()

	root, err := New(logger.Nop()).Root()
	require.NoError(t, err)

	assert.Equal(t, "txdetails", root.Use)
	assert.NotEmpty(t, root.Long)
	assert.True(t, root.SilenceUsage)

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Equal(t, []string{"decoders", "serve", "show"}, names)
}

func TestCommands_Decoders_Lookup(t *testing.T) {
	t.Parallel()

	root, err := New(logger.Test(t)).Root()
	require.NoError(t, err)

	root.SetArgs([]string{"decoders", "lookup", "https://app.uniswap.org", "--config", t.TempDir() + "/missing.yml"})
	err = root.Execute()
	require.ErrorContains(t, err, "no decoder registered for https://app.uniswap.org")
}
