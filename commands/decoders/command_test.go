package decoders

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand(Config{Logger: logger.Test(t)})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "txdetails.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewCommand_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewCommand(Config{})
	assert.Equal(t, "decoders", cmd.Use)
	assert.Equal(t, decodersShort, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	subs := cmd.Commands()
	require.Len(t, subs, 2)
	assert.Equal(t, "list", subs[0].Name())
	assert.Equal(t, "lookup", subs[1].Name())
	assert.NotNil(t, subs[0].Flags().Lookup("config"))
}

func TestList(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
decoders:
  - app_url_substring: app.ens.domains
    decoder_ref: wrap://ipfs/QmApp
  - app_url_substring: ens.domains
    decoder_ref: wrap://ens/decoder.eth
`)

	out, err := execute(t, "list", "--config", path)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"#  APP URL SUBSTRING  DECODER\n"+
		"1  app.ens.domains    wrap://ipfs/QmApp\n"+
		"2  ens.domains        wrap://ens/decoder.eth\n", out)
}

func TestList_Default(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Contains(t, out, decoder.ENSDecoderRef)
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "list", "--config", writeConfig(t, "decoders: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "No decoders registered\n", out)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yml")

	out, err := execute(t, "lookup", "https://app.ens.domains/name/vitalik.eth", "--config", missing)
	require.NoError(t, err)
	assert.Equal(t, decoder.ENSDecoderRef+"\n", out)

	_, err = execute(t, "lookup", "https://app.uniswap.org", "--config", missing)
	require.ErrorIs(t, err, ErrNoDecoder)

	_, err = execute(t, "lookup", "--config", missing)
	require.Error(t, err)
}

func TestList_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "list", "--config", writeConfig(t, "decoders:\n  - app_url_substring: x\n    decoder_ref: nope\n"))
	require.ErrorContains(t, err, "failed to load environment")
}
