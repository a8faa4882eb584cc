package env

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/view"
)

type fetcherFunc func(ctx context.Context, chainID, txID string) (*gateway.TransactionDetails, error)

func (f fetcherFunc) GetTransactionDetails(ctx context.Context, chainID, txID string) (*gateway.TransactionDetails, error) {
	return f(ctx, chainID, txID)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "txdetails.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
decoders:
  - app_url_substring: ens.domains
    decoder_ref: wrap://ipfs/QmCustom
`)

	details := &gateway.TransactionDetails{
		TxID:        "tx",
		TxStatus:    gateway.TxStatusAwaitingConfirmations,
		SafeAppInfo: &gateway.SafeAppInfo{Name: "ENS", URL: "https://app.ens.domains"},
		TxData: &gateway.TxData{
			To:          gateway.AddressEx{Value: "0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41"},
			DataDecoded: &gateway.DataDecoded{Method: "setText"},
		},
	}
	fetcher := fetcherFunc(func(context.Context, string, string) (*gateway.TransactionDetails, error) {
		return details, nil
	})
	invoker := decoder.InvokerFunc(func(_ context.Context, ref string, _ decoder.Call) (string, error) {
		return "decoded by " + ref, nil
	})

	e, err := Load(path, WithLogger(logger.Test(t)), WithFetcher(fetcher), WithInvoker(invoker))
	require.NoError(t, err)

	ref, ok := e.Decoders.Lookup("https://app.ens.domains")
	require.True(t, ok)
	assert.Equal(t, "wrap://ipfs/QmCustom", ref)

	res, err := e.Loader.Load(t.Context(), view.Request{ChainID: "1", Summary: gateway.TransactionSummary{ID: "tx"}})
	require.NoError(t, err)
	assert.Equal(t, "decoded by wrap://ipfs/QmCustom", res.Description)

	plan, err := e.Service().View(t.Context(), view.Request{ChainID: "1", Summary: gateway.TransactionSummary{ID: "tx"}})
	require.NoError(t, err)
	assert.Equal(t, "tx", plan.TxID)
}

func TestLoad_NilInvokerDisablesDecoding(t *testing.T) {
	t.Parallel()

	details := &gateway.TransactionDetails{
		TxID:        "tx",
		SafeAppInfo: &gateway.SafeAppInfo{URL: "https://app.ens.domains"},
		TxData:      &gateway.TxData{DataDecoded: &gateway.DataDecoded{Method: "setText"}},
	}
	fetcher := fetcherFunc(func(context.Context, string, string) (*gateway.TransactionDetails, error) {
		return details, nil
	})

	e, err := Load(writeConfig(t, "decoder:\n  engine_url: http://localhost:1\n"),
		WithLogger(logger.Nop()), WithFetcher(fetcher), WithInvoker(nil))
	require.NoError(t, err)

	res, err := e.Loader.Load(t.Context(), view.Request{ChainID: "1", Summary: gateway.TransactionSummary{ID: "tx"}})
	require.NoError(t, err)
	assert.Empty(t, res.Description)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "log:\n  level: loud\n"), WithLogger(logger.Nop()))
	require.ErrorContains(t, err, "invalid config")
	require.ErrorContains(t, err, "log.level")
}
