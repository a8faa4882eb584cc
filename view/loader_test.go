package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/description"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

// fakeFetcher serves details by transaction id. A txID present in gates blocks until its
// channel is closed.
type fakeFetcher struct {
	mu      sync.Mutex
	details map[string]*gateway.TransactionDetails
	gates   map[string]chan struct{}
	err     error
	calls   []string
}

func (f *fakeFetcher) GetTransactionDetails(ctx context.Context, chainID, txID string) (*gateway.TransactionDetails, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chainID+"/"+txID)
	gate := f.gates[txID]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, &gateway.DetailsFetchError{ChainID: chainID, TxID: txID, StatusCode: 404, Err: f.err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.details[txID], nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// descriptionByTx resolves "description of <txId>" for every transaction.
type descriptionByTx struct{}

func (descriptionByTx) Resolve(_ context.Context, details *gateway.TransactionDetails) (string, bool) {
	if details == nil {
		return "", false
	}

	return "description of " + details.TxID, true
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	details := ensDetails()
	fetcher := &fakeFetcher{details: map[string]*gateway.TransactionDetails{details.TxID: details}}
	invoker := decoder.InvokerFunc(func(_ context.Context, ref string, call decoder.Call) (string, error) {
		assert.Equal(t, decoder.ENSDecoderRef, ref)
		assert.Equal(t, "setText", call.Method)

		return "Set text record", nil
	})
	resolver := description.NewResolver(decoder.DefaultRegistry(), invoker)
	loader := NewLoader(fetcher, resolver, logger.Test(t))

	res, err := loader.Load(t.Context(), Request{ChainID: chainID, Summary: gateway.TransactionSummary{ID: details.TxID}})
	require.NoError(t, err)
	assert.Same(t, details, res.Details)
	assert.Equal(t, "Set text record", res.Description)
	assert.Equal(t, []string{chainID + "/" + details.TxID}, fetcher.calls)
}

func TestLoader_Load_DecoderFailureKeepsDetails(t *testing.T) {
	t.Parallel()

	details := ensDetails()
	fetcher := &fakeFetcher{details: map[string]*gateway.TransactionDetails{details.TxID: details}}
	invoker := decoder.InvokerFunc(func(context.Context, string, decoder.Call) (string, error) {
		return "", &decoder.DecodeInvocationError{Ref: decoder.ENSDecoderRef, Reason: "trap", Err: decoder.ErrEngineStatus}
	})
	loader := NewLoader(fetcher, description.NewResolver(decoder.DefaultRegistry(), invoker), nil)

	res, err := loader.Load(t.Context(), Request{ChainID: chainID, Summary: gateway.TransactionSummary{ID: details.TxID}})
	require.NoError(t, err)
	assert.Same(t, details, res.Details)
	assert.Empty(t, res.Description)
}

func TestLoader_Load_Prefetched(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	loader := NewLoader(fetcher, descriptionByTx{}, nil)
	details := ensDetails()

	res, err := loader.Load(t.Context(), Request{
		ChainID:     chainID,
		Summary:     gateway.TransactionSummary{ID: details.TxID},
		Details:     details,
		Description: "already resolved",
	})
	require.NoError(t, err)
	assert.Same(t, details, res.Details)
	assert.Equal(t, "already resolved", res.Description)
	assert.Zero(t, fetcher.callCount())

	res, err = loader.Load(t.Context(), Request{ChainID: chainID, Details: details})
	require.NoError(t, err)
	assert.Empty(t, res.Description, "prefetched details are not resolved again")
}

func TestLoader_Load_FetchError(t *testing.T) {
	t.Parallel()

	lggr, logs := logger.TestObserved(t, zapcore.DebugLevel)
	fetcher := &fakeFetcher{err: errors.New("not found")}
	loader := NewLoader(fetcher, descriptionByTx{}, lggr)

	_, err := loader.Load(t.Context(), Request{ChainID: chainID, Summary: gateway.TransactionSummary{ID: "missing"}})

	var fetchErr *gateway.DetailsFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 404, fetchErr.StatusCode)
	assert.Equal(t, 1, logs.FilterMessage("Failed to load transaction details").FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLoader_Load_NoFetcher(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(nil, nil, nil).Load(t.Context(), Request{ChainID: chainID, Summary: gateway.TransactionSummary{ID: "tx"}})

	var fetchErr *gateway.DetailsFetchError
	require.ErrorAs(t, err, &fetchErr)
	require.ErrorIs(t, err, errNoFetcher)
}
