// Package description derives the human readable description of a Safe transaction from
// the decoder registered for the Safe App that proposed it.
//
// Resolution is best effort: every failure degrades to "no description" and the caller
// falls back to the raw decoded data.
package description

import (
	"context"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

// Lookup finds the decoder for a Safe App origin URL. *decoder.Registry implements it.
type Lookup interface {
	Lookup(appURL string) (string, bool)
}

// Resolver resolves transaction descriptions. It holds no mutable state and is safe for
// concurrent use.
type Resolver struct {
	registry Lookup
	invoker  decoder.Invoker
	lggr     logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostic traces.
func WithLogger(lggr logger.Logger) Option {
	return func(r *Resolver) {
		r.lggr = lggr
	}
}

// NewResolver creates a Resolver backed by registry and invoker.
func NewResolver(registry Lookup, invoker decoder.Invoker, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		invoker:  invoker,
		lggr:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the description of details and whether one is available. It performs at
// most one decoder invocation and never returns an error.
func (r *Resolver) Resolve(ctx context.Context, details *gateway.TransactionDetails) (string, bool) {
	call, ref, ok := r.prepare(details)
	if !ok {
		return "", false
	}

	out, err := r.invoker.Invoke(ctx, ref, call)
	if err != nil {
		r.lggr.Debugw("Decoder invocation failed, falling back to raw data",
			"txId", details.TxID, "decoder", ref, "err", err)

		return "", false
	}
	if out == "" {
		r.lggr.Debugw("Decoder returned an empty description", "txId", details.TxID, "decoder", ref)

		return "", false
	}

	r.lggr.Debugw("Decoded transaction description", "txId", details.TxID, "decoder", ref, "description", out)

	return out, true
}

// prepare selects the decoder and builds the invocation payload. ok is false when the
// transaction has no app origin, no decoded data, or no registered decoder.
func (r *Resolver) prepare(details *gateway.TransactionDetails) (decoder.Call, string, bool) {
	if details == nil || details.SafeAppInfo == nil || details.TxData == nil || details.TxData.DataDecoded == nil {
		return decoder.Call{}, "", false
	}
	if r.registry == nil || r.invoker == nil {
		return decoder.Call{}, "", false
	}

	ref, found := r.registry.Lookup(details.SafeAppInfo.URL)
	if !found {
		return decoder.Call{}, "", false
	}

	return BuildCall(details.TxData), ref, true
}

// BuildCall converts decoded call data into the decoder payload.
func BuildCall(txData *gateway.TxData) decoder.Call {
	decoded := txData.DataDecoded
	params := make([]decoder.Param, 0, len(decoded.Parameters))
	for _, p := range decoded.Parameters {
		params = append(params, decoder.Param{
			Name:  p.Name,
			Type:  p.Type,
			Value: decoder.NormalizeValue(p.Value),
		})
	}

	return decoder.Call{
		To:         txData.To.Value,
		Method:     decoded.Method,
		Parameters: params,
	}
}
