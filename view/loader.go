package view

import (
	"context"
	"errors"

	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

// DetailsFetcher fetches transaction details. *gateway.Client implements it.
type DetailsFetcher interface {
	GetTransactionDetails(ctx context.Context, chainID, txID string) (*gateway.TransactionDetails, error)
}

// DescriptionResolver resolves the description of a transaction without failing.
// *description.Resolver implements it.
type DescriptionResolver interface {
	Resolve(ctx context.Context, details *gateway.TransactionDetails) (string, bool)
}

// Request identifies the transaction to load. Details and Description are optional and
// come from a caller that already holds them.
type Request struct {
	ChainID     string
	Summary     gateway.TransactionSummary
	Details     *gateway.TransactionDetails
	Description string
}

// Result is the combined outcome of one load.
type Result struct {
	Details     *gateway.TransactionDetails
	Description string
}

var errNoFetcher = errors.New("no details fetcher configured")

// Loader fetches details and resolves their description.
type Loader struct {
	fetcher  DetailsFetcher
	resolver DescriptionResolver
	lggr     logger.Logger
}

func NewLoader(fetcher DetailsFetcher, resolver DescriptionResolver, lggr logger.Logger) *Loader {
	if lggr == nil {
		lggr = logger.Nop()
	}

	return &Loader{fetcher: fetcher, resolver: resolver, lggr: lggr}
}

// Load returns the details of req.Summary. Prefetched details are returned as is together
// with the caller's description. Otherwise the details are fetched and handed to the
// resolver. Only fetch failures are returned.
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	if req.Details != nil {
		return Result{Details: req.Details, Description: req.Description}, nil
	}

	if l.fetcher == nil {
		return Result{}, &gateway.DetailsFetchError{ChainID: req.ChainID, TxID: req.Summary.ID, Err: errNoFetcher}
	}

	details, err := l.fetcher.GetTransactionDetails(ctx, req.ChainID, req.Summary.ID)
	if err != nil {
		l.lggr.Warnw("Failed to load transaction details", "chainId", req.ChainID, "txId", req.Summary.ID, "err", err)

		return Result{}, err
	}

	res := Result{Details: details}
	if l.resolver != nil {
		if desc, ok := l.resolver.Resolve(ctx, details); ok {
			res.Description = desc
		}
	}

	return res, nil
}
