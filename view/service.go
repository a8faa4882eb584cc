package view

import (
	"context"

	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/multisend"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/txstate"
)

// WalletState is the connected wallet as seen by the session provider.
type WalletState struct {
	Connected bool
	ChainID   string
}

// WalletSession answers read only queries about the connected wallet.
type WalletSession interface {
	WalletState() WalletState
}

// StaticWallet is a WalletSession that never changes.
type StaticWallet WalletState

func (w StaticWallet) WalletState() WalletState { return WalletState(w) }

// PendingTracker reports transactions that are being processed locally.
type PendingTracker interface {
	IsPending(txID string) bool
}

// PendingFunc adapts a function to PendingTracker.
type PendingFunc func(txID string) bool

func (f PendingFunc) IsPending(txID string) bool { return f(txID) }

// Service loads transactions and composes their plans.
type Service struct {
	loader  *Loader
	book    *multisend.AddressBook
	wallet  WalletSession
	pending PendingTracker
	lggr    logger.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithAddressBook(book *multisend.AddressBook) ServiceOption {
	return func(s *Service) {
		s.book = book
	}
}

func WithWallet(wallet WalletSession) ServiceOption {
	return func(s *Service) {
		s.wallet = wallet
	}
}

func WithPendingTracker(pending PendingTracker) ServiceOption {
	return func(s *Service) {
		s.pending = pending
	}
}

func WithServiceLogger(lggr logger.Logger) ServiceOption {
	return func(s *Service) {
		s.lggr = lggr
	}
}

func NewService(loader *Loader, opts ...ServiceOption) *Service {
	s := &Service{
		loader:  loader,
		book:    multisend.DefaultAddressBook(),
		wallet:  StaticWallet{},
		pending: PendingFunc(func(string) bool { return false }),
		lggr:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ForWallet returns a copy of the service that sees wallet instead of its own session.
func (s *Service) ForWallet(wallet WalletSession) *Service {
	c := *s
	c.wallet = wallet

	return &c
}

// View loads req and composes its plan in one go. Fetch failures are returned unchanged.
func (s *Service) View(ctx context.Context, req Request) (Plan, error) {
	res, err := s.loader.Load(ctx, req)
	if err != nil {
		return Plan{}, err
	}

	return s.Compose(req.ChainID, req.Summary, res), nil
}

// Compose classifies the loaded transaction against the current wallet state and builds
// its plan. A summary without status is derived from the details.
func (s *Service) Compose(chainID string, summary gateway.TransactionSummary, res Result) Plan {
	if summary.TxStatus == "" && res.Details != nil {
		derived := res.Details.Summary()
		if summary.ID != "" {
			derived.ID = summary.ID
		}
		summary = derived
	}

	wallet := s.wallet.WalletState()

	return Build(Input{
		ChainID:         chainID,
		Summary:         summary,
		Details:         res.Details,
		Description:     res.Description,
		Flags:           txstate.Classify(summary, res.Details, chainID, s.book),
		WalletConnected: wallet.Connected,
		WrongChain:      wallet.Connected && wallet.ChainID != chainID,
		Pending:         s.pending.IsPending(summary.ID),
	})
}

// NewSession starts an empty session backed by the service.
func (s *Service) NewSession() *Session {
	return newSession(s, s.lggr.Named("session"))
}
