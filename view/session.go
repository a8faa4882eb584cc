package view

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

// LoadErrorMessage is shown in place of the view when the details could not be loaded.
const LoadErrorMessage = "Couldn't load the transaction details"

// ErrNotReady is returned when a plan is requested before a load has succeeded.
var ErrNotReady = errors.New("transaction details are not loaded")

// State is the lifecycle of the session's current load.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Key identifies what a load is for. A change of any field supersedes the load in flight.
type Key struct {
	ChainID   string
	TxID      string
	QueuedTag string
}

// Snapshot is the session state at one point in time.
type Snapshot struct {
	Key       Key
	RequestID string
	State     State
	Request   Request
	Result    Result
	Err       error
}

// Message is the user facing error text of a failed load.
func (s Snapshot) Message() string {
	if s.State != StateError {
		return ""
	}

	return LoadErrorMessage
}

// Handle tracks one load started by a session.
type Handle struct {
	id         string
	generation uint64
	done       chan struct{}
	applied    bool
}

func (h *Handle) ID() string { return h.id }

// Done is closed once the load has settled.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Applied reports whether the result of the load reached the session. It is false for
// loads that were superseded before they settled. Only valid after Done is closed.
func (h *Handle) Applied() bool {
	<-h.done
	return h.applied
}

// Session holds the result of the latest load for a single transaction view. Each load
// takes a new generation, and a result is applied only while its generation is current.
// Superseded loads are not cancelled; they run to completion and are dropped.
type Session struct {
	svc  *Service
	lggr logger.Logger

	mu         sync.Mutex
	generation uint64
	latest     *Handle
	current    Snapshot
	closed     bool
	wg         sync.WaitGroup
}

func newSession(svc *Service, lggr logger.Logger) *Session {
	return &Session{svc: svc, lggr: lggr}
}

// Start loads req for key. When the latest load is for the same key and has not failed,
// its handle is returned and no new load begins. The summary of req still replaces the
// stored one, so the next Plan classifies the latest summary against the loaded details.
func (s *Session) Start(ctx context.Context, key Key, req Request) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil && s.current.Key == key && s.current.State != StateError {
		if !s.closed {
			s.current.Request.Summary = req.Summary
		}

		return s.latest
	}

	return s.startLocked(ctx, key, req)
}

// Refresh starts a new load for key even if one is already in flight.
func (s *Session) Refresh(ctx context.Context, key Key, req Request) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startLocked(ctx, key, req)
}

func (s *Session) startLocked(ctx context.Context, key Key, req Request) *Handle {
	s.generation++
	h := &Handle{
		id:         uuid.NewString(),
		generation: s.generation,
		done:       make(chan struct{}),
	}
	if s.closed {
		close(h.done)
		return h
	}

	if s.current.State == StateLoading {
		s.lggr.Debugw("Superseding transaction load", "requestId", s.current.RequestID, "txId", s.current.Key.TxID)
	}
	s.latest = h
	s.current = Snapshot{Key: key, RequestID: h.id, State: StateLoading, Request: req}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(h.done)

		res, err := s.svc.loader.Load(ctx, req)
		s.apply(h, res, err)
	}()

	return h
}

func (s *Session) apply(h *Handle, res Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || h.generation != s.generation {
		s.lggr.Debugw("Dropping stale transaction load", "requestId", h.id, "txId", res.txID())
		return
	}

	h.applied = true
	if err != nil {
		s.current.State = StateError
		s.current.Err = err

		return
	}
	s.current.State = StateReady
	s.current.Result = res
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Close detaches the session. Loads still in flight finish but are never applied. Close
// waits for them to settle.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}

func (r Result) txID() string {
	if r.Details == nil {
		return ""
	}

	return r.Details.TxID
}

// Plan composes the plan of the current result against the current wallet state.
func (s *Session) Plan() (Plan, error) {
	snap := s.Snapshot()
	switch snap.State {
	case StateReady:
		return s.svc.Compose(snap.Key.ChainID, snap.Request.Summary, snap.Result), nil
	case StateError:
		return Plan{}, snap.Err
	case StateIdle, StateLoading:
		return Plan{}, ErrNotReady
	default:
		return Plan{}, ErrNotReady
	}
}
