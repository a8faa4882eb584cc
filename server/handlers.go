package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/view"
	"github.com/smartcontractkit/safe-txdetails/view/renderer"
)

const defaultFormat = renderer.IDJSON

var contentTypes = map[string]string{
	renderer.IDJSON:     "application/json",
	renderer.IDYAML:     "application/yaml",
	renderer.IDText:     "text/plain; charset=utf-8",
	renderer.IDMarkdown: "text/markdown; charset=utf-8",
}

// viewQuery is the validated input of the view endpoint. A wallet chain means a connected wallet.
type viewQuery struct {
	ChainID     string `validate:"required,numeric"`
	TxID        string `validate:"required,max=256"`
	Format      string `validate:"required"`
	WalletChain string `validate:"omitempty,numeric"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type formatsResponse struct {
	Formats []string `json:"formats"`
}

type decodersResponse struct {
	Decoders []decoder.Entry `json:"decoders"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, formatsResponse{Formats: s.renderers.List()})
}

func (s *Server) handleDecoders(w http.ResponseWriter, _ *http.Request) {
	entries := s.decoders.Entries()
	if entries == nil {
		entries = []decoder.Entry{}
	}
	s.writeJSON(w, http.StatusOK, decodersResponse{Decoders: entries})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimiddleware.GetReqID(ctx)

	q := viewQuery{
		ChainID:     chi.URLParam(r, "chainId"),
		TxID:        chi.URLParam(r, "txId"),
		Format:      r.URL.Query().Get("format"),
		WalletChain: r.URL.Query().Get("walletChain"),
	}
	if q.Format == "" {
		q.Format = defaultFormat
	}
	if err := s.validate.StructCtx(ctx, q); err != nil {
		s.lggr.Debugw("Invalid view request", "requestId", requestID, "error", err)
		s.writeError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())

		return
	}
	rend, ok := s.renderers.Get(q.Format)
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, "unknown format "+q.Format)
		return
	}

	wallet := view.StaticWallet{Connected: q.WalletChain != "", ChainID: q.WalletChain}
	plan, err := s.svc.ForWallet(wallet).View(ctx, view.Request{
		ChainID: q.ChainID,
		Summary: gateway.TransactionSummary{ID: q.TxID},
	})
	if err != nil {
		status := http.StatusBadGateway
		var fetchErr *gateway.DetailsFetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		s.lggr.Errorw("Failed to build transaction view", "requestId", requestID, "chainId", q.ChainID, "txId", q.TxID, "error", err)
		s.writeError(w, r, status, view.LoadErrorMessage)

		return
	}

	var buf bytes.Buffer
	if err := rend.RenderTo(&buf, plan); err != nil {
		s.lggr.Errorw("Failed to render transaction view", "requestId", requestID, "format", q.Format, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "failed to render view")

		return
	}

	contentType, ok := contentTypes[q.Format]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.lggr.Debugw("Failed to write response", "requestId", requestID, "error", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.lggr.Debugw("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg, RequestID: chimiddleware.GetReqID(r.Context())})
}
