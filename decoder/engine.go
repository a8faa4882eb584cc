package decoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const invokePath = "/invoke"

// EngineClient invokes decoder modules on a remote wrap engine. The engine loads the module
// named by the reference into its sandbox, calls the method and reports the outcome:
//
//	POST /invoke {"uri": "...", "method": "decode", "args": {"txData": {...}}}
//	200 {"ok": true, "value": "..."} | {"ok": false, "error": "..."}
type EngineClient struct {
	http    *resty.Client
	timeout time.Duration
}

var _ Invoker = (*EngineClient)(nil)

// EngineOption configures an EngineClient.
type EngineOption func(*EngineClient)

// WithInvokeTimeout bounds every invocation. Zero leaves invocations bounded only by the
// caller's context.
func WithInvokeTimeout(timeout time.Duration) EngineOption {
	return func(c *EngineClient) {
		c.timeout = timeout
	}
}

// WithEngineHTTPClient replaces the underlying http client.
func WithEngineHTTPClient(hc *http.Client) EngineOption {
	return func(c *EngineClient) {
		c.http = resty.NewWithClient(hc).SetBaseURL(c.http.BaseURL)
	}
}

// NewEngineClient creates a client of the engine at baseURL.
func NewEngineClient(baseURL string, opts ...EngineOption) *EngineClient {
	c := &EngineClient{
		http: resty.New().SetBaseURL(baseURL),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type invokeRequest struct {
	URI    string     `json:"uri"`
	Method string     `json:"method"`
	Args   invokeArgs `json:"args"`
}

type invokeArgs struct {
	TxData Call `json:"txData"`
}

type invokeResponse struct {
	OK    bool            `json:"ok"`
	Value json.RawMessage `json:"value"`
	Error string          `json:"error"`
}

// Invoke calls the decode method of the module at ref.
func (c *EngineClient) Invoke(ctx context.Context, ref string, call Call) (string, error) {
	uri, err := ParseURI(ref)
	if err != nil {
		return "", &DecodeInvocationError{Ref: ref, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(invokeRequest{
			URI:    uri.String(),
			Method: DecodeMethod,
			Args:   invokeArgs{TxData: call},
		}).
		Post(invokePath)
	if err != nil {
		return "", &DecodeInvocationError{Ref: ref, Reason: err.Error(), Err: ErrModuleFetch}
	}
	if resp.IsError() {
		return "", &DecodeInvocationError{
			Ref:    ref,
			Reason: fmt.Sprintf("engine responded with status %d", resp.StatusCode()),
			Err:    ErrModuleFetch,
		}
	}

	var out invokeResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", &DecodeInvocationError{Ref: ref, Reason: "malformed engine response", Err: ErrEngineStatus}
	}
	if !out.OK {
		return "", &DecodeInvocationError{Ref: ref, Reason: out.Error, Err: ErrEngineStatus}
	}

	var value string
	if err := json.Unmarshal(out.Value, &value); err != nil {
		return "", &DecodeInvocationError{Ref: ref, Reason: "decoder returned a non-string value", Err: ErrEngineStatus}
	}

	return value, nil
}
