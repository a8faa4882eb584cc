package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"

	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

const (
	txDetailsPath = "/v1/chains/{chainId}/transactions/{txId}"

	defaultTimeout = 30 * time.Second
)

// Client is a client of the Safe client gateway.
type Client struct {
	http          *resty.Client
	lggr          logger.Logger
	retryAttempts uint
	retryDelay    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for request traces.
func WithLogger(lggr logger.Logger) ClientOption {
	return func(c *Client) {
		c.lggr = lggr
	}
}

// WithRetry retries transport failures and 5xx responses up to attempts times in total.
// Values below 1 are treated as 1.
func WithRetry(attempts uint, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.retryAttempts = max(attempts, 1)
		c.retryDelay = delay
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		baseURL := c.http.BaseURL
		c.http = resty.NewWithClient(hc).SetBaseURL(baseURL).SetHeader("Accept", "application/json")
	}
}

// NewClient creates a client against the gateway at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		lggr:          logger.Nop(),
		retryAttempts: 1,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetTransactionDetails fetches the details of txID on chainID. Failures are returned as
// *DetailsFetchError.
func (c *Client) GetTransactionDetails(ctx context.Context, chainID, txID string) (*TransactionDetails, error) {
	var details *TransactionDetails
	err := retry.Do(
		func() error {
			var err error
			details, err = c.getTransactionDetails(ctx, chainID, txID)

			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.lggr.Debugw("Retrying transaction details request", "attempt", n+1, "txId", txID, "err", err)
		}),
	)
	if err != nil {
		var fetchErr *DetailsFetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr
		}

		return nil, &DetailsFetchError{ChainID: chainID, TxID: txID, Err: err}
	}

	return details, nil
}

func (c *Client) getTransactionDetails(ctx context.Context, chainID, txID string) (*TransactionDetails, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"chainId": chainID,
			"txId":    txID,
		}).
		Get(txDetailsPath)
	if err != nil {
		return nil, &DetailsFetchError{ChainID: chainID, TxID: txID, Err: err}
	}

	if resp.IsError() {
		c.lggr.Warnw("Gateway returned an error", "status", resp.StatusCode(), "txId", txID, "chainId", chainID)

		return nil, &DetailsFetchError{
			ChainID:    chainID,
			TxID:       txID,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(gatewayMessage(resp.Body())),
		}
	}

	var details TransactionDetails
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return nil, &DetailsFetchError{
			ChainID:    chainID,
			TxID:       txID,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}

	return &details, nil
}

// isRetryable reports whether a request failed in a way worth retrying: transport errors
// and server side failures. Client errors and malformed bodies are final.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var fetchErr *DetailsFetchError
	if !errors.As(err, &fetchErr) {
		return true
	}

	return fetchErr.StatusCode == 0 || fetchErr.StatusCode >= http.StatusInternalServerError
}

// gatewayMessage extracts the message of a gateway error body, falling back to the raw body.
func gatewayMessage(body []byte) string {
	var payload struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) == 0 {
		return "empty response"
	}

	return string(body)
}
