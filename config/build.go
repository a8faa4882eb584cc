package config

import (
	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
)

// DecoderRegistry builds the decoder table in configured order.
func (c *Config) DecoderRegistry() (*decoder.Registry, error) {
	return decoder.NewRegistry(c.Decoders)
}

// GatewayClient builds a client of the configured transaction service.
func (c *Config) GatewayClient(lggr logger.Logger) *gateway.Client {
	opts := []gateway.ClientOption{
		gateway.WithLogger(lggr.Named("gateway")),
		gateway.WithRetry(c.Gateway.RetryAttempts, c.Gateway.RetryDelay),
	}
	if c.Gateway.Timeout > 0 {
		opts = append(opts, gateway.WithTimeout(c.Gateway.Timeout))
	}

	return gateway.NewClient(c.Gateway.URL, opts...)
}

// Invoker builds the decoding engine client, or returns nil when no engine is configured.
func (c *Config) Invoker() decoder.Invoker {
	if c.Decoder.EngineURL == "" {
		return nil
	}

	return decoder.NewEngineClient(c.Decoder.EngineURL, decoder.WithInvokeTimeout(c.Decoder.Timeout))
}
