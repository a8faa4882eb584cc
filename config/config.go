// Package config loads the txdetails configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/safe-txdetails/decoder"
)

const (
	DefaultGatewayURL    = "https://safe-client.safe.global"
	DefaultListenAddress = ":8080"
)

// GatewayConfig configures the transaction service client.
type GatewayConfig struct {
	URL           string        `mapstructure:"url" yaml:"url"`
	RetryAttempts uint          `mapstructure:"retry_attempts" yaml:"retry_attempts"` // 1 disables retries
	RetryDelay    time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DecoderConfig configures the decoding engine. An empty EngineURL disables descriptions.
type DecoderConfig struct {
	EngineURL string        `mapstructure:"engine_url" yaml:"engine_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"` // 0 waits for the engine indefinitely
}

type ServerConfig struct {
	ListenAddress string `mapstructure:"listen_address" yaml:"listen_address"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Config wraps the entire txdetails configuration.
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway" yaml:"gateway"`
	Decoder DecoderConfig `mapstructure:"decoder" yaml:"decoder"`
	// Decoders is the ordered decoder table. The first entry whose substring matches wins.
	// When absent the built-in table is used; an explicit empty list disables decoding.
	Decoders []decoder.Entry `mapstructure:"decoders" yaml:"decoders"`
	Server   ServerConfig    `mapstructure:"server" yaml:"server"`
	Log      LogConfig       `mapstructure:"log" yaml:"log"`
}

// Load loads the config from the file path, falling back to env vars if the file does not exist.
// If the file exists, any env vars that are set will override the values loaded from the file.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Decoders == nil {
		cfg.Decoders = decoder.DefaultEntries()
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL(c.Gateway.URL); err != nil {
		errs = append(errs, fmt.Errorf("gateway.url: %w", err))
	}
	if c.Gateway.RetryAttempts == 0 {
		errs = append(errs, errors.New("gateway.retry_attempts: must be at least 1"))
	}
	if c.Gateway.RetryDelay < 0 {
		errs = append(errs, errors.New("gateway.retry_delay: must not be negative"))
	}
	if c.Gateway.Timeout < 0 {
		errs = append(errs, errors.New("gateway.timeout: must not be negative"))
	}
	if c.Decoder.EngineURL != "" {
		if err := validateURL(c.Decoder.EngineURL); err != nil {
			errs = append(errs, fmt.Errorf("decoder.engine_url: %w", err))
		}
	}
	if c.Decoder.Timeout < 0 {
		errs = append(errs, errors.New("decoder.timeout: must not be negative"))
	}
	if _, err := decoder.NewRegistry(c.Decoders); err != nil {
		errs = append(errs, fmt.Errorf("decoders: %w", err))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gateway.url", DefaultGatewayURL)
	v.SetDefault("gateway.retry_attempts", 1)
	v.SetDefault("gateway.retry_delay", 500*time.Millisecond)
	v.SetDefault("gateway.timeout", 30*time.Second)
	v.SetDefault("decoder.timeout", time.Duration(0))
	v.SetDefault("server.listen_address", DefaultListenAddress)
	v.SetDefault("log.level", "info")
}

// envBindings maps config keys to the environment variables that can provide them.
var envBindings = map[string][]string{
	"gateway.url":            {"TXDETAILS_GATEWAY_URL"},
	"gateway.retry_attempts": {"TXDETAILS_GATEWAY_RETRY_ATTEMPTS"},
	"gateway.retry_delay":    {"TXDETAILS_GATEWAY_RETRY_DELAY"},
	"gateway.timeout":        {"TXDETAILS_GATEWAY_TIMEOUT"},
	"decoder.engine_url":     {"TXDETAILS_DECODER_ENGINE_URL"},
	"decoder.timeout":        {"TXDETAILS_DECODER_TIMEOUT"},
	"server.listen_address":  {"TXDETAILS_SERVER_LISTEN_ADDRESS"},
	"log.level":              {"TXDETAILS_LOG_LEVEL"},
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
