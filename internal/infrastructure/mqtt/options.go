package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
)

// Client constants.
const (
	// defaultConnectTimeout bounds the TCP dial and the MQTT handshake.
	defaultConnectTimeout = 2 * time.Second

	// defaultKeepAlive is used when the configuration leaves keepalive at zero.
	defaultKeepAlive = 60 * time.Second

	// defaultResolveBackoff is slept after a failed broker name lookup.
	defaultResolveBackoff = 5 * time.Second

	// loopTimeout bounds how long Loop waits for readiness.
	loopTimeout = time.Second

	// drainIterations bounds the loop passes made to free the outbound queue.
	drainIterations = int(RCQueueSize)

	// maxQoS is the maximum QoS level supported.
	maxQoS = 2

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Hooks are lifecycle callbacks, all invoked on the goroutine pumping the client.
type Hooks struct {
	// AfterConnect runs after a connect or reconnect dialled the broker, before
	// the handshake completes. sock is nil when the engine has no connection.
	AfterConnect func(sock Socket)

	// OnConnected runs after the broker accepted the session and every
	// subscription was re-sent.
	OnConnected func()

	// OnDisconnected runs whenever the session ends or is refused.
	OnDisconnected func()
}

// Option configures a Client.
type Option func(*Client)

// WithEngineFactory replaces the paho-backed protocol engine.
func WithEngineFactory(factory EngineFactory) Option {
	return func(c *Client) {
		c.factory = factory
	}
}

// WithHooks sets the lifecycle callbacks.
func WithHooks(hooks Hooks) Option {
	return func(c *Client) {
		c.hooks = hooks
	}
}

// WithLogger sets the logger. Without one the client is silent.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// nopLogger discards everything.
func nopLogger() Logger {
	return slog.New(slog.DiscardHandler)
}

// buildEngineConfig derives the engine configuration from the MQTT settings.
func buildEngineConfig(cfg config.MQTTConfig, logger Logger) EngineConfig {
	timeout := cfg.GetConnectTimeout()
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	return EngineConfig{
		ClientID:        cfg.Broker.ClientID,
		CleanSession:    cfg.CleanSession,
		ProtocolVersion: cfg.ProtocolVersion,
		MaxQueued:       cfg.MaxQueuedMessages,
		MaxInflight:     maxInflight,
		ConnectTimeout:  timeout,
		Logger:          logger,
	}
}

// buildTLSConfig trusts the CA bundle at caPath.
func buildTLSConfig(caPath string) (*tls.Config, error) {
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, fmt.Errorf("reading CA file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", caPath)
	}

	return &tls.Config{
		MinVersion: tlsMinVersion,
		RootCAs:    pool,
	}, nil
}
