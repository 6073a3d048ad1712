package mqtt

import (
	"crypto/tls"
	"time"
)

//go:generate mockgen -destination=mock_engine_test.go -package=mqtt . Engine

// Socket exposes I/O readiness of an engine's broker connection.
//
// Readable signals that LoopRead has work; Writable that LoopWrite has work.
// Both channels coalesce signals and are never closed.
type Socket interface {
	Readable() <-chan struct{}
	Writable() <-chan struct{}
}

// Engine is an MQTT protocol engine pumped by its owner.
//
// Engines report state changes by calling their EventHandler from LoopRead,
// Loop or Disconnect, on the goroutine that made the call.
type Engine interface {
	SetCredentials(username, password string)
	SetTLS(cfg *tls.Config)

	// Connect dials the broker and starts the handshake. The outcome is
	// reported later as ConnectAccepted, ConnectRefused or Disconnected.
	Connect(host string, port int, keepAlive time.Duration) error

	// Reconnect repeats the last Connect. It returns ErrEngineConfig when
	// Connect was never called.
	Reconnect() error

	// Disconnect closes the session and reports Disconnected{Reason: RCSuccess}.
	Disconnect() error

	// Loop waits up to timeout for readiness and then runs LoopRead,
	// LoopWrite and LoopMisc.
	Loop(timeout time.Duration) error
	LoopRead() error
	LoopWrite() error
	LoopMisc() error
	WantWrite() bool

	// Socket returns nil when there is no broker connection.
	Socket() Socket

	// Publish queues a message and returns its identifier. RCNoConn means
	// the message is queued until the session is up; RCQueueSize that the
	// queue is full.
	Publish(topic string, payload []byte, qos byte) (uint16, error)
	Subscribe(topic string, qos byte) error
	Unsubscribe(topic string) error
}

// EngineConfig is the configuration an engine is built with.
type EngineConfig struct {
	ClientID        string
	CleanSession    bool
	ProtocolVersion uint
	MaxQueued       int
	MaxInflight     int
	ConnectTimeout  time.Duration
	Logger          Logger
}

// EngineFactory builds an engine that reports events to handler.
type EngineFactory func(cfg EngineConfig, handler EventHandler) Engine
