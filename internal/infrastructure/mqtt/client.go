package mqtt

import (
	"errors"
	"time"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
)

// Client maintains one broker session on top of a protocol engine.
//
// It tracks session readiness, keeps the subscription table that is replayed
// after every successful CONNACK and records publishes whose acknowledgement
// a caller asked to be told about. Connection failures are handled inside the
// client: they are logged and turned into a reconnect, and only errors that
// need a policy decision (BadConfigurationError, AddressResolutionError) are
// returned.
//
// Thread Safety:
//   - Client is not safe for concurrent use. All methods, and the pumping of
//     the engine, must run on one goroutine (normally the reactor's).
type Client struct {
	cfg       config.MQTTConfig
	host      string
	port      int
	keepAlive time.Duration

	factory EngineFactory
	conn    *Connection
	hooks   Hooks
	logger  Logger

	state         State
	subscriptions subscriptionTable
	pending       pendingTable
	ackHandlers   map[string]AckHandler

	resolveBackoff time.Duration
	sleep          func(time.Duration)
}

// New creates a client for the broker described by cfg. It does not connect.
//
// A zero broker port is resolved through BrokerPort using cfg.Broker.PortFile.
//
// Parameters:
//   - cfg: MQTT configuration
//   - opts: engine factory, hooks and logger
//
// Returns:
//   - *Client: Client in the NotReady state
func New(cfg config.MQTTConfig, opts ...Option) *Client {
	c := &Client{
		cfg:            cfg,
		host:           cfg.Broker.Host,
		port:           cfg.Broker.Port,
		keepAlive:      cfg.GetKeepAlive(),
		logger:         nopLogger(),
		pending:        make(pendingTable),
		ackHandlers:    make(map[string]AckHandler),
		resolveBackoff: time.Duration(cfg.Reconnect.ResolveBackoff) * time.Second,
		sleep:          time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.port == 0 {
		c.port = BrokerPort(cfg.Broker.PortFile)
	}
	if c.keepAlive <= 0 {
		c.keepAlive = defaultKeepAlive
	}
	if c.resolveBackoff <= 0 {
		c.resolveBackoff = defaultResolveBackoff
	}
	if c.factory == nil {
		c.factory = func(cfg EngineConfig, handler EventHandler) Engine {
			return NewPahoEngine(cfg, handler)
		}
	}

	c.conn = NewConnection(buildEngineConfig(cfg, c.logger), c.factory, c.handleEvent)
	return c
}

// Connect applies credentials and TLS settings and starts the handshake.
//
// Failures are logged, not returned: the caller's housekeeping retries later.
// The AfterConnect hook runs once the broker socket exists.
func (c *Client) Connect() {
	engine := c.conn.Engine()

	if c.cfg.Auth.Username != "" && c.cfg.Auth.Password != "" {
		engine.SetCredentials(c.cfg.Auth.Username, c.cfg.Auth.Password)
	}
	if c.cfg.Broker.TLS && c.cfg.Broker.CAPath != "" {
		tlsCfg, err := buildTLSConfig(c.cfg.Broker.CAPath)
		if err != nil {
			c.logger.Error("mqtt connect failed", "error", err)
			return
		}
		engine.SetTLS(tlsCfg)
	}

	if err := engine.Connect(c.host, c.port, c.keepAlive); err != nil {
		c.logger.Error("mqtt connect failed", "host", c.host, "port", c.port, "error", err)
		return
	}

	c.afterConnect()
}

// Reconnect resumes the session with the last connection parameters.
//
// Returns:
//   - *AddressResolutionError: the broker name did not resolve; Reconnect has
//     already slept the resolve backoff and the caller should retry later
//   - nil: in every other case, including failures that were logged
func (c *Client) Reconnect() error {
	err := c.conn.Engine().Reconnect()
	switch {
	case err == nil:
		c.afterConnect()
		return nil

	case isResolutionError(err):
		c.logger.Warn("mqtt broker name not resolved", "host", c.host, "backoff", c.resolveBackoff, "error", err)
		c.sleep(c.resolveBackoff)
		return &AddressResolutionError{Host: c.host, Err: err}

	case errors.Is(err, ErrEngineConfig):
		c.logger.Warn("mqtt reconnect falling back to connect", "error", err)
		c.Connect()
		return nil

	case isTransportError(err):
		c.logger.Warn("mqtt reconnect failed, rebuilding engine", "error", err)
		c.conn.Reset()
		c.Connect()
		return nil

	default:
		c.logger.Error("mqtt reconnect failed", "host", c.host, "port", c.port, "error", err)
		return nil
	}
}

// Disconnect closes the session. The disconnect path moves the client to
// NotReady and runs the OnDisconnected hook.
func (c *Client) Disconnect() error {
	return c.conn.Engine().Disconnect()
}

// Loop pumps the engine once, waiting up to a second for I/O.
//
// A socket failure is logged and turned into a disconnect (which reconnects);
// Loop then returns RCLoopNoConnection joined with any error the reconnect
// returned.
func (c *Client) Loop() error {
	err := c.conn.Engine().Loop(loopTimeout)
	if isTransportError(err) {
		c.logger.Error("mqtt loop error", "error", err)
		return errors.Join(RCLoopNoConnection, c.connectionFailed())
	}
	return err
}

// LoopMisc runs periodic engine housekeeping.
func (c *Client) LoopMisc() error {
	return c.pump("loop_misc", c.conn.Engine().LoopMisc)
}

// LoopRead processes inbound traffic; engine events are handled before it returns.
func (c *Client) LoopRead() error {
	return c.pump("loop_read", c.conn.Engine().LoopRead)
}

// LoopWrite flushes outbound traffic if the engine has any.
func (c *Client) LoopWrite() error {
	engine := c.conn.Engine()
	if !engine.WantWrite() {
		return nil
	}
	return c.pump("loop_write", engine.LoopWrite)
}

func (c *Client) pump(op string, fn func() error) error {
	err := fn()
	if isTransportError(err) {
		c.logger.Error("mqtt "+op+" error", "error", err)
		return c.connectionFailed()
	}
	return err
}

// connectionFailed handles a socket failure detected locally as if the
// engine had reported the connection lost.
func (c *Client) connectionFailed() error {
	return c.handleEvent(Disconnected{Reason: RCNoConn})
}

// Socket returns the engine socket, or nil when there is no broker connection.
func (c *Client) Socket() Socket {
	return c.conn.Engine().Socket()
}

// State returns the session state.
func (c *Client) State() State {
	return c.state
}

// IsReady reports whether the broker accepted the session.
func (c *Client) IsReady() bool {
	return c.state == StateReady
}

func (c *Client) afterConnect() {
	if c.hooks.AfterConnect != nil {
		c.hooks.AfterConnect(c.conn.Engine().Socket())
	}
}

func (c *Client) notifyDisconnected() {
	if c.hooks.OnDisconnected != nil {
		c.hooks.OnDisconnected()
	}
}
