package mqtt

// maxInflight pins the number of unacknowledged publishes to one so that
// messages reach the broker in submission order.
const maxInflight = 1

// Connection owns the protocol engine of a client together with everything
// needed to rebuild it.
type Connection struct {
	cfg     EngineConfig
	factory EngineFactory
	handler EventHandler
	engine  Engine
}

// NewConnection builds the first engine. The in-flight limit of cfg is
// overridden to one.
func NewConnection(cfg EngineConfig, factory EngineFactory, handler EventHandler) *Connection {
	cfg.MaxInflight = maxInflight
	c := &Connection{
		cfg:     cfg,
		factory: factory,
		handler: handler,
	}
	c.engine = factory(cfg, handler)
	return c
}

// Engine returns the current engine.
func (c *Connection) Engine() Engine {
	return c.engine
}

// Config returns the configuration engines are built with.
func (c *Connection) Config() EngineConfig {
	return c.cfg
}

// Reset discards the current engine and builds a new one with the same
// configuration and event handler. Messages queued in the old engine are lost.
func (c *Connection) Reset() {
	c.engine = c.factory(c.cfg, c.handler)
}
