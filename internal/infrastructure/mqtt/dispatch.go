package mqtt

import "fmt"

// handleEvent is the EventHandler the client's engines report to.
func (c *Client) handleEvent(ev Event) error {
	switch ev := ev.(type) {
	case ConnectAccepted:
		c.onConnectAccepted(ev)
	case ConnectRefused:
		return c.onConnectRefused(ev)
	case Disconnected:
		return c.onDisconnected(ev)
	case MessageReceived:
		c.onMessage(ev)
	case PublishAcked:
		c.onPublishAcked(ev)
	}
	return nil
}

func (c *Client) onConnectAccepted(ev ConnectAccepted) {
	c.logger.Info("mqtt connected", "host", c.host, "port", c.port, "session_present", ev.SessionPresent)
	c.state = StateReady

	engine := c.conn.Engine()
	for _, sub := range c.subscriptions.entries {
		c.logger.Debug("mqtt resubscribing", "topic", sub.topic, "qos", sub.qos)
		if err := engine.Subscribe(sub.topic, sub.qos); err != nil {
			c.logger.Warn("mqtt resubscribe failed", "topic", sub.topic, "error", err)
		}
	}

	if c.hooks.OnConnected != nil {
		c.hooks.OnConnected()
	}
}

// onConnectRefused ends a session the broker refused. A refusal while the
// client was not ready only releases the socket; the caller's housekeeping
// retries at its own cadence.
func (c *Client) onConnectRefused(ev ConnectRefused) error {
	wasReady := c.state == StateReady
	c.state = StateNotReady
	c.logger.Warn("mqtt connection refused", "code", byte(ev.Code), "reason", ev.Code.String(), "was_ready", wasReady)

	c.notifyDisconnected()
	if !wasReady {
		return nil
	}

	if ev.Code == ConnackRefusedServerUnavailable {
		return c.Reconnect()
	}
	return &BadConfigurationError{Code: ev.Code}
}

func (c *Client) onDisconnected(ev Disconnected) error {
	c.pending.clear()
	c.state = StateNotReady

	if ev.Reason == RCSuccess {
		c.logger.Warn("mqtt disconnected on Disconnect() call")
		c.notifyDisconnected()
		return nil
	}

	c.logger.Warn("mqtt connection lost", "reason", ev.Reason.String(), "error", ev.Err)
	c.notifyDisconnected()
	return c.Reconnect()
}

// onMessage hands an inbound message to the first subscription whose filter matches.
func (c *Client) onMessage(ev MessageReceived) {
	sub, ok := c.subscriptions.match(ev.Topic)
	if !ok {
		c.logger.Debug("mqtt message without subscriber", "topic", ev.Topic)
		return
	}
	if sub.handler == nil {
		return
	}

	if err := c.callHandler(sub.handler, ev.Topic, ev.Payload); err != nil {
		c.logger.Warn("MQTT handler returned error", "topic", ev.Topic, "error", err)
	}
}

// callHandler runs a subscriber callback, turning a panic into an error so
// one faulty handler cannot stop the loop.
func (c *Client) callHandler(handler MessageHandler, topic string, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("MQTT handler panic recovered", "topic", topic, "panic", r)
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(topic, payload)
}

func (c *Client) onPublishAcked(ev PublishAcked) {
	entry, ok := c.pending.take(ev.MessageID)
	if !ok {
		return
	}

	handler, ok := c.ackHandlers[entry.topic]
	if !ok || handler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("MQTT ack handler panic recovered", "topic", entry.topic, "mid", ev.MessageID, "panic", r)
		}
	}()
	handler(entry.topic, entry.userContext)
}
