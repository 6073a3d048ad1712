package mqtt

import (
	"fmt"
)

// MessageHandler is the callback signature for received messages.
//
// Handlers run on the goroutine pumping the client and should return quickly.
//
// Parameters:
//   - topic: The topic the message was received on (wildcards expanded)
//   - payload: The raw message payload (typically JSON)
//
// Returns:
//   - error: Logged; it does not affect delivery of later messages
type MessageHandler func(topic string, payload []byte) error

// subscription holds subscription details for re-subscription on reconnect.
type subscription struct {
	topic   string
	qos     byte
	handler MessageHandler
}

// subscriptionTable keeps subscriptions in first-registration order.
type subscriptionTable struct {
	entries []subscription
}

// put adds or replaces the subscription for sub.topic. A replaced entry
// keeps its position.
func (t *subscriptionTable) put(sub subscription) {
	for i := range t.entries {
		if t.entries[i].topic == sub.topic {
			t.entries[i] = sub
			return
		}
	}
	t.entries = append(t.entries, sub)
}

func (t *subscriptionTable) remove(topic string) bool {
	for i := range t.entries {
		if t.entries[i].topic == topic {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// match returns the first subscription whose filter matches topic.
func (t *subscriptionTable) match(topic string) (subscription, bool) {
	for _, sub := range t.entries {
		if MatchTopic(sub.topic, topic) {
			return sub, true
		}
	}
	return subscription{}, false
}

// Subscribe registers a handler for messages on the specified topic filter.
//
// Topic filters can include MQTT wildcards:
//   - + (single-level): "ds2/eventbus/south/write/+" matches any requester
//   - # (multi-level): "ds2/#" matches everything below ds2
//
// Registering a filter again replaces its handler and QoS. When the client is
// ready the SUBSCRIBE is sent immediately; otherwise it is sent after the next
// accepted CONNACK, in registration order with every other subscription.
// When several filters match a message only the first registered one fires.
//
// Parameters:
//   - topic: The topic filter to subscribe to
//   - qos: Maximum QoS level for received messages (0, 1, or 2)
//   - handler: Callback invoked for each matching message
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if err := validateSubscribeTopic(topic); err != nil {
		return err
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}

	c.subscriptions.put(subscription{
		topic:   topic,
		qos:     qos,
		handler: handler,
	})

	if c.state != StateReady {
		return nil
	}
	c.logger.Debug("mqtt subscribing", "topic", topic, "qos", qos)
	if err := c.conn.Engine().Subscribe(topic, qos); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSubscribeFailed, topic, err)
	}
	return nil
}

// Unsubscribe removes a subscription.
//
// The UNSUBSCRIBE is sent only when the filter was registered and the client
// is ready. Messages already received are still delivered.
func (c *Client) Unsubscribe(topic string) error {
	if !c.subscriptions.remove(topic) {
		return nil
	}

	if c.state != StateReady {
		return nil
	}
	if err := c.conn.Engine().Unsubscribe(topic); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsubscribeFailed, topic, err)
	}
	return nil
}

// SubscriptionCount returns the number of registered subscriptions.
func (c *Client) SubscriptionCount() int {
	return len(c.subscriptions.entries)
}

// HasSubscription reports whether topic is registered.
func (c *Client) HasSubscription(topic string) bool {
	for _, sub := range c.subscriptions.entries {
		if sub.topic == topic {
			return true
		}
	}
	return false
}
