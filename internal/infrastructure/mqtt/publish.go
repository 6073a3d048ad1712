package mqtt

import (
	"errors"
	"fmt"
)

// maxPayloadSize is the largest payload the MQTT remaining-length field allows.
const maxPayloadSize = 268435455

// AckHandler is invoked when the broker acknowledges a publish that was made
// with a user context.
type AckHandler func(topic string, userContext any)

// pendingPublish is a publish awaiting its broker acknowledgement.
type pendingPublish struct {
	topic       string
	userContext any
}

// pendingTable maps engine message IDs to publishes awaiting acknowledgement.
type pendingTable map[uint16]pendingPublish

func (t pendingTable) take(mid uint16) (pendingPublish, bool) {
	entry, ok := t[mid]
	if ok {
		delete(t, mid)
	}
	return entry, ok
}

func (t pendingTable) clear() {
	for mid := range t {
		delete(t, mid)
	}
}

// SetPublishAckHandler registers the acknowledgement callback for topic.
func (c *Client) SetPublishAckHandler(topic string, handler AckHandler) {
	c.ackHandlers[topic] = handler
}

// RemovePublishAckHandler removes the acknowledgement callback for topic.
func (c *Client) RemovePublishAckHandler(topic string) {
	delete(c.ackHandlers, topic)
}

// PendingCount returns the number of publishes awaiting acknowledgement.
func (c *Client) PendingCount() int {
	return len(c.pending)
}

// Publish queues a message for the broker.
//
// Messages leave in submission order with at most one unacknowledged at a
// time. When qos > 0, userContext is non-nil and an AckHandler is registered
// for topic, the handler is called once with userContext when the broker
// acknowledges the message. The entry is dropped if the connection is lost
// first.
//
// When the engine queue is full, Publish pumps the engine synchronously for
// a bounded number of passes to make room.
//
// Parameters:
//   - topic: The topic to publish to (no wildcards)
//   - payload: The message payload
//   - qos: Quality of Service level (0, 1, or 2)
//   - userContext: Passed back to the topic's AckHandler, may be nil
//
// Returns:
//   - bool: true only when the message was accepted for delivery
//   - error: *PublishError when the engine rejected the message,
//     *TransportError when the full queue could not be drained, or an error
//     from the reconnect that a socket failure triggered. A client that is
//     not ready returns false with no error.
func (c *Client) Publish(topic string, payload []byte, qos byte, userContext any) (bool, error) {
	if c.state != StateReady {
		return false, nil
	}
	if qos > maxQoS {
		return false, ErrInvalidQoS
	}
	if err := validatePublishTopic(topic); err != nil {
		return false, err
	}
	if len(payload) > maxPayloadSize {
		return false, &PublishError{Code: RCPayloadSize, Text: RCPayloadSize.String()}
	}

	mid, err := c.conn.Engine().Publish(topic, payload, qos)
	if isReturnCode(err, RCQueueSize) {
		c.logger.Info("mqtt publish queue full, draining", "topic", topic)
		mid, err = c.drain(topic, payload, qos)
	}

	var (
		rc           ReturnCode
		transportErr *TransportError
	)
	switch {
	case errors.As(err, &transportErr):
		c.logger.Error("mqtt publish failed", "topic", topic, "error", err)
		return false, err

	case err == nil, isReturnCode(err, RCNoConn):
		// accepted; RCNoConn means queued until the session is back

	case errors.As(err, &rc):
		c.logger.Error("mqtt publish rejected", "topic", topic, "rc", int(rc), "error", rc.String())
		return false, &PublishError{Code: rc, Text: rc.String()}

	case isTransportError(err):
		c.logger.Error("mqtt publish failed", "topic", topic, "payload_size", len(payload), "error", err)
		return false, c.connectionFailed()

	default:
		c.logger.Error("mqtt publish failed", "topic", topic, "payload_size", len(payload), "error", err)
		return false, nil
	}

	if qos > 0 && userContext != nil {
		if _, ok := c.ackHandlers[topic]; ok {
			c.pending[mid] = pendingPublish{topic: topic, userContext: userContext}
		}
	}
	return true, nil
}

// drain pumps the engine until the outbound queue accepts the message.
func (c *Client) drain(topic string, payload []byte, qos byte) (uint16, error) {
	for range drainIterations {
		if err := c.Loop(); err != nil {
			return 0, &TransportError{Op: "publish", Err: err}
		}

		mid, err := c.conn.Engine().Publish(topic, payload, qos)
		if !isReturnCode(err, RCQueueSize) {
			return mid, err
		}
	}
	return 0, &TransportError{
		Op:  "publish",
		Err: fmt.Errorf("outbound queue still full after %d loop passes: %w", drainIterations, RCQueueSize),
	}
}

func isReturnCode(err error, code ReturnCode) bool {
	var rc ReturnCode
	return errors.As(err, &rc) && rc == code
}
