package mqtt

// Event is a notification raised by a protocol engine.
//
// The set of events is closed: ConnectAccepted, ConnectRefused, Disconnected,
// MessageReceived and PublishAcked.
type Event interface {
	isEvent()
}

// EventHandler receives engine events. It runs on the goroutine that pumps the
// engine. A returned error is passed back to whoever pumped the engine.
type EventHandler func(Event) error

// ConnectAccepted reports a CONNACK with return code 0.
type ConnectAccepted struct {
	SessionPresent bool
}

// ConnectRefused reports a CONNACK with a non-zero return code.
type ConnectRefused struct {
	Code ConnackCode
}

// Disconnected reports the end of the session. Reason is RCSuccess for a
// disconnect requested locally.
type Disconnected struct {
	Reason ReturnCode
	Err    error
}

// MessageReceived carries an inbound PUBLISH.
type MessageReceived struct {
	Topic    string
	Payload  []byte
	QoS      byte
	Retained bool
}

// PublishAcked reports that the broker acknowledged the outbound message
// MessageID (for QoS 0, that it was written).
type PublishAcked struct {
	MessageID uint16
}

func (ConnectAccepted) isEvent() {}
func (ConnectRefused) isEvent()  {}
func (Disconnected) isEvent()    {}
func (MessageReceived) isEvent() {}
func (PublishAcked) isEvent()    {}
