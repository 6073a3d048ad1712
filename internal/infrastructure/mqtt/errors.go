package mqtt

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Domain-specific errors for MQTT operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrSubscribeFailed is returned when a subscribe request cannot be issued.
	ErrSubscribeFailed = errors.New("mqtt: subscribe failed")

	// ErrUnsubscribeFailed is returned when an unsubscribe request cannot be issued.
	ErrUnsubscribeFailed = errors.New("mqtt: unsubscribe failed")

	// ErrInvalidQoS is returned when an invalid QoS level is specified.
	// Valid QoS levels are 0, 1, or 2.
	ErrInvalidQoS = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")

	// ErrInvalidTopic is returned when an empty or malformed topic is provided.
	ErrInvalidTopic = errors.New("mqtt: invalid topic")

	// ErrEngineConfig is returned by an engine asked to resume a session it was
	// never configured for (reconnect before the first connect).
	ErrEngineConfig = errors.New("mqtt: engine not configured")
)

// TransportError reports a socket-level failure during loop or publish processing.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mqtt: transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BadConfigurationError reports that the broker permanently refused the session.
// It is fatal: the client does not retry.
type BadConfigurationError struct {
	Code ConnackCode
}

func (e *BadConfigurationError) Error() string {
	return fmt.Sprintf("mqtt: broker refused connection: %s", e.Code)
}

// PublishError reports that the engine rejected a publish request.
type PublishError struct {
	Code ReturnCode
	Text string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("mqtt: local publish error, %s", e.Text)
}

func (e *PublishError) Unwrap() error { return e.Code }

// AddressResolutionError reports a broker host name that could not be resolved
// while reconnecting. Callers are expected to retry later.
type AddressResolutionError struct {
	Host string
	Err  error
}

func (e *AddressResolutionError) Error() string {
	return fmt.Sprintf("mqtt: resolving broker host %q: %v", e.Host, e.Err)
}

func (e *AddressResolutionError) Unwrap() error { return e.Err }

// isResolutionError reports whether err is a DNS lookup failure.
func isResolutionError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isTransportError reports whether err is a socket-level failure.
// Resolution failures are not transport errors.
func isTransportError(err error) bool {
	if err == nil || isResolutionError(err) {
		return false
	}

	var (
		transportErr *TransportError
		opErr        *net.OpError
		netErr       net.Error
		errno        syscall.Errno
	)
	switch {
	case errors.As(err, &transportErr),
		errors.As(err, &opErr),
		errors.As(err, &netErr),
		errors.As(err, &errno):
		return true
	}

	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}
