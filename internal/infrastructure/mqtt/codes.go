package mqtt

import (
	"fmt"

	"github.com/eclipse/paho.mqtt.golang/packets"
)

// ReturnCode is the result of an engine operation. Non-success codes are errors.
type ReturnCode int

// Engine result codes.
const (
	RCSuccess ReturnCode = iota
	RCNoMem
	RCProtocol
	RCInval
	RCNoConn
	RCConnRefused
	RCNotFound
	RCConnLost
	RCTLS
	RCPayloadSize
	RCNotSupported
	RCAuth
	RCACLDenied
	RCUnknown
	RCErrno
	RCQueueSize
)

// RCLoopNoConnection is returned by Client.Loop after a socket failure was
// turned into a disconnect.
const RCLoopNoConnection ReturnCode = 404

var returnCodeText = map[ReturnCode]string{
	RCSuccess:          "No error.",
	RCNoMem:            "Out of memory.",
	RCProtocol:         "A network protocol error occurred when communicating with the broker.",
	RCInval:            "Invalid function arguments provided.",
	RCNoConn:           "The client is not currently connected.",
	RCConnRefused:      "The connection was refused.",
	RCNotFound:         "Message not found (internal error).",
	RCConnLost:         "The connection was lost.",
	RCTLS:              "A TLS error occurred.",
	RCPayloadSize:      "Payload too large.",
	RCNotSupported:     "This feature is not supported.",
	RCAuth:             "Authorisation failed.",
	RCACLDenied:        "Access denied by ACL.",
	RCUnknown:          "Unknown error.",
	RCErrno:            "Error defined by errno.",
	RCQueueSize:        "Message queue full.",
	RCLoopNoConnection: "Connection lost during loop.",
}

// String returns the human readable description of the code.
func (rc ReturnCode) String() string {
	if text, ok := returnCodeText[rc]; ok {
		return text
	}
	return fmt.Sprintf("Unknown error %d.", int(rc))
}

func (rc ReturnCode) Error() string {
	return fmt.Sprintf("mqtt: %s (rc=%d)", rc.String(), int(rc))
}

// ConnackCode is the return code carried by a CONNACK packet.
type ConnackCode byte

// CONNACK return codes (MQTT 3.1.1 section 3.2.2.3).
const (
	ConnackAccepted                   ConnackCode = packets.Accepted
	ConnackRefusedProtocolVersion     ConnackCode = packets.ErrRefusedBadProtocolVersion
	ConnackRefusedIdentifierRejected  ConnackCode = packets.ErrRefusedIDRejected
	ConnackRefusedServerUnavailable   ConnackCode = packets.ErrRefusedServerUnavailable
	ConnackRefusedBadUsernamePassword ConnackCode = packets.ErrRefusedBadUsernameOrPassword
	ConnackRefusedNotAuthorized       ConnackCode = packets.ErrRefusedNotAuthorised
	ConnackNetworkError               ConnackCode = packets.ErrNetworkError
	ConnackProtocolViolation          ConnackCode = packets.ErrProtocolViolation
)

func (c ConnackCode) String() string {
	if text, ok := packets.ConnackReturnCodes[uint8(c)]; ok {
		return text
	}
	return fmt.Sprintf("Connection Refused: unknown reason %d", byte(c))
}
