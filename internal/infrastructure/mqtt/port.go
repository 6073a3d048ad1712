package mqtt

import (
	"os"
	"strconv"
	"strings"
)

// Broker port resolution.
const (
	// DefaultPortFile is written by the local broker with the port it listens on.
	DefaultPortFile = "/var/run/python/mqtt_broker_local.port"

	// DefaultBrokerPort is used when the port file is absent or invalid.
	DefaultBrokerPort = 1883
)

// BrokerPort reads the broker port from the port file at path.
//
// The file holds a decimal port number. A missing or unreadable file, a value
// outside 1..65535 or anything that is not a number yields DefaultBrokerPort.
func BrokerPort(path string) int {
	if path == "" {
		path = DefaultPortFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultBrokerPort
	}

	port, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || port < 1 || port > 65535 {
		return DefaultBrokerPort
	}
	return port
}
