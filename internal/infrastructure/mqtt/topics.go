package mqtt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxTopicLength is the largest topic the 2-byte MQTT length prefix can carry.
const maxTopicLength = 65535

// Event bus topics shared with the device supervisor.
const (
	// TopicSouthRead carries measure snapshots from drivers.
	TopicSouthRead = "ds2/eventbus/south/read/"

	// TopicSouthWritePrefix is the base of write requests addressed to drivers.
	TopicSouthWritePrefix = "ds2/eventbus/south/write"
)

// Topics provides builders for event bus topics.
//
//	topics := mqtt.Topics{}
//	reply := topics.WriteResponse("req-42")
//	// Returns: "ds2/eventbus/south/write/req-42/response"
type Topics struct{}

// Read returns the topic measure snapshots are published to.
func (Topics) Read() string {
	return TopicSouthRead
}

// AllWriteRequests returns a pattern matching every write request.
//
// Pattern: ds2/eventbus/south/write/+
func (Topics) AllWriteRequests() string {
	return TopicSouthWritePrefix + "/+"
}

// WriteResponse returns the topic a write request from serviceID is answered on.
//
// Example: ds2/eventbus/south/write/{serviceID}/response
func (Topics) WriteResponse(serviceID string) string {
	return fmt.Sprintf("%s/%s/response", TopicSouthWritePrefix, serviceID)
}

// ServiceID returns the last level of a write request topic, which names the requester.
func (Topics) ServiceID(topic string) string {
	return topic[strings.LastIndexByte(topic, '/')+1:]
}

// MatchTopic reports whether topic matches filter.
//
// '+' matches exactly one level and '#' matches the remaining levels, including
// none. Filters starting with a wildcard never match topics starting with '$'.
func MatchTopic(filter, topic string) bool {
	if strings.HasPrefix(topic, "$") && (strings.HasPrefix(filter, "+") || strings.HasPrefix(filter, "#")) {
		return false
	}

	filterLevels := strings.Split(filter, "/")
	topicLevels := strings.Split(topic, "/")

	for i, level := range filterLevels {
		if level == "#" {
			return true
		}
		if i >= len(topicLevels) {
			return false
		}
		if level != "+" && level != topicLevels[i] {
			return false
		}
	}

	return len(filterLevels) == len(topicLevels)
}

// validatePublishTopic checks a topic name used for PUBLISH.
func validatePublishTopic(topic string) error {
	if err := validateTopicString(topic); err != nil {
		return err
	}
	if strings.ContainsAny(topic, "+#") {
		return fmt.Errorf("%w: %q contains a wildcard", ErrInvalidTopic, topic)
	}
	return nil
}

// validateSubscribeTopic checks a topic filter used for SUBSCRIBE.
func validateSubscribeTopic(filter string) error {
	if err := validateTopicString(filter); err != nil {
		return err
	}

	levels := strings.Split(filter, "/")
	for i, level := range levels {
		if strings.Contains(level, "+") && level != "+" {
			return fmt.Errorf("%w: %q: '+' must occupy an entire level", ErrInvalidTopic, filter)
		}
		if strings.Contains(level, "#") && (level != "#" || i != len(levels)-1) {
			return fmt.Errorf("%w: %q: '#' must be the whole last level", ErrInvalidTopic, filter)
		}
	}
	return nil
}

func validateTopicString(topic string) error {
	switch {
	case topic == "":
		return fmt.Errorf("%w: topic cannot be empty", ErrInvalidTopic)
	case len(topic) > maxTopicLength:
		return fmt.Errorf("%w: length %d exceeds %d", ErrInvalidTopic, len(topic), maxTopicLength)
	case strings.ContainsRune(topic, 0):
		return fmt.Errorf("%w: contains a null byte", ErrInvalidTopic)
	case !utf8.ValidString(topic):
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidTopic)
	}
	return nil
}
