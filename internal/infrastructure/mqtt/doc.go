// Package mqtt provides the broker session of the virtual drive.
//
// This package manages:
//   - Session readiness (NotReady until the broker accepts the CONNECT)
//   - The subscription table, replayed in registration order after every CONNACK
//   - Ordered publishing with a single unacknowledged message in flight
//   - Publish acknowledgement callbacks keyed by engine message ID
//   - Recovery from connection loss, refused sessions and resolution failures
//   - Topic filter matching and validation
//   - Broker port discovery through the local port file
//
// # Architecture
//
// Client never blocks on the network. It drives a protocol Engine that is
// pumped from the outside (LoopRead, LoopWrite, LoopMisc), normally by an
// event loop that watches the engine Socket. The engine reports what happened
// as typed events, which the client handles on the pumping goroutine:
//
//	event loop → Client.LoopRead → Engine.LoopRead → Client event handler
//
// The default engine wraps paho.mqtt.golang. Connection holds the engine and
// can rebuild it with the same configuration after a socket failure.
//
// # Errors
//
// Connect and Reconnect log failures instead of returning them, with two
// exceptions that need a decision from the caller:
//   - *BadConfigurationError: the broker refused a live session for a reason
//     other than being unavailable. Not retried.
//   - *AddressResolutionError: the broker name did not resolve. Retry later.
//
// # Usage
//
//	client := mqtt.New(cfg.MQTT, mqtt.WithLogger(logger), mqtt.WithHooks(hooks))
//	_ = client.Subscribe(mqtt.Topics{}.AllWriteRequests(), 0,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//	client.Connect()
//	// ... pump client.LoopRead / LoopWrite / LoopMisc from the event loop
package mqtt
