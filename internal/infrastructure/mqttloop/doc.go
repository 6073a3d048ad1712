// Package mqttloop runs an MQTT client on an eventloop reactor.
//
// The Adapter owns the client's lifecycle hooks. After every connect it
// registers the broker socket with the reactor (a persistent read event and a
// one-shot write event), and drops both registrations when the session ends.
// A housekeeping timer ticks every second while connected. While the broker
// is away it probes the broker port, slowing to every 15 seconds, and
// reconnects once the probe succeeds.
//
//	loop := eventloop.New()
//	adapter := mqttloop.New(loop, cfg.MQTT, mqttloop.WithLogger(logger))
//	adapter.Connect()
//	err := loop.Run(ctx)
//
// A broker refusal that retrying cannot fix (*mqtt.BadConfigurationError) is
// returned from the reactor callback and stops the loop.
package mqttloop
