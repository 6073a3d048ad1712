// Package virtualdrive simulates a southbound field driver on the device
// supervisor's event bus.
//
// The driver owns a table of controllers and their measure points, taken from
// configuration. Every publish interval it sends a snapshot of all measure
// values to ds2/eventbus/south/read/. Write requests arriving on
// ds2/eventbus/south/write/{serviceId} update values and are answered on
// ds2/eventbus/south/write/{serviceId}/response with a per-measure error code.
//
// Measures that were never written report a default by data type: "ABCD" for
// STRING, 100.0 for FLOAT and DOUBLE, 100 otherwise. Written values are kept in
// a Store so they survive restarts, and published values can be mirrored to a
// Recorder such as the InfluxDB client.
//
// The driver runs entirely on the reactor goroutine: its timer and message
// handlers are reactor callbacks, so it holds no locks.
package virtualdrive
