// Package influxdb mirrors published measure snapshots into InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. The mirror is optional:
// Connect returns ErrDisabled when influxdb.enabled is false, and the virtual
// drive then publishes over MQTT only.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteMeasure("controller_1", "temperature", 21.5, time.Now())
//
// # Error Handling
//
// Writes are non-blocking and batched (batch_size, flush_interval); batch
// failures are delivered to the SetOnError callback. Connection and health
// check errors are returned directly.
package influxdb
