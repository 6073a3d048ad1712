package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// measurementName is the InfluxDB measurement holding mirrored measure values.
const measurementName = "measure_values"

// WriteMeasure mirrors one measure value of a published snapshot.
//
// Numeric and boolean values are stored in the "value" field, strings in the
// "text" field, so each field keeps a single type across points. Values of any
// other type are dropped. The write is non-blocking.
//
// Example:
//
//	client.WriteMeasure("controller_1", "temperature", 21.5, time.Now())
func (c *Client) WriteMeasure(ctrlName, measure string, value any, ts time.Time) {
	if !c.IsConnected() {
		return
	}

	point := MeasurePoint(ctrlName, measure, value, ts)
	if point == nil {
		return
	}
	c.writeAPI.WritePoint(point)
}

// MeasurePoint builds the point WriteMeasure writes, or nil when value has no
// field representation.
func MeasurePoint(ctrlName, measure string, value any, ts time.Time) *write.Point {
	fields := measureFields(value)
	if fields == nil {
		return nil
	}
	return write.NewPoint(
		measurementName,
		map[string]string{
			"controller": ctrlName,
			"measure":    measure,
		},
		fields,
		ts,
	)
}

func measureFields(value any) map[string]interface{} {
	switch v := value.(type) {
	case string:
		return map[string]interface{}{"text": v}
	case bool:
		if v {
			return map[string]interface{}{"value": 1.0}
		}
		return map[string]interface{}{"value": 0.0}
	case float64:
		return map[string]interface{}{"value": v}
	case float32:
		return map[string]interface{}{"value": float64(v)}
	case int:
		return map[string]interface{}{"value": float64(v)}
	case int64:
		return map[string]interface{}{"value": float64(v)}
	case int32:
		return map[string]interface{}{"value": float64(v)}
	case uint:
		return map[string]interface{}{"value": float64(v)}
	case uint64:
		return map[string]interface{}{"value": float64(v)}
	case uint32:
		return map[string]interface{}{"value": float64(v)}
	default:
		return nil
	}
}

// WritePoint writes a custom point with a specific timestamp.
//
// Use this for measurements that don't fit WriteMeasure.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
