package virtualdrive

// Health reported for every controller and measure.
const healthy = 1

// Write result codes carried in error_code / error_reason.
const (
	writeSucceeded = 0
	writeFailed    = 1

	reasonSuccess = "Success"
	reasonFailed  = "Failed"
)

// Snapshot is the document published on the read topic.
type Snapshot struct {
	Controllers []ControllerSnapshot `json:"controllers"`
}

// ControllerSnapshot reports one controller and its measures.
type ControllerSnapshot struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Health    int               `json:"health"`
	Timestamp int64             `json:"timestamp"`
	Measures  []MeasureSnapshot `json:"measures"`
}

// MeasureSnapshot reports one measure value.
type MeasureSnapshot struct {
	Name      string `json:"name"`
	Health    int    `json:"health"`
	Timestamp int64  `json:"timestamp"`
	Value     any    `json:"value"`
}

// measureKey identifies a measure within the driver.
type measureKey struct {
	ctrl string
	name string
}

// DefaultValue returns the value reported for a measure that was never written.
func DefaultValue(dataType string) any {
	switch dataType {
	case "STRING":
		return "ABCD"
	case "FLOAT", "DOUBLE":
		return 100.0
	default:
		return 100
	}
}
