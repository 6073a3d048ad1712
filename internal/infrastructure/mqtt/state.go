package mqtt

// State is the readiness of the broker session.
//
// The client starts NotReady, becomes Ready when the broker accepts the
// CONNECT and falls back to NotReady on any disconnect or transport error.
// Publish and subscribe requests reach the broker only while Ready.
type State int

// Session states.
const (
	StateNotReady State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "not_ready"
	}
}
