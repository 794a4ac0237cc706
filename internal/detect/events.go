package detect

// EventType distinguishes the two temporal outcomes of a contact episode.
type EventType string

const (
	// EventAlert fires when contact persisted past the alert delay.
	EventAlert EventType = "alert"
	// EventMindfulStop fires when contact was released voluntarily before
	// the alert delay elapsed.
	EventMindfulStop EventType = "mindful_stop"
)

// Event is an alert or mindful-stop emitted by the state machine. The
// transport and store layers serialize it however they choose; the shape
// here is the contract.
type Event struct {
	Type           EventType `json:"type"`
	Region         Region    `json:"region"`
	TimestampMs    int64     `json:"timestamp_ms"`
	HeldDurationMs int64     `json:"held_duration_ms"`
}

// RegionSnapshot is the per-region debug view of a single tick.
type RegionSnapshot struct {
	// Distance is the best normalized fingertip distance this tick, or -1
	// when no hand/face geometry was available for the region.
	Distance         float64 `json:"distance"`
	CandidateContact bool    `json:"candidate_contact"`
	State            State   `json:"state"`
}

// Snapshot is the full per-tick debug view, for live visualization.
type Snapshot struct {
	TimestampMs  int64                     `json:"timestamp_ms"`
	FaceDetected bool                      `json:"face_detected"`
	HandsTracked int                       `json:"hands_tracked"`
	Regions      map[Region]RegionSnapshot `json:"regions"`
}

// Result is everything one tick produces.
type Result struct {
	Events   []Event
	Snapshot Snapshot
}
