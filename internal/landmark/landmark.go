// Package landmark defines the hand and face landmark types fed into the
// contact detection pipeline.
package landmark

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandLandmarks = 21
)

// FingertipIndices are the five tip landmarks used for contact checks.
var FingertipIndices = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Point2 is a 2D point in pixel coordinates.
//
// The upstream tracker reports a z coordinate as well, but monocular depth
// is too noisy to gate alerts on, so it is dropped at this boundary and all
// geometry downstream is 2D.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandFrame is one hand observation: the 21 landmarks in pixel coordinates
// plus the tracker's handedness label and confidence.
type HandFrame struct {
	Points     [NumHandLandmarks]Point2 `json:"points"`
	Handedness string                   `json:"handedness"` // "Left" or "Right"
	Score      float64                  `json:"score"`

	// TrackID is a stable per-hand identity assigned by the upstream
	// tracker, when it provides one. Empty means identity falls back to
	// the handedness label.
	TrackID string `json:"track_id,omitempty"`
}

// Frame is one tick of tracker output. Face is nil when no face was
// detected this frame; Hands is empty when no hands were detected.
type Frame struct {
	TimestampMs int64       `json:"timestamp_ms"`
	Face        *FaceFrame  `json:"face,omitempty"`
	Hands       []HandFrame `json:"hands,omitempty"`
}

// Tracked reports whether the frame carries both a face and at least one
// hand. Detection is skipped entirely without both.
func (f *Frame) Tracked() bool {
	return f.Face != nil && len(f.Hands) > 0
}
