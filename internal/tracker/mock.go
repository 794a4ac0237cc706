package tracker

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// MockTracker is a test implementation of the Tracker interface. It
// ignores the frame content and returns pre-configured landmark frames.
type MockTracker struct {
	face  *landmark.FaceFrame
	hands []landmark.HandFrame
	err   error
}

// NewMockTracker creates a new MockTracker with no detections.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// SetFace sets the face returned by Detect; nil means no face detected.
func (m *MockTracker) SetFace(face *landmark.FaceFrame) {
	m.face = face
}

// SetHands sets the hands returned by Detect.
func (m *MockTracker) SetHands(hands []landmark.HandFrame) {
	m.hands = hands
}

// SetError sets the error returned by Detect.
func (m *MockTracker) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured landmarks or error.
func (m *MockTracker) Detect(_ *gocv.Mat, timestampMs int64) (landmark.Frame, error) {
	if m.err != nil {
		return landmark.Frame{TimestampMs: timestampMs}, m.err
	}
	return landmark.Frame{
		TimestampMs: timestampMs,
		Face:        m.face,
		Hands:       m.hands,
	}, nil
}

// Close is a no-op for the mock tracker.
func (m *MockTracker) Close() error {
	return nil
}
