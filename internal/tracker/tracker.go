// Package tracker defines the boundary to the upstream landmark model:
// something that turns camera frames into hand and face landmark frames.
// The detection core never sees camera frames; it consumes the landmark
// output of a Tracker.
package tracker

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// Tracker produces hand and face landmarks from video frames.
type Tracker interface {
	// Detect analyzes a video frame. The returned frame carries a nil
	// Face and/or empty Hands when nothing was detected; that is normal
	// output, not an error.
	Detect(frame *gocv.Mat, timestampMs int64) (landmark.Frame, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// Config holds tracker tuning options.
type Config struct {
	// MaxHands is the maximum number of hands to track (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}
