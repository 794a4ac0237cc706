package detect

import (
	"math"

	"github.com/ayusman/mindfultouch/internal/geom"
	"github.com/ayusman/mindfultouch/internal/landmark"
)

const (
	// velocityHistoryCap bounds the per-hand sample ring.
	velocityHistoryCap = 5
	// velocitySampleMaxAgeMs evicts samples older than this; a hand that
	// left the frame must not contribute stale displacement when it
	// returns.
	velocitySampleMaxAgeMs = 1000
)

// Kinematics is the per-hand, per-tick motion and posture estimate.
type Kinematics struct {
	// VelocityPxPerSec is the mean fingertip speed between the two most
	// recent samples. Zero with VelocityValid=false until two samples of
	// history exist.
	VelocityPxPerSec float64
	VelocityValid    bool

	// PalmFacingScore in [-1, 1]; higher means the palm plane faces the
	// face and the fingers point toward it.
	PalmFacingScore float64

	// PinchAngleDeg is the thumb-tip/index-tip angle at the wrist.
	// PinchValid is false when the triangle is degenerate.
	PinchAngleDeg float64
	PinchValid    bool
}

type velocitySample struct {
	tips [5]landmark.Point2
	tsMs int64
}

type velocityHistory struct {
	samples []velocitySample // oldest first, len <= velocityHistoryCap
}

func (h *velocityHistory) push(s velocitySample) {
	// Age eviction first, then capacity.
	keep := h.samples[:0]
	for _, old := range h.samples {
		if s.tsMs-old.tsMs <= velocitySampleMaxAgeMs {
			keep = append(keep, old)
		}
	}
	h.samples = append(keep, s)
	if len(h.samples) > velocityHistoryCap {
		h.samples = h.samples[len(h.samples)-velocityHistoryCap:]
	}
}

// KinematicsAnalyzer estimates velocity, palm orientation and pinch posture
// per tracked hand. Hand identity is the tracker's track ID when present,
// otherwise the handedness label. Two same-handed hands without track IDs
// therefore share one history slot; the tracker contract treats that as a
// sensor glitch and the shared slot is the documented fallback.
type KinematicsAnalyzer struct {
	histories map[string]*velocityHistory
}

// NewKinematicsAnalyzer returns an analyzer with no history.
func NewKinematicsAnalyzer() *KinematicsAnalyzer {
	return &KinematicsAnalyzer{histories: make(map[string]*velocityHistory)}
}

// Reset drops all hand histories.
func (a *KinematicsAnalyzer) Reset() {
	a.histories = make(map[string]*velocityHistory)
}

func handKey(hand *landmark.HandFrame) string {
	if hand.TrackID != "" {
		return hand.TrackID
	}
	return hand.Handedness
}

// Update folds one hand observation into its history and returns the
// current kinematics estimate. faceCentroid orients the palm-facing score.
func (a *KinematicsAnalyzer) Update(hand *landmark.HandFrame, faceCentroid landmark.Point2, tsMs int64) Kinematics {
	key := handKey(hand)
	hist := a.histories[key]
	if hist == nil {
		hist = &velocityHistory{}
		a.histories[key] = hist
	}

	var s velocitySample
	s.tsMs = tsMs
	for i, idx := range landmark.FingertipIndices {
		s.tips[i] = hand.Points[idx]
	}
	hist.push(s)
	a.prune(tsMs)

	k := Kinematics{
		PalmFacingScore: palmFacingScore(hand, faceCentroid),
	}
	k.PinchAngleDeg, k.PinchValid = pinchAngle(hand)
	k.VelocityPxPerSec, k.VelocityValid = fingertipVelocity(hist)
	return k
}

// prune drops histories whose newest sample has aged out, so hands that
// left the frame do not accumulate identity slots.
func (a *KinematicsAnalyzer) prune(nowMs int64) {
	for key, hist := range a.histories {
		n := len(hist.samples)
		if n == 0 || nowMs-hist.samples[n-1].tsMs > velocitySampleMaxAgeMs {
			delete(a.histories, key)
		}
	}
}

// fingertipVelocity averages the displacement of the five fingertips
// between the two most recent retained samples.
func fingertipVelocity(hist *velocityHistory) (pxPerSec float64, ok bool) {
	n := len(hist.samples)
	if n < 2 {
		return 0, false
	}
	prev, cur := hist.samples[n-2], hist.samples[n-1]
	dtMs := cur.tsMs - prev.tsMs
	if dtMs <= 0 {
		return 0, false
	}

	var sum float64
	for i := range cur.tips {
		sum += geom.Distance(cur.tips[i], prev.tips[i])
	}
	meanPx := sum / float64(len(cur.tips))
	return meanPx / (float64(dtMs) / 1000), true
}

// palmFacingScore combines the winding of the palm plane (wrist to index
// MCP crossed with wrist to pinky MCP, sign-corrected for handedness) with
// how directly the hand points at the face centroid. A backhanded approach
// scores negative; a palm presented to the face while reaching toward it
// scores near +1. Degenerate geometry scores 0, which the facing gate
// rejects for any positive threshold.
func palmFacingScore(hand *landmark.HandFrame, faceCentroid landmark.Point2) float64 {
	wrist := hand.Points[landmark.Wrist]
	u := geom.Sub(hand.Points[landmark.IndexMCP], wrist)
	v := geom.Sub(hand.Points[landmark.PinkyMCP], wrist)

	nu, nv := geom.Norm(u), geom.Norm(v)
	if nu*nu < geom.Epsilon || nv*nv < geom.Epsilon {
		return 0
	}
	winding := geom.CrossZ(u, v) / (nu * nv)
	if hand.Handedness == "Left" {
		winding = -winding
	}

	reach := geom.Sub(hand.Points[landmark.MiddleMCP], wrist)
	toFace := geom.Sub(faceCentroid, wrist)
	nr, nf := geom.Norm(reach), geom.Norm(toFace)
	if nr*nr < geom.Epsilon || nf*nf < geom.Epsilon {
		return 0
	}
	align := geom.Dot(reach, toFace) / (nr * nf)

	// Pointing away zeroes the score rather than flipping its sign, so a
	// reversed palm never reads as facing.
	return winding * math.Max(0, align)
}

// pinchAngle is the angle at the wrist between the thumb tip and index
// tip. A tight angle with the tips converged is the pulling-grip posture.
func pinchAngle(hand *landmark.HandFrame) (deg float64, ok bool) {
	wrist := hand.Points[landmark.Wrist]
	return geom.AngleDegrees(
		geom.Sub(hand.Points[landmark.ThumbTip], wrist),
		geom.Sub(hand.Points[landmark.IndexTip], wrist),
	)
}
