package detect

import (
	"math"
	"testing"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

var testFaceCenter = landmark.Point2{X: 320, Y: 240}

func TestKinematics_InsufficientHistory(t *testing.T) {
	a := NewKinematicsAnalyzer()
	hand := landmark.TestHand(landmark.Point2{X: 300, Y: 400}, "Right")

	k := a.Update(&hand, testFaceCenter, 1000)
	if k.VelocityValid {
		t.Error("VelocityValid = true after a single sample")
	}
	if k.VelocityPxPerSec != 0 {
		t.Errorf("VelocityPxPerSec = %v, want 0", k.VelocityPxPerSec)
	}
}

func TestKinematics_StaticHandHasZeroVelocity(t *testing.T) {
	a := NewKinematicsAnalyzer()
	hand := landmark.TestHand(landmark.Point2{X: 300, Y: 400}, "Right")

	var k Kinematics
	for ts := int64(0); ts <= 500; ts += 100 {
		k = a.Update(&hand, testFaceCenter, ts)
	}
	if !k.VelocityValid {
		t.Fatal("VelocityValid = false with full history")
	}
	if math.Abs(k.VelocityPxPerSec) > 1e-9 {
		t.Errorf("VelocityPxPerSec = %v, want ~0 for a static hand", k.VelocityPxPerSec)
	}
}

func TestKinematics_VelocityFromDisplacement(t *testing.T) {
	a := NewKinematicsAnalyzer()

	h1 := landmark.TestHand(landmark.Point2{X: 100, Y: 400}, "Right")
	a.Update(&h1, testFaceCenter, 0)

	// Every fingertip moves 30px right over 100ms: 300 px/sec.
	h2 := landmark.TestHand(landmark.Point2{X: 130, Y: 400}, "Right")
	k := a.Update(&h2, testFaceCenter, 100)

	if !k.VelocityValid {
		t.Fatal("VelocityValid = false after two samples")
	}
	if math.Abs(k.VelocityPxPerSec-300) > 1e-6 {
		t.Errorf("VelocityPxPerSec = %v, want 300", k.VelocityPxPerSec)
	}
}

func TestKinematics_HistoryEvictsByAge(t *testing.T) {
	a := NewKinematicsAnalyzer()
	h1 := landmark.TestHand(landmark.Point2{X: 100, Y: 400}, "Right")
	a.Update(&h1, testFaceCenter, 0)

	// The hand re-enters far away after the sample max age; the stale
	// sample must not produce a huge velocity spike.
	h2 := landmark.TestHand(landmark.Point2{X: 600, Y: 400}, "Right")
	k := a.Update(&h2, testFaceCenter, 5000)
	if k.VelocityValid {
		t.Error("VelocityValid = true against an aged-out sample")
	}
}

func TestKinematics_HandsKeyedByTrackID(t *testing.T) {
	a := NewKinematicsAnalyzer()

	h1 := landmark.TestHand(landmark.Point2{X: 100, Y: 400}, "Right")
	h1.TrackID = "a"
	h2 := landmark.TestHand(landmark.Point2{X: 500, Y: 400}, "Right")
	h2.TrackID = "b"

	// Same handedness, distinct track IDs: histories must not mix even
	// though the positions differ wildly between the two hands.
	a.Update(&h1, testFaceCenter, 0)
	a.Update(&h2, testFaceCenter, 0)
	h1b := landmark.TestHand(landmark.Point2{X: 101, Y: 400}, "Right")
	h1b.TrackID = "a"
	k := a.Update(&h1b, testFaceCenter, 100)

	if !k.VelocityValid {
		t.Fatal("VelocityValid = false")
	}
	if math.Abs(k.VelocityPxPerSec-10) > 1e-6 {
		t.Errorf("VelocityPxPerSec = %v, want 10 (track a only)", k.VelocityPxPerSec)
	}
}

func TestKinematics_PalmFacing(t *testing.T) {
	a := NewKinematicsAnalyzer()

	// Face above the hand; the preset posture reaches up with the palm
	// presented toward it.
	face := landmark.Point2{X: 320, Y: 100}
	palm := landmark.TestHand(landmark.Point2{X: 320, Y: 300}, "Right")
	k := a.Update(&palm, face, 0)
	if k.PalmFacingScore < 0.5 {
		t.Errorf("PalmFacingScore = %v for presented palm, want >= 0.5", k.PalmFacingScore)
	}

	a.Reset()
	back := landmark.TestBackhand(landmark.Point2{X: 320, Y: 300}, "Right")
	k = a.Update(&back, face, 0)
	if k.PalmFacingScore > -0.5 {
		t.Errorf("PalmFacingScore = %v for backhand, want <= -0.5", k.PalmFacingScore)
	}

	// Left hand mirrored posture scores the same as the right.
	a.Reset()
	left := landmark.TestHand(landmark.Point2{X: 320, Y: 300}, "Left")
	k = a.Update(&left, face, 0)
	if k.PalmFacingScore < 0.5 {
		t.Errorf("PalmFacingScore = %v for left palm, want >= 0.5", k.PalmFacingScore)
	}
}

func TestKinematics_PinchAngle(t *testing.T) {
	a := NewKinematicsAnalyzer()
	hand := landmark.TestHand(landmark.Point2{X: 320, Y: 300}, "Right")

	k := a.Update(&hand, testFaceCenter, 0)
	if !k.PinchValid {
		t.Fatal("PinchValid = false for preset posture")
	}
	// The preset holds thumb and index converged: a tight grip angle.
	if k.PinchAngleDeg < 10 || k.PinchAngleDeg > 60 {
		t.Errorf("PinchAngleDeg = %v, want within [10, 60]", k.PinchAngleDeg)
	}

	// Collapsing the landmarks makes the triangle degenerate.
	var flat landmark.HandFrame
	flat.Handedness = "Right"
	k = a.Update(&flat, testFaceCenter, 100)
	if k.PinchValid {
		t.Error("PinchValid = true for degenerate hand")
	}
}
