package detect

import (
	"math"
	"testing"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// handWithTips returns a hand whose five fingertips sit at the given
// points; every other landmark is parked far away so it cannot interfere.
func handWithTips(tips [5]landmark.Point2) landmark.HandFrame {
	h := landmark.HandFrame{Handedness: "Right", Score: 1}
	for i := range h.Points {
		h.Points[i] = landmark.Point2{X: -1000, Y: -1000}
	}
	for i, idx := range landmark.FingertipIndices {
		h.Points[idx] = tips[i]
	}
	return h
}

func TestEvaluateProximity_NormalizesByFaceWidth(t *testing.T) {
	// Threshold 0.08, face width 120px, raw fingertip distance 8px:
	// 8/120 = 0.0667 < 0.08, so the proximity gate passes.
	g := &FaceGeometry{
		Width: 120,
		Regions: map[Region]MappedRegion{
			RegionMouth: {Centroid: landmark.Point2{X: 100, Y: 100}, Threshold: 0.08},
		},
	}
	hand := handWithTips([5]landmark.Point2{
		{X: 300, Y: 300},
		{X: 108, Y: 100}, // 8px from the centroid
		{X: 300, Y: 300},
		{X: 300, Y: 300},
		{X: 300, Y: 300},
	})

	p := EvaluateProximity(&hand, g)[RegionMouth]
	if math.Abs(p.Distance-8.0/120.0) > 1e-9 {
		t.Errorf("Distance = %v, want %v", p.Distance, 8.0/120.0)
	}
	if p.FingertipIndex != landmark.IndexTip {
		t.Errorf("FingertipIndex = %d, want %d", p.FingertipIndex, landmark.IndexTip)
	}
	if p.Distance >= 0.08 {
		t.Errorf("Distance %v not below threshold 0.08", p.Distance)
	}
}

func TestEvaluateProximity_TieBreaksToLowestIndex(t *testing.T) {
	g := &FaceGeometry{
		Width: 100,
		Regions: map[Region]MappedRegion{
			RegionScalp: {Centroid: landmark.Point2{X: 0, Y: 0}, Threshold: 0.05},
		},
	}
	// Thumb and pinky tips equidistant from the centroid.
	hand := handWithTips([5]landmark.Point2{
		{X: 10, Y: 0},
		{X: 500, Y: 0},
		{X: 500, Y: 0},
		{X: 500, Y: 0},
		{X: -10, Y: 0},
	})

	p := EvaluateProximity(&hand, g)[RegionScalp]
	if p.FingertipIndex != landmark.ThumbTip {
		t.Errorf("FingertipIndex = %d, want thumb tip %d on tie", p.FingertipIndex, landmark.ThumbTip)
	}
}

func TestEvaluateProximity_CoversAllMappedRegions(t *testing.T) {
	cfg := allEnabledConfig()
	face := landmark.TestFace(320, 240, 200)
	g, err := MapRegions(face, &cfg)
	if err != nil {
		t.Fatal(err)
	}

	hand := landmark.TestHand(landmark.Point2{X: 320, Y: 300}, "Right")
	prox := EvaluateProximity(&hand, g)
	if len(prox) != len(g.Regions) {
		t.Fatalf("got %d proximity entries, want %d", len(prox), len(g.Regions))
	}
	for r, p := range prox {
		if p.Distance < 0 {
			t.Errorf("%s distance = %v, want >= 0", r, p.Distance)
		}
	}
}
