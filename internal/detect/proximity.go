package detect

import (
	"github.com/ayusman/mindfultouch/internal/geom"
	"github.com/ayusman/mindfultouch/internal/landmark"
)

// Proximity is the nearest-fingertip result for one region.
type Proximity struct {
	// Distance is normalized by face width.
	Distance float64
	// FingertipIndex is the hand landmark index of the closest tip. Ties
	// break to the lowest index, so results are deterministic.
	FingertipIndex int
}

// EvaluateProximity computes, for every mapped region, the minimum
// normalized distance from the hand's five fingertips to the region
// centroid.
func EvaluateProximity(hand *landmark.HandFrame, g *FaceGeometry) map[Region]Proximity {
	out := make(map[Region]Proximity, len(g.Regions))
	for r, mapped := range g.Regions {
		best := Proximity{Distance: -1}
		for _, idx := range landmark.FingertipIndices {
			d := geom.Distance(hand.Points[idx], mapped.Centroid) / g.Width
			if best.Distance < 0 || d < best.Distance {
				best = Proximity{Distance: d, FingertipIndex: idx}
			}
		}
		out[r] = best
	}
	return out
}
