package detect

import (
	"errors"

	"github.com/ayusman/mindfultouch/internal/geom"
	"github.com/ayusman/mindfultouch/internal/landmark"
)

// ErrDegenerateFace marks a face frame whose temple-to-temple width is too
// small to normalize against. The tick is skipped, not failed: tracking is
// momentarily unreliable and no state should move.
var ErrDegenerateFace = errors.New("degenerate face geometry")

// minFaceWidthPx is the face width floor in pixels. Below this the mesh is
// collapsed or the face is implausibly far away.
const minFaceWidthPx = 1e-6

// MappedRegion is one watched region resolved against the current face:
// its centroid in pixel coordinates and its normalized contact threshold.
type MappedRegion struct {
	Centroid  landmark.Point2
	Threshold float64
}

// FaceGeometry is the per-tick output of region mapping. Width is the
// temple-to-temple distance in pixels and is the normalization factor for
// every distance downstream, keeping thresholds scale-invariant across
// camera distances.
type FaceGeometry struct {
	Width    float64
	Centroid landmark.Point2
	Regions  map[Region]MappedRegion
}

// MapRegions resolves centroids for every enabled region of cfg against
// the face frame. It returns ErrDegenerateFace when the face width is
// below the epsilon floor.
func MapRegions(face *landmark.FaceFrame, cfg *Config) (*FaceGeometry, error) {
	lt := face.Points[landmark.LeftTemple]
	rt := face.Points[landmark.RightTemple]
	width := geom.Distance(lt, rt)
	if width < minFaceWidthPx {
		return nil, ErrDegenerateFace
	}

	g := &FaceGeometry{
		Width: width,
		Centroid: geom.Centroid([]landmark.Point2{
			lt, rt,
			face.Points[landmark.ForeheadCenter],
			face.Points[landmark.ChinBottom],
		}),
		Regions: make(map[Region]MappedRegion, NumRegions),
	}

	for r := Region(0); r < NumRegions; r++ {
		rc := cfg.Regions[r]
		if !rc.Enabled {
			continue
		}
		g.Regions[r] = MappedRegion{
			Centroid:  regionCentroid(r, face, width),
			Threshold: rc.ThresholdNormalized,
		}
	}
	return g, nil
}

// regionCentroid computes the pixel centroid of one region. Eyebrows, eyes
// and mouth come straight from their mesh index tables; scalp and beard
// have no mesh points of their own and are extrapolated from the face
// outline, scaled by face width.
func regionCentroid(r Region, face *landmark.FaceFrame, width float64) landmark.Point2 {
	switch r {
	case RegionEyebrows:
		return indexCentroid(face, landmark.EyebrowIndices)
	case RegionEyes:
		return indexCentroid(face, landmark.EyeIndices)
	case RegionMouth:
		return indexCentroid(face, landmark.MouthIndices)
	case RegionScalp:
		return scalpCentroid(face, width)
	case RegionBeard:
		return beardCentroid(face, width)
	}
	return landmark.Point2{}
}

func indexCentroid(face *landmark.FaceFrame, indices []int) landmark.Point2 {
	points := make([]landmark.Point2, len(indices))
	for i, idx := range indices {
		points[i] = face.Points[idx]
	}
	return geom.Centroid(points)
}

// scalpCentroid extrapolates the hair area above the forehead: the temple
// and forehead outline extended upward by a fraction of face width. Image
// Y grows downward, so "up" is negative.
func scalpCentroid(face *landmark.FaceFrame, width float64) landmark.Point2 {
	lt := face.Points[landmark.LeftTemple]
	rt := face.Points[landmark.RightTemple]
	fc := face.Points[landmark.ForeheadCenter]
	rise := width * 0.6

	return geom.Centroid([]landmark.Point2{
		face.Points[landmark.LeftForehead],
		lt,
		{X: lt.X - width*0.1, Y: lt.Y - rise},
		{X: fc.X, Y: fc.Y - rise*1.5},
		{X: rt.X + width*0.1, Y: rt.Y - rise},
		rt,
		face.Points[landmark.RightForehead],
	})
}

// beardCentroid covers the jawline and lower cheeks: a box spanning from
// just above the mouth corners down past the chin.
func beardCentroid(face *landmark.FaceFrame, width float64) landmark.Point2 {
	ml := face.Points[landmark.MouthLeftCorner]
	mr := face.Points[landmark.MouthRightCorner]
	chin := face.Points[landmark.ChinBottom]
	cheekSpan := geom.Distance(face.Points[landmark.LeftCheek], face.Points[landmark.RightCheek])

	height := cheekSpan * 0.3
	topY := ml.Y - height*0.3
	bottomY := chin.Y + height*0.7
	return landmark.Point2{
		X: (ml.X + mr.X) / 2,
		Y: (topY + bottomY) / 2,
	}
}
