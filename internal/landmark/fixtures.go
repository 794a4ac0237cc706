package landmark

// Preset frames for tests and the mock tracker. Geometry is synthetic but
// proportioned like real tracker output at roughly webcam scale.

// TestFace returns a face frame centered at (cx, cy) with the given temple
// to temple width in pixels. Every mesh point not explicitly placed sits at
// the face center, which keeps derived centroids stable.
func TestFace(cx, cy, width float64) *FaceFrame {
	f := &FaceFrame{}
	for i := range f.Points {
		f.Points[i] = Point2{X: cx, Y: cy}
	}

	w := width
	set := func(idx int, dx, dy float64) {
		f.Points[idx] = Point2{X: cx + dx*w, Y: cy + dy*w}
	}

	// Face outline anchors. Y grows downward in image coordinates, so the
	// forehead is negative and the chin positive.
	set(LeftTemple, -0.5, 0)
	set(RightTemple, 0.5, 0)
	set(ForeheadCenter, 0, -0.45)
	set(LeftForehead, -0.35, -0.4)
	set(RightForehead, 0.35, -0.4)
	set(ChinBottom, 0, 0.6)
	set(LeftCheek, -0.4, 0.05)
	set(RightCheek, 0.4, 0.05)
	set(MouthLeftCorner, -0.2, 0.3)
	set(MouthRightCorner, 0.2, 0.3)

	spread(f, EyebrowIndices, cx, cy-0.25*w, 0.6*w)
	spread(f, EyeIndices, cx, cy-0.15*w, 0.55*w)
	spread(f, MouthIndices, cx, cy+0.3*w, 0.35*w)

	return f
}

// spread places the indexed points evenly across a horizontal span centered
// at (cx, cy), so their centroid lands on (cx, cy).
func spread(f *FaceFrame, indices []int, cx, cy, span float64) {
	n := len(indices)
	if n == 1 {
		f.Points[indices[0]] = Point2{X: cx, Y: cy}
		return
	}
	for i, idx := range indices {
		x := cx - span/2 + span*float64(i)/float64(n-1)
		f.Points[idx] = Point2{X: x, Y: cy}
	}
}

// TestHand returns a hand frame in a deliberate pulling posture with the
// fingertip cluster at tip: thumb and index close together, palm plane
// oriented toward a target above the wrist. Handedness must be "Left" or
// "Right"; a left hand is mirrored around the tip X coordinate.
func TestHand(tip Point2, handedness string) HandFrame {
	h := HandFrame{
		Handedness: handedness,
		Score:      0.95,
	}

	mirror := 1.0
	if handedness == "Left" {
		mirror = -1
	}
	set := func(idx int, dx, dy float64) {
		h.Points[idx] = Point2{X: tip.X + mirror*dx, Y: tip.Y + dy}
	}

	set(Wrist, 0, 80)

	// Thumb curled in toward the index tip.
	set(ThumbCMC, -20, 60)
	set(ThumbMCP, -24, 45)
	set(ThumbIP, -25, 25)
	set(ThumbTip, -25, 5)

	// Index pointing at the target.
	set(IndexMCP, -30, 40)
	set(IndexPIP, -20, 25)
	set(IndexDIP, -8, 10)
	set(IndexTip, 5, -5)

	set(MiddleMCP, 0, 38)
	set(MiddlePIP, 0, 22)
	set(MiddleDIP, 0, 6)
	set(MiddleTip, 0, -8)

	set(RingMCP, 15, 39)
	set(RingPIP, 13, 24)
	set(RingDIP, 10, 9)
	set(RingTip, 8, -4)

	set(PinkyMCP, 30, 40)
	set(PinkyPIP, 26, 27)
	set(PinkyDIP, 20, 14)
	set(PinkyTip, 14, 2)

	return h
}

// TestBackhand returns a hand at tip with the palm plane facing away from
// the target, which the orientation gate must reject. It is TestHand with
// the opposite handedness label, so the plane winding reads reversed.
func TestBackhand(tip Point2, handedness string) HandFrame {
	other := "Left"
	if handedness == "Left" {
		other = "Right"
	}
	h := TestHand(tip, other)
	h.Handedness = handedness
	return h
}

// TestFrame bundles a face and one hand into a single tick at ts.
func TestFrame(ts int64, face *FaceFrame, hands ...HandFrame) Frame {
	return Frame{TimestampMs: ts, Face: face, Hands: hands}
}
