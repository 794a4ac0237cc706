package landmark

// Face mesh index tables for the facial regions watched by the detector.
// These are static data following the MediaPipe face mesh topology; the
// region mapper derives centroids from them.

// EyebrowIndices covers both eyebrows.
var EyebrowIndices = []int{
	70, 63, 105, 66, 107, 55, 65, 52, 53, 46, // right eyebrow
	285, 295, 282, 283, 276, 300, 293, 334, 296, 336, // left eyebrow
}

// EyeIndices covers both eye contours.
var EyeIndices = []int{
	33, 7, 163, 144, 145, 153, 154, 155, 133, 173, 157, 158, 159, 160, 161, 246, // right eye
	362, 398, 384, 385, 386, 387, 388, 466, 263, 249, 390, 373, 374, 380, 381, 382, // left eye
}

// MouthIndices covers the outer and inner lip contours.
var MouthIndices = []int{
	61, 84, 17, 314, 405, 320, 307, 375, 321, 308, 324, 318,
	78, 95, 88, 178, 87, 14, 317, 402,
}
