package landmark

// Face mesh landmark indices following the MediaPipe 468-point face mesh.
// Only the points the region mapper actually references are named here.
const (
	ForeheadCenter   = 9
	LeftTemple       = 162
	RightTemple      = 389
	LeftForehead     = 103
	RightForehead    = 332
	MouthLeftCorner  = 61
	MouthRightCorner = 291
	ChinBottom       = 175
	LeftCheek        = 117
	RightCheek       = 346
	NumFaceLandmarks = 468
)

// FaceFrame is one face observation: the full 468-point mesh in pixel
// coordinates. A single face per frame is assumed; if the tracker ever
// reports more, only the first is used.
type FaceFrame struct {
	Points [NumFaceLandmarks]Point2 `json:"points"`
}
