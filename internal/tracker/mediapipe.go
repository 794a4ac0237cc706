package tracker

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// MediaPipeTracker implements Tracker using a Python MediaPipe subprocess
// running the holistic hand + face mesh models. Frames go down as
// length-prefixed JPEGs; landmark frames come back as JSON lines with
// coordinates normalized to [0,1], which this side scales to pixels.
type MediaPipeTracker struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	idleTimer *time.Timer
}

// NewMediaPipeTracker creates a new MediaPipe tracker. The Python process
// is started lazily on first detection.
func NewMediaPipeTracker(config Config) (*MediaPipeTracker, error) {
	if findTrackerScript() == "" {
		return nil, fmt.Errorf("landmark_service.py not found")
	}
	return &MediaPipeTracker{config: config}, nil
}

// Detect sends one frame to the subprocess and converts the response to
// pixel-space landmark frames.
func (t *MediaPipeTracker) Detect(frame *gocv.Mat, timestampMs int64) (landmark.Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := landmark.Frame{TimestampMs: timestampMs}

	if err := t.ensureStarted(); err != nil {
		return out, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return out, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	data := buf.GetBytes()

	// Length (4 bytes big-endian) + JPEG payload.
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))
	if _, err := t.stdin.Write(length); err != nil {
		return out, fmt.Errorf("write length: %w", err)
	}
	if _, err := t.stdin.Write(data); err != nil {
		return out, fmt.Errorf("write data: %w", err)
	}

	line, err := t.stdout.ReadString('\n')
	if err != nil {
		return out, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Hands []jsonHand `json:"hands"`
		Face  *jsonFace  `json:"face"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return out, fmt.Errorf("parse response: %w", err)
	}

	width := float64(frame.Cols())
	height := float64(frame.Rows())
	for _, h := range response.Hands {
		out.Hands = append(out.Hands, h.toHandFrame(width, height))
	}
	if response.Face != nil {
		out.Face = response.Face.toFaceFrame(width, height)
	}

	t.resetIdleTimer()
	return out, nil
}

// Close shuts down the Python process.
func (t *MediaPipeTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shutdown()
}

func (t *MediaPipeTracker) ensureStarted() error {
	if t.started {
		return nil
	}

	scriptPath := findTrackerScript()
	if scriptPath == "" {
		return fmt.Errorf("landmark_service.py not found")
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	t.cmd = exec.Command(pythonPath, scriptPath,
		fmt.Sprintf("--max-hands=%d", t.config.MaxHands),
		fmt.Sprintf("--min-confidence=%g", t.config.MinConfidence),
		fmt.Sprintf("--min-tracking-confidence=%g", t.config.MinTrackingConf),
	)

	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("start landmark service: %w", err)
	}

	t.stdin = stdin
	t.stdout = bufio.NewReader(stdout)
	t.started = true
	return nil
}

func (t *MediaPipeTracker) shutdown() error {
	if !t.started {
		return nil
	}

	if t.idleTimer != nil {
		t.idleTimer.Stop()
		t.idleTimer = nil
	}
	if t.stdin != nil {
		t.stdin.Close()
	}

	err := t.cmd.Wait()
	t.started = false
	t.cmd = nil
	t.stdin = nil
	t.stdout = nil
	return err
}

// resetIdleTimer shuts the subprocess down after 30s without frames; the
// MediaPipe models hold a lot of memory for an app that mostly idles.
func (t *MediaPipeTracker) resetIdleTimer() {
	if t.idleTimer != nil {
		t.idleTimer.Stop()
	}
	t.idleTimer = time.AfterFunc(30*time.Second, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.shutdown()
	})
}

func findTrackerScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/landmark_service.py",
		"../scripts/landmark_service.py",
		filepath.Join(execDir, "scripts/landmark_service.py"),
		filepath.Join(os.Getenv("HOME"), ".mindfultouch/scripts/landmark_service.py"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment
// near the executable or the app data directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".mindfultouch/venv/bin/python"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// Wire types from the Python service. Coordinates are normalized [0,1].

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
	TrackID    string      `json:"track_id,omitempty"`
}

type jsonFace struct {
	Points []jsonPoint `json:"points"`
}

func (h jsonHand) toHandFrame(width, height float64) landmark.HandFrame {
	hf := landmark.HandFrame{
		Handedness: h.Handedness,
		Score:      h.Score,
		TrackID:    h.TrackID,
	}
	for i := 0; i < landmark.NumHandLandmarks && i < len(h.Points); i++ {
		hf.Points[i] = landmark.Point2{X: h.Points[i].X * width, Y: h.Points[i].Y * height}
	}
	return hf
}

func (f *jsonFace) toFaceFrame(width, height float64) *landmark.FaceFrame {
	if len(f.Points) < landmark.NumFaceLandmarks {
		// A truncated mesh is unusable; treat as no face.
		return nil
	}
	ff := &landmark.FaceFrame{}
	for i := 0; i < landmark.NumFaceLandmarks; i++ {
		ff.Points[i] = landmark.Point2{X: f.Points[i].X * width, Y: f.Points[i].Y * height}
	}
	return ff
}
