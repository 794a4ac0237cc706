package detect

import (
	"math"
	"testing"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// sessionConfig watches the mouth with a 1s delay and 2s cooldown. The
// threshold is generous enough for the preset hand fixture, whose nearest
// fingertip sits ~7px from the mouth centroid of a 200px-wide face.
func sessionConfig() Config {
	cfg := DefaultConfig()
	cfg.Regions[RegionScalp].Enabled = false
	cfg.Regions[RegionMouth].Enabled = true
	cfg.Regions[RegionMouth].ThresholdNormalized = 0.08
	cfg.AlertDelaySeconds = 1
	cfg.CooldownSeconds = 2
	return cfg
}

func mouthFrame(ts int64) landmark.Frame {
	face := landmark.TestFace(320, 240, 200)
	hand := landmark.TestHand(landmark.Point2{X: 320, Y: 300}, "Right")
	return landmark.TestFrame(ts, face, hand)
}

func awayFrame(ts int64) landmark.Frame {
	face := landmark.TestFace(320, 240, 200)
	hand := landmark.TestHand(landmark.Point2{X: 900, Y: 900}, "Right")
	return landmark.TestFrame(ts, face, hand)
}

func TestSession_AlertOnSustainedContact(t *testing.T) {
	s, err := NewSession(sessionConfig())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	var alerts []Event
	for ts := int64(0); ts <= 1000; ts += 100 {
		res := s.Update(mouthFrame(ts))
		for _, e := range res.Events {
			if e.Type == EventAlert {
				alerts = append(alerts, e)
			}
		}

		snap := res.Snapshot.Regions[RegionMouth]
		if !snap.CandidateContact {
			t.Fatalf("t=%d: candidate contact = false, want true", ts)
		}
		if math.Abs(snap.Distance-math.Sqrt(50)/200) > 1e-9 {
			t.Errorf("t=%d: distance = %v, want %v", ts, snap.Distance, math.Sqrt(50)/200)
		}
	}

	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Region != RegionMouth {
		t.Errorf("region = %v, want mouth", alerts[0].Region)
	}
	if alerts[0].HeldDurationMs != 1000 {
		t.Errorf("held = %dms, want 1000", alerts[0].HeldDurationMs)
	}
}

func TestSession_MindfulStopOnVoluntaryRelease(t *testing.T) {
	s, err := NewSession(sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	for ts := int64(0); ts <= 500; ts += 100 {
		res := s.Update(mouthFrame(ts))
		if len(res.Events) != 0 {
			t.Fatalf("t=%d: unexpected events %v", ts, res.Events)
		}
	}

	// Hand still tracked but moved away from the face: a voluntary stop.
	res := s.Update(awayFrame(600))
	if len(res.Events) != 1 || res.Events[0].Type != EventMindfulStop {
		t.Fatalf("events = %v, want one mindful stop", res.Events)
	}
	if res.Events[0].HeldDurationMs != 600 {
		t.Errorf("held = %dms, want 600", res.Events[0].HeldDurationMs)
	}
}

func TestSession_TrackingLossResetsWithoutCredit(t *testing.T) {
	s, err := NewSession(sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	s.Update(mouthFrame(0))
	s.Update(mouthFrame(100))

	// Face disappears mid-candidate: idle, no mindful stop.
	res := s.Update(landmark.Frame{TimestampMs: 200})
	if len(res.Events) != 0 {
		t.Fatalf("events = %v, want none on tracking loss", res.Events)
	}
	snap := res.Snapshot.Regions[RegionMouth]
	if snap.State != StateIdle {
		t.Errorf("state = %v, want idle", snap.State)
	}
	if res.Snapshot.FaceDetected {
		t.Error("FaceDetected = true, want false")
	}
}

func TestSession_DegenerateFaceFreezesTick(t *testing.T) {
	s, err := NewSession(sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	s.Update(mouthFrame(0))
	if s.fsm.StateOf(RegionMouth) != StateCandidate {
		t.Fatal("setup failed")
	}

	// Collapsed mesh with a hand present: unreliable rather than absent.
	// The tick is skipped and the candidate survives.
	bad := landmark.TestFrame(100, &landmark.FaceFrame{},
		landmark.TestHand(landmark.Point2{X: 320, Y: 300}, "Right"))
	res := s.Update(bad)
	if len(res.Events) != 0 {
		t.Fatalf("events = %v, want none", res.Events)
	}
	if s.fsm.StateOf(RegionMouth) != StateCandidate {
		t.Errorf("state = %v, want candidate preserved", s.fsm.StateOf(RegionMouth))
	}
}

func TestSession_ApplyConfig(t *testing.T) {
	s, err := NewSession(sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	// Invalid config is rejected and the previous one stays in effect.
	bad := sessionConfig()
	bad.CooldownSeconds = -1
	if err := s.ApplyConfig(bad); err == nil {
		t.Fatal("ApplyConfig() = nil, want error")
	}
	if s.Config().CooldownSeconds != 2 {
		t.Errorf("CooldownSeconds = %v, want previous value 2", s.Config().CooldownSeconds)
	}

	// Disabling a region clears its state immediately.
	s.Update(mouthFrame(0))
	if s.fsm.StateOf(RegionMouth) != StateCandidate {
		t.Fatal("setup failed")
	}
	next := sessionConfig()
	next.Regions[RegionMouth].Enabled = false
	if err := s.ApplyConfig(next); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	if s.fsm.StateOf(RegionMouth) != StateIdle {
		t.Errorf("state = %v, want idle after disable", s.fsm.StateOf(RegionMouth))
	}
}

func TestSession_Reset(t *testing.T) {
	s, err := NewSession(sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	s.Update(mouthFrame(0))
	s.Update(mouthFrame(100))
	s.Reset()

	if s.fsm.StateOf(RegionMouth) != StateIdle {
		t.Errorf("state = %v, want idle after reset", s.fsm.StateOf(RegionMouth))
	}

	// History is gone: the first tick after reset has no velocity.
	res := s.Update(mouthFrame(200))
	if len(res.Events) != 0 {
		t.Errorf("events = %v, want none right after reset", res.Events)
	}
	if !res.Snapshot.Regions[RegionMouth].CandidateContact {
		t.Error("candidate contact = false after reset, want a fresh episode")
	}
}

func TestSession_IndependentSessions(t *testing.T) {
	s1, _ := NewSession(sessionConfig())
	s2, _ := NewSession(sessionConfig())

	if s1.ID() == s2.ID() {
		t.Error("sessions share an ID")
	}

	s1.Update(mouthFrame(0))
	if s2.fsm.StateOf(RegionMouth) != StateIdle {
		t.Error("updating one session moved the other's state")
	}
}
