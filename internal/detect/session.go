package detect

import (
	"github.com/google/uuid"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// Session wires the mapper, kinematics analyzer, proximity evaluation,
// contact gates and the alert state machine into a single per-tick update.
// It owns all mutable detection state; independent sessions share nothing.
//
// A Session is not safe for concurrent use. Exactly one caller must drive
// Update; ApplyConfig and Reset may only be called between ticks from that
// same caller.
type Session struct {
	id  string
	cfg Config
	kin *KinematicsAnalyzer
	fsm *AlertStateMachine
}

// NewSession creates a session with the given config. The config is
// validated; an invalid config fails construction.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		id:  uuid.NewString(),
		cfg: cfg,
		kin: NewKinematicsAnalyzer(),
		fsm: NewAlertStateMachine(cfg),
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the active configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// ApplyConfig validates and atomically installs a new configuration. On
// failure the previous configuration stays in effect untouched. Regions
// disabled by the new config drop their alert state immediately.
func (s *Session) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.fsm.SetConfig(cfg)
	return nil
}

// Reset clears all per-region and per-hand state, as if the session had
// just been constructed.
func (s *Session) Reset() {
	s.kin.Reset()
	s.fsm.Reset()
}

// Update processes one landmark frame and returns the events it produced
// plus a debug snapshot of every enabled region.
func (s *Session) Update(frame landmark.Frame) Result {
	now := frame.TimestampMs

	// Tracking loss drops everything to idle with no mindful-stop credit.
	if !frame.Tracked() {
		states := s.fsm.ForceIdle(now)
		return Result{Snapshot: s.idleSnapshot(frame, states)}
	}

	g, err := MapRegions(frame.Face, &s.cfg)
	if err != nil {
		// Degenerate geometry: the frame is unreliable, not absent. Skip
		// the tick entirely; no transitions in either direction.
		return Result{Snapshot: s.frozenSnapshot(frame)}
	}

	// Best normalized distance per region across hands, plus the combined
	// candidate signal: a region is in candidate contact when any hand
	// passes all gates.
	var candidate [NumRegions]bool
	best := make(map[Region]float64, len(g.Regions))
	for i := range frame.Hands {
		hand := &frame.Hands[i]
		k := s.kin.Update(hand, g.Centroid, now)
		prox := EvaluateProximity(hand, g)
		for r, p := range prox {
			if d, seen := best[r]; !seen || p.Distance < d {
				best[r] = p.Distance
			}
			if classifyContact(k, p, s.cfg.Regions[r], &s.cfg) {
				candidate[r] = true
			}
		}
	}

	events, states := s.fsm.Advance(now, candidate)

	snap := Snapshot{
		TimestampMs:  now,
		FaceDetected: true,
		HandsTracked: len(frame.Hands),
		Regions:      make(map[Region]RegionSnapshot, len(g.Regions)),
	}
	for r := range g.Regions {
		d, seen := best[r]
		if !seen {
			d = -1
		}
		snap.Regions[r] = RegionSnapshot{
			Distance:         d,
			CandidateContact: candidate[r],
			State:            states[r],
		}
	}
	return Result{Events: events, Snapshot: snap}
}

// idleSnapshot builds the debug view for tracking-loss ticks.
func (s *Session) idleSnapshot(frame landmark.Frame, states [NumRegions]State) Snapshot {
	snap := Snapshot{
		TimestampMs:  frame.TimestampMs,
		FaceDetected: frame.Face != nil,
		HandsTracked: len(frame.Hands),
		Regions:      make(map[Region]RegionSnapshot, NumRegions),
	}
	for r := Region(0); r < NumRegions; r++ {
		if !s.cfg.Regions[r].Enabled {
			continue
		}
		snap.Regions[r] = RegionSnapshot{Distance: -1, State: states[r]}
	}
	return snap
}

// frozenSnapshot reports current states without advancing anything, for
// degenerate-geometry ticks.
func (s *Session) frozenSnapshot(frame landmark.Frame) Snapshot {
	snap := Snapshot{
		TimestampMs:  frame.TimestampMs,
		FaceDetected: frame.Face != nil,
		HandsTracked: len(frame.Hands),
		Regions:      make(map[Region]RegionSnapshot, NumRegions),
	}
	for r := Region(0); r < NumRegions; r++ {
		if !s.cfg.Regions[r].Enabled {
			continue
		}
		snap.Regions[r] = RegionSnapshot{Distance: -1, State: s.fsm.StateOf(r)}
	}
	return snap
}
