package detect

import "fmt"

// State is the per-region alert lifecycle state.
type State int

const (
	// StateIdle: no candidate contact.
	StateIdle State = iota
	// StateCandidate: contact seen, dwell timer running.
	StateCandidate
	// StateAlerting: transient; the tick on which an alert fires. The
	// region moves straight on to cooldown.
	StateAlerting
	// StateCooldown: alert fired recently, further alerts suppressed.
	StateCooldown
)

var stateNames = [...]string{
	StateIdle:      "idle",
	StateCandidate: "candidate",
	StateAlerting:  "alerting",
	StateCooldown:  "cooldown",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText serializes states by name for snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// noTimestamp marks an unset candidateSince.
const noTimestamp = int64(-1)

type regionState struct {
	state            State
	candidateSinceMs int64
	cooldownUntilMs  int64
}

// AlertStateMachine runs one independent state machine per region over the
// per-tick candidate contact signal. It is timestamp-driven: the caller
// supplies nowMs and the machine never reads a clock, which keeps every
// transition reproducible in tests.
type AlertStateMachine struct {
	cfg        Config
	regions    [NumRegions]regionState
	lastTickMs int64
}

// NewAlertStateMachine returns a machine with all regions idle.
func NewAlertStateMachine(cfg Config) *AlertStateMachine {
	m := &AlertStateMachine{cfg: cfg}
	m.resetAll()
	return m
}

func (m *AlertStateMachine) resetAll() {
	for r := range m.regions {
		m.regions[r] = regionState{candidateSinceMs: noTimestamp}
	}
	m.lastTickMs = noTimestamp
}

// SetConfig swaps the active config. Regions disabled by the new config
// drop their state immediately; cooldown stamps on still-enabled regions
// survive so a config tweak cannot un-suppress a fresh alert.
func (m *AlertStateMachine) SetConfig(cfg Config) {
	m.cfg = cfg
	for r := Region(0); r < NumRegions; r++ {
		if !cfg.Regions[r].Enabled {
			m.regions[r] = regionState{candidateSinceMs: noTimestamp}
		}
	}
}

// Reset returns every region to idle and forgets all timers.
func (m *AlertStateMachine) Reset() {
	m.resetAll()
}

// ForceIdle drops every region to idle without emitting events. Used on
// tracking loss: losing the face or hands is not a voluntary stop, so no
// mindful-stop credit. Cooldown stamps survive.
func (m *AlertStateMachine) ForceIdle(nowMs int64) [NumRegions]State {
	for r := range m.regions {
		m.regions[r].state = StateIdle
		m.regions[r].candidateSinceMs = noTimestamp
	}
	m.lastTickMs = nowMs
	var states [NumRegions]State
	return states
}

// Advance runs one tick for every region against the candidate signals
// and returns emitted events plus the observable state per region for the
// debug snapshot.
func (m *AlertStateMachine) Advance(nowMs int64, candidate [NumRegions]bool) ([]Event, [NumRegions]State) {
	// A tick gap past the staleness bound means the timers describe a
	// session that effectively stopped; reset silently rather than
	// crediting or alerting off stale stamps.
	if m.lastTickMs != noTimestamp && nowMs-m.lastTickMs > m.cfg.StalenessBoundMs {
		for r := range m.regions {
			m.regions[r].state = StateIdle
			m.regions[r].candidateSinceMs = noTimestamp
		}
	}
	m.lastTickMs = nowMs

	var events []Event
	var states [NumRegions]State

	delayMs := int64(m.cfg.AlertDelaySeconds * 1000)
	cooldownMs := int64(m.cfg.CooldownSeconds * 1000)

	for i := range m.regions {
		r := Region(i)
		st := &m.regions[i]
		alerted := false

		if st.state == StateIdle && candidate[i] {
			st.state = StateCandidate
			st.candidateSinceMs = nowMs
		}

		switch st.state {
		case StateCandidate:
			if !candidate[i] {
				events = append(events, Event{
					Type:           EventMindfulStop,
					Region:         r,
					TimestampMs:    nowMs,
					HeldDurationMs: nowMs - st.candidateSinceMs,
				})
				st.state = StateIdle
				st.candidateSinceMs = noTimestamp
				break
			}
			if nowMs-st.candidateSinceMs >= delayMs && nowMs >= st.cooldownUntilMs {
				events = append(events, Event{
					Type:           EventAlert,
					Region:         r,
					TimestampMs:    nowMs,
					HeldDurationMs: nowMs - st.candidateSinceMs,
				})
				st.state = StateCooldown
				st.candidateSinceMs = noTimestamp
				st.cooldownUntilMs = nowMs + cooldownMs
				alerted = true
			}
			// Delay satisfied under an active cooldown stays Candidate:
			// the alert is suppressed, not lost.

		case StateCooldown:
			if nowMs >= st.cooldownUntilMs {
				if candidate[i] {
					// Re-arm; a fresh dwell is required before the next
					// alert.
					st.state = StateCandidate
					st.candidateSinceMs = nowMs
				} else {
					st.state = StateIdle
				}
			}
		}

		states[i] = st.state
		if alerted {
			states[i] = StateAlerting
		}
	}
	return events, states
}

// StateOf exposes the current state of one region.
func (m *AlertStateMachine) StateOf(r Region) State {
	return m.regions[r].state
}
