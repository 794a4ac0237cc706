package detect

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// RegionConfig holds the per-region detection profile.
type RegionConfig struct {
	// Enabled turns detection for the region on or off. Disabling a
	// region clears its alert state immediately on apply.
	Enabled bool `json:"enabled"`

	// ThresholdNormalized is the contact distance threshold as a fraction
	// of face width, in (0, 1]. Contact requires distance strictly below
	// the threshold.
	ThresholdNormalized float64 `json:"threshold_normalized"`

	// RequiresPinchGate adds the pinch posture gate for this region.
	// Regions prone to pulling (eyebrows, eyes) use it; broad-contact
	// regions like the scalp skip it.
	RequiresPinchGate bool `json:"requires_pinch_gate"`
}

// Config is the full detection configuration. Values are immutable for the
// lifetime of a tick; a Session swaps configs atomically between ticks via
// ApplyConfig after validation.
type Config struct {
	Regions [NumRegions]RegionConfig

	// MaxVelocityPxPerSec rejects fast incidental brushes; contact must
	// be a deliberate, slow approach.
	MaxVelocityPxPerSec float64 `json:"max_velocity_px_per_sec"`

	// FacingDotThreshold is the minimum palm-facing score in [-1, 1].
	FacingDotThreshold float64 `json:"facing_dot_threshold"`

	// Pinch gate bounds in degrees for the thumb-index-wrist angle.
	PinchAngleMinDeg float64 `json:"pinch_angle_min_deg"`
	PinchAngleMaxDeg float64 `json:"pinch_angle_max_deg"`

	// AlertDelaySeconds is the continuous contact dwell before an alert.
	AlertDelaySeconds float64 `json:"alert_delay_seconds"`

	// CooldownSeconds is the minimum spacing between alerts per region.
	CooldownSeconds float64 `json:"cooldown_seconds"`

	// StalenessBoundMs force-resets region state after a tick gap this
	// large, since stale timers no longer mean anything.
	StalenessBoundMs int64 `json:"staleness_bound_ms"`
}

// DefaultConfig returns the stock detection profile. Per-region thresholds
// mirror the tuning the desktop app ships with.
func DefaultConfig() Config {
	cfg := Config{
		MaxVelocityPxPerSec: 250,
		FacingDotThreshold:  0.3,
		PinchAngleMinDeg:    10,
		PinchAngleMaxDeg:    60,
		AlertDelaySeconds:   3,
		CooldownSeconds:     10,
		StalenessBoundMs:    5000,
	}
	cfg.Regions[RegionScalp] = RegionConfig{Enabled: true, ThresholdNormalized: 0.05}
	cfg.Regions[RegionEyebrows] = RegionConfig{ThresholdNormalized: 0.02, RequiresPinchGate: true}
	cfg.Regions[RegionEyes] = RegionConfig{ThresholdNormalized: 0.02, RequiresPinchGate: true}
	cfg.Regions[RegionMouth] = RegionConfig{ThresholdNormalized: 0.03}
	cfg.Regions[RegionBeard] = RegionConfig{ThresholdNormalized: 0.04}
	return cfg
}

// Validate checks every threshold range. It returns an error wrapping
// ErrInvalidConfig on the first violation; the config is never clamped.
func (c *Config) Validate() error {
	for r := Region(0); r < NumRegions; r++ {
		t := c.Regions[r].ThresholdNormalized
		if t <= 0 || t > 1 {
			return fmt.Errorf("%w: region %s threshold %v outside (0,1]", ErrInvalidConfig, r, t)
		}
	}
	if c.MaxVelocityPxPerSec <= 0 {
		return fmt.Errorf("%w: max velocity %v must be positive", ErrInvalidConfig, c.MaxVelocityPxPerSec)
	}
	if c.FacingDotThreshold < -1 || c.FacingDotThreshold > 1 {
		return fmt.Errorf("%w: facing threshold %v outside [-1,1]", ErrInvalidConfig, c.FacingDotThreshold)
	}
	if c.PinchAngleMinDeg < 0 || c.PinchAngleMaxDeg > 180 || c.PinchAngleMinDeg > c.PinchAngleMaxDeg {
		return fmt.Errorf("%w: pinch angle range [%v,%v] invalid", ErrInvalidConfig, c.PinchAngleMinDeg, c.PinchAngleMaxDeg)
	}
	if c.AlertDelaySeconds < 0 || c.AlertDelaySeconds > 10 {
		return fmt.Errorf("%w: alert delay %v outside [0,10]", ErrInvalidConfig, c.AlertDelaySeconds)
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("%w: cooldown %v must not be negative", ErrInvalidConfig, c.CooldownSeconds)
	}
	if c.StalenessBoundMs <= 0 {
		return fmt.Errorf("%w: staleness bound %v must be positive", ErrInvalidConfig, c.StalenessBoundMs)
	}
	return nil
}

// configJSON is the wire shape of Config: regions keyed by name so clients
// and the settings store never see enum ordinals.
type configJSON struct {
	Regions             map[string]RegionConfig `json:"regions"`
	MaxVelocityPxPerSec float64                 `json:"max_velocity_px_per_sec"`
	FacingDotThreshold  float64                 `json:"facing_dot_threshold"`
	PinchAngleMinDeg    float64                 `json:"pinch_angle_min_deg"`
	PinchAngleMaxDeg    float64                 `json:"pinch_angle_max_deg"`
	AlertDelaySeconds   float64                 `json:"alert_delay_seconds"`
	CooldownSeconds     float64                 `json:"cooldown_seconds"`
	StalenessBoundMs    int64                   `json:"staleness_bound_ms"`
}

// MarshalJSON implements json.Marshaler.
func (c Config) MarshalJSON() ([]byte, error) {
	out := configJSON{
		Regions:             make(map[string]RegionConfig, NumRegions),
		MaxVelocityPxPerSec: c.MaxVelocityPxPerSec,
		FacingDotThreshold:  c.FacingDotThreshold,
		PinchAngleMinDeg:    c.PinchAngleMinDeg,
		PinchAngleMaxDeg:    c.PinchAngleMaxDeg,
		AlertDelaySeconds:   c.AlertDelaySeconds,
		CooldownSeconds:     c.CooldownSeconds,
		StalenessBoundMs:    c.StalenessBoundMs,
	}
	for r := Region(0); r < NumRegions; r++ {
		out.Regions[r.String()] = c.Regions[r]
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown region names are
// rejected; regions missing from the payload keep zero values and fail
// Validate, so a partial config cannot slip through silently.
func (c *Config) UnmarshalJSON(data []byte) error {
	var in configJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Config{
		MaxVelocityPxPerSec: in.MaxVelocityPxPerSec,
		FacingDotThreshold:  in.FacingDotThreshold,
		PinchAngleMinDeg:    in.PinchAngleMinDeg,
		PinchAngleMaxDeg:    in.PinchAngleMaxDeg,
		AlertDelaySeconds:   in.AlertDelaySeconds,
		CooldownSeconds:     in.CooldownSeconds,
		StalenessBoundMs:    in.StalenessBoundMs,
	}
	for name, rc := range in.Regions {
		r, err := ParseRegion(name)
		if err != nil {
			return err
		}
		c.Regions[r] = rc
	}
	return nil
}
