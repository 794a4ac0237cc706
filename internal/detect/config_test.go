package detect

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Regions[RegionMouth].ThresholdNormalized = 0 }},
		{"threshold above one", func(c *Config) { c.Regions[RegionScalp].ThresholdNormalized = 1.5 }},
		{"negative threshold", func(c *Config) { c.Regions[RegionEyes].ThresholdNormalized = -0.1 }},
		{"zero max velocity", func(c *Config) { c.MaxVelocityPxPerSec = 0 }},
		{"facing below -1", func(c *Config) { c.FacingDotThreshold = -1.5 }},
		{"facing above 1", func(c *Config) { c.FacingDotThreshold = 1.5 }},
		{"pinch min negative", func(c *Config) { c.PinchAngleMinDeg = -5 }},
		{"pinch max over 180", func(c *Config) { c.PinchAngleMaxDeg = 200 }},
		{"pinch min above max", func(c *Config) { c.PinchAngleMinDeg = 90; c.PinchAngleMaxDeg = 45 }},
		{"negative delay", func(c *Config) { c.AlertDelaySeconds = -1 }},
		{"delay above 10", func(c *Config) { c.AlertDelaySeconds = 11 }},
		{"negative cooldown", func(c *Config) { c.CooldownSeconds = -2 }},
		{"zero staleness", func(c *Config) { c.StalenessBoundMs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_JSONRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Regions[RegionBeard].Enabled = true
	cfg.Regions[RegionBeard].RequiresPinchGate = true
	cfg.AlertDelaySeconds = 1.5

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Config
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, cfg)
	}
}

func TestConfig_UnmarshalRejectsUnknownRegion(t *testing.T) {
	payload := `{"regions":{"forehead":{"enabled":true,"threshold_normalized":0.1}}}`
	var cfg Config
	if err := json.Unmarshal([]byte(payload), &cfg); err == nil {
		t.Fatal("Unmarshal() = nil, want error for unknown region")
	}
}

func TestParseRegion(t *testing.T) {
	for _, r := range Regions() {
		got, err := ParseRegion(r.String())
		if err != nil {
			t.Fatalf("ParseRegion(%q) error = %v", r.String(), err)
		}
		if got != r {
			t.Errorf("ParseRegion(%q) = %v, want %v", r.String(), got, r)
		}
	}
	if _, err := ParseRegion("nose"); err == nil {
		t.Error("ParseRegion(nose) = nil, want error")
	}
}
