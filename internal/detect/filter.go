package detect

// classifyContact applies the false-positive gates for one hand against
// one region. All gates must pass. Each gate suppresses one false-positive
// class: proximity rejects casual near-misses, velocity rejects fast
// incidental brushes, facing rejects backhanded contact, and the pinch
// gate rejects an open palm resting on the face.
func classifyContact(k Kinematics, p Proximity, rc RegionConfig, cfg *Config) bool {
	// Strictly below threshold; boundary-equal is non-contact.
	if p.Distance < 0 || p.Distance >= rc.ThresholdNormalized {
		return false
	}
	// With insufficient history velocity reads 0 and the gate passes;
	// the dwell requirement downstream covers the first frames.
	if k.VelocityPxPerSec > cfg.MaxVelocityPxPerSec {
		return false
	}
	if k.PalmFacingScore < cfg.FacingDotThreshold {
		return false
	}
	if rc.RequiresPinchGate {
		if !k.PinchValid {
			return false
		}
		if k.PinchAngleDeg < cfg.PinchAngleMinDeg || k.PinchAngleDeg > cfg.PinchAngleMaxDeg {
			return false
		}
	}
	return true
}
