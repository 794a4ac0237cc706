// Package detect implements the hand-to-face contact detection core: face
// region mapping, hand kinematics, multi-criteria contact gating and the
// per-region alert state machine. The package is pure computation; one
// Session is driven with one landmark frame per tick by a single caller.
package detect

import "fmt"

// Region identifies a watched facial zone.
type Region int

const (
	RegionScalp Region = iota
	RegionEyebrows
	RegionEyes
	RegionMouth
	RegionBeard
	NumRegions
)

var regionNames = [NumRegions]string{
	RegionScalp:    "scalp",
	RegionEyebrows: "eyebrows",
	RegionEyes:     "eyes",
	RegionMouth:    "mouth",
	RegionBeard:    "beard",
}

// String returns the external identifier for the region.
func (r Region) String() string {
	if r < 0 || r >= NumRegions {
		return fmt.Sprintf("region(%d)", int(r))
	}
	return regionNames[r]
}

// ParseRegion maps an external string identifier to a Region. This is the
// only place region names cross from strings into the enum.
func ParseRegion(name string) (Region, error) {
	for r, n := range regionNames {
		if n == name {
			return Region(r), nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", name)
}

// Regions returns all regions in declaration order.
func Regions() []Region {
	out := make([]Region, NumRegions)
	for i := range out {
		out[i] = Region(i)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler so regions serialize as
// their external names in JSON.
func (r Region) MarshalText() ([]byte, error) {
	if r < 0 || r >= NumRegions {
		return nil, fmt.Errorf("invalid region %d", int(r))
	}
	return []byte(regionNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
