package models

// Phase is one ramp segment: hold the heater against a linear ramp that
// ends at TargetTempC after DurationSeconds.
type Phase struct {
	DurationSeconds uint16 `json:"duration_seconds"`
	TargetTempC     uint16 `json:"target_temp_c"`
}

// Profile is the ordered sequence of phases for one firing. It is built
// once from the profile document and never mutated during a run; a
// reload replaces it wholesale.
type Profile struct {
	Phases []Phase `json:"phases"`
}

// Count returns the number of valid phases.
func (p Profile) Count() int { return len(p.Phases) }

// Empty reports whether the profile has no phases. Running an empty
// profile is a valid no-op, not an error.
func (p Profile) Empty() bool { return len(p.Phases) == 0 }
