package control

import (
	"fmt"

	"controlling_kiln/internal/models"
)

const (
	// MaxPhases bounds the profile; excess document entries are
	// silently dropped.
	MaxPhases = 10

	// BaselineTempC is the assumed kiln temperature before phase 0
	// begins. Later phases chain from the previous phase's target.
	BaselineTempC = 25.0
)

// InvalidPhaseError marks a document entry that cannot form a ramp.
// Today that means a zero duration, which would make the ramp gain
// undefined.
type InvalidPhaseError struct {
	Index           int
	DurationSeconds uint16
	TargetTempC     uint16
}

func (e InvalidPhaseError) Error() string {
	return fmt.Sprintf("phase %d: zero duration (target %d°C)", e.Index, e.TargetTempC)
}

// BuildProfile pairs the two sequences by index and copies up to
// MaxPhases entries, in order. Zero-duration entries are excluded and
// reported back so the caller can surface a warning; they never reach
// the setpoint computation. Empty input yields an empty profile, the
// valid "no profile loaded" state.
func BuildProfile(times, temps []uint16) (models.Profile, []InvalidPhaseError) {
	n := len(times)
	if len(temps) < n {
		n = len(temps)
	}
	if n > MaxPhases {
		n = MaxPhases
	}

	var (
		phases  []models.Phase
		dropped []InvalidPhaseError
	)
	for i := 0; i < n; i++ {
		if times[i] == 0 {
			dropped = append(dropped, InvalidPhaseError{
				Index:           i,
				DurationSeconds: times[i],
				TargetTempC:     temps[i],
			})
			continue
		}
		phases = append(phases, models.Phase{
			DurationSeconds: times[i],
			TargetTempC:     temps[i],
		})
	}
	return models.Profile{Phases: phases}, dropped
}

// PrevEndTemp returns the temperature a phase ramps from: the baseline
// for phase 0, otherwise the previous phase's target. Never the live
// measured temperature.
func PrevEndTemp(p models.Profile, index int) float64 {
	if index == 0 {
		return BaselineTempC
	}
	return float64(p.Phases[index-1].TargetTempC)
}
