package control

import "controlling_kiln/internal/models"

// Gain returns the ramp slope in °C per second for a phase starting
// from prevEndC. Negative when the phase cools. The profile builder
// guarantees DurationSeconds > 0.
func Gain(phase models.Phase, prevEndC float64) float64 {
	return (float64(phase.TargetTempC) - prevEndC) / float64(phase.DurationSeconds)
}

// Setpoint returns the instantaneous ramp target elapsedSeconds into
// the phase: a linear interpolation from prevEndC at 0 to the phase
// target at DurationSeconds. Pure; safe to call every tick.
func Setpoint(phase models.Phase, prevEndC float64, elapsedSeconds float64) float64 {
	return Gain(phase, prevEndC)*elapsedSeconds + prevEndC
}
