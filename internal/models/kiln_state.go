package models

import "time"

// Run outcomes persisted in KilnState.LastOutcome.
const (
	OutcomeFinished = "FINISHED"
	OutcomeAborted  = "ABORTED"
)

// KilnState is the current snapshot of the kiln: what the control loop
// last measured and commanded. One row, overwritten on every sample.
type KilnState struct {
	ID             int       `json:"id"`
	IsRunning      bool      `json:"is_running"`
	PhaseIndex     int       `json:"phase_index"`               // 0-based; meaningful only while running
	PhaseCount     int       `json:"phase_count"`               // phases in the loaded profile
	ElapsedSeconds int       `json:"elapsed_seconds"`           // whole seconds into the current phase
	MeasuredC      float64   `json:"measured_c"`                // °C
	SetpointC      float64   `json:"setpoint_c,omitempty"`      // °C
	HeaterOn       bool      `json:"heater_on"`
	LastOutcome    string    `json:"last_outcome,omitempty"` // FINISHED | ABORTED
	UpdatedAt      time.Time `json:"updated_at"`
}
