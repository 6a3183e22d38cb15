package models

import "time"

// Event types appended by the control loop and the API surface.
const (
	EventRunStart      = "RUN_START"
	EventRunFinished   = "RUN_FINISHED"
	EventRunAborted    = "RUN_ABORTED"
	EventPhaseStart    = "PHASE_START"
	EventPhaseComplete = "PHASE_COMPLETE"
	EventProfileLoaded = "PROFILE_LOADED"
	EventAbortRequest  = "ABORT_REQUEST"
	EventError         = "ERROR"
)

// KilnEvent is a single log entry.
type KilnEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
