package control

import (
	"context"
	"time"

	"controlling_kiln/internal/models"
)

// RunOutcome is the terminal state of a whole profile run.
type RunOutcome int

const (
	RunFinished RunOutcome = iota
	RunAborted
)

func (o RunOutcome) String() string {
	if o == RunAborted {
		return "aborted"
	}
	return "finished"
}

// Runner executes a profile phase by phase on the calling goroutine.
// Phases are strictly sequential: phase i+1 never starts before phase i
// reaches a terminal outcome.
type Runner struct {
	Temps    TemperatureSource
	Heater   HeaterSink
	Abort    AbortSource
	Clock    Clock
	Observer Observer // optional

	Tick time.Duration
	Poll time.Duration
}

// Run iterates the profile in order and returns RunAborted as soon as
// any phase aborts, without starting later phases. An empty profile
// finishes immediately and issues no heater command. The caller is
// responsible for forcing the heater off after either outcome.
func (r *Runner) Run(ctx context.Context, profile models.Profile) RunOutcome {
	for i, phase := range profile.Phases {
		pc := PhaseController{
			Temps:    r.Temps,
			Heater:   r.Heater,
			Abort:    r.Abort,
			Clock:    r.Clock,
			Observer: r.Observer,
			Tick:     r.Tick,
			Poll:     r.Poll,
		}
		if pc.Run(ctx, i, phase, PrevEndTemp(profile, i)) == PhaseAborted {
			return RunAborted
		}
	}
	return RunFinished
}
