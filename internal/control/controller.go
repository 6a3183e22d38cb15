package control

import (
	"context"
	"time"

	"controlling_kiln/internal/models"
)

// PhaseOutcome is the terminal state of one phase.
type PhaseOutcome int

const (
	PhaseCompleted PhaseOutcome = iota
	PhaseAborted
)

func (o PhaseOutcome) String() string {
	if o == PhaseAborted {
		return "aborted"
	}
	return "completed"
}

// Sample is one control decision, taken every tick.
type Sample struct {
	PhaseIndex     int
	ElapsedSeconds int
	MeasuredC      float64
	GainCPerSec    float64
	SetpointC      float64
	HeaterOn       bool
}

// Observer receives control-loop progress. All callbacks run on the
// control goroutine; implementations must not block it for long.
type Observer interface {
	PhaseStarted(index int, phase models.Phase)
	Sampled(s Sample)
	PhaseEnded(index int, outcome PhaseOutcome)
}

// PhaseController drives exactly one phase to a terminal outcome with
// pure bang-bang control: each tick it reads the temperature, computes
// the ramp setpoint and commands the heater ON iff measured < setpoint.
// There is no hysteresis band and no integral term.
//
// The loop is a single-threaded poll. Ticks are scheduled from the
// previous scheduled tick, not from "now", so poll jitter does not
// accumulate into drift. Between ticks the controller only polls the
// abort source and the clock.
type PhaseController struct {
	Temps    TemperatureSource
	Heater   HeaterSink
	Abort    AbortSource
	Clock    Clock
	Observer Observer // optional

	// Tick is the sample cadence; one phase "second" of elapsed time.
	// Defaults to one real second. Tests shrink it.
	Tick time.Duration

	// Poll, when positive, bounds host CPU by sleeping between poll
	// iterations. Zero keeps the firmware-style tight loop.
	Poll time.Duration
}

// Run drives the phase starting from prevEndC until it completes or an
// abort is observed. It does not force the heater off on abort; the
// caller owns the safe-off transition after a run ends.
//
// Abort takes precedence: it is checked before the completion deadline
// on every iteration, so a simultaneous abort and timeout resolves to
// PhaseAborted. Context cancellation is treated as an abort.
func (c *PhaseController) Run(ctx context.Context, index int, phase models.Phase, prevEndC float64) PhaseOutcome {
	tick := c.Tick
	if tick <= 0 {
		tick = time.Second
	}

	if c.Observer != nil {
		c.Observer.PhaseStarted(index, phase)
	}

	start := c.Clock.Now()
	nextTick := start.Add(tick)
	deadline := start.Add(time.Duration(phase.DurationSeconds) * tick)
	elapsed := 0

	outcome := PhaseCompleted
	for {
		now := c.Clock.Now()

		if !now.Before(nextTick) {
			nextTick = nextTick.Add(tick)
			elapsed++
			measured := c.Temps.ReadTemperature()
			setpoint := Setpoint(phase, prevEndC, float64(elapsed))
			on := measured < setpoint
			c.Heater.SetHeater(on)
			if c.Observer != nil {
				c.Observer.Sampled(Sample{
					PhaseIndex:     index,
					ElapsedSeconds: elapsed,
					MeasuredC:      measured,
					GainCPerSec:    Gain(phase, prevEndC),
					SetpointC:      setpoint,
					HeaterOn:       on,
				})
			}
		}

		if c.Abort.AbortRequested() || ctx.Err() != nil {
			outcome = PhaseAborted
			break
		}
		if !now.Before(deadline) {
			break
		}
		if c.Poll > 0 {
			time.Sleep(c.Poll)
		}
	}

	if c.Observer != nil {
		c.Observer.PhaseEnded(index, outcome)
	}
	return outcome
}
