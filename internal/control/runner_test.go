package control

import (
	"context"
	"testing"
	"time"

	"controlling_kiln/internal/models"
)

func TestRunner_EmptyProfileFinishesWithoutHeaterCommands(t *testing.T) {
	heater := &heaterRec{}
	r := Runner{
		Temps:  constTemp(25),
		Heater: heater,
		Abort:  noAbort(),
		Clock:  &stepClock{step: time.Second},
	}

	if outcome := r.Run(context.Background(), models.Profile{}); outcome != RunFinished {
		t.Fatalf("outcome = %v, want finished", outcome)
	}
	if len(heater.cmds) != 0 {
		t.Fatalf("empty profile issued %d heater commands, want none", len(heater.cmds))
	}
}

func TestRunner_PhasesRunInOrderToCompletion(t *testing.T) {
	obs := &obsRec{}
	r := Runner{
		Temps:    constTemp(0),
		Heater:   &heaterRec{},
		Abort:    noAbort(),
		Clock:    &stepClock{step: time.Second},
		Observer: obs,
	}
	profile, _ := BuildProfile([]uint16{3, 2, 4}, []uint16{100, 150, 120})

	if outcome := r.Run(context.Background(), profile); outcome != RunFinished {
		t.Fatalf("outcome = %v, want finished", outcome)
	}
	if len(obs.started) != 3 || obs.started[0] != 0 || obs.started[1] != 1 || obs.started[2] != 2 {
		t.Fatalf("phase start order = %v, want [0 1 2]", obs.started)
	}
	for _, e := range obs.ended {
		if e.outcome != PhaseCompleted {
			t.Fatalf("phase %d ended %v, want completed", e.index, e.outcome)
		}
	}
}

func TestRunner_SecondPhaseChainsFromFirstTarget(t *testing.T) {
	// Two-phase profile [{5,50},{5,80}]: phase 2 must ramp from 50, the
	// previous target, never from whatever was actually measured.
	obs := &obsRec{}
	r := Runner{
		Temps:    constTemp(999), // measured wildly off the ramp
		Heater:   &heaterRec{},
		Abort:    noAbort(),
		Clock:    &stepClock{step: time.Second},
		Observer: obs,
	}
	profile, _ := BuildProfile([]uint16{5, 5}, []uint16{50, 80})

	if outcome := r.Run(context.Background(), profile); outcome != RunFinished {
		t.Fatalf("outcome = %v, want finished", outcome)
	}

	var second []Sample
	for _, s := range obs.samples {
		if s.PhaseIndex == 1 {
			second = append(second, s)
		}
	}
	if len(second) != 5 {
		t.Fatalf("phase 1 got %d samples, want 5", len(second))
	}
	for _, s := range second {
		want := 50 + (80-50)/5.0*float64(s.ElapsedSeconds)
		if s.SetpointC != want {
			t.Fatalf("phase 1 setpoint(elapsed=%d) = %.2f, want %.2f", s.ElapsedSeconds, s.SetpointC, want)
		}
		if s.GainCPerSec != 6 {
			t.Fatalf("phase 1 gain = %.2f, want 6", s.GainCPerSec)
		}
	}
}

func TestRunner_AbortStopsBeforeLaterPhases(t *testing.T) {
	obs := &obsRec{}
	r := Runner{
		Temps:    constTemp(0),
		Heater:   &heaterRec{},
		Abort:    abortFunc(func() bool { return true }),
		Clock:    &stepClock{step: time.Second},
		Observer: obs,
	}
	profile, _ := BuildProfile([]uint16{10, 10}, []uint16{100, 200})

	if outcome := r.Run(context.Background(), profile); outcome != RunAborted {
		t.Fatalf("outcome = %v, want aborted", outcome)
	}
	if len(obs.started) != 1 || obs.started[0] != 0 {
		t.Fatalf("started phases = %v, want only phase 0", obs.started)
	}
	if len(obs.ended) != 1 || obs.ended[0].outcome != PhaseAborted {
		t.Fatalf("ended = %v, want phase 0 aborted", obs.ended)
	}
}
