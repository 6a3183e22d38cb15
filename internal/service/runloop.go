package service

import (
	"context"
	"fmt"
	"time"

	"controlling_kiln/internal/control"
	"controlling_kiln/internal/logger"
	"controlling_kiln/internal/models"
	"controlling_kiln/internal/repository"
)

const (
	defaultIdleInterval = 50 * time.Millisecond
	defaultPollInterval = 10 * time.Millisecond
)

// RunLoopService is the single control thread: the host-side rendition
// of the firmware main loop. It waits for a latched start request, runs
// the loaded profile to a terminal outcome, forces the heater off, and
// returns to idle. No second run can start before the previous one has
// fully terminated.
type RunLoopService struct {
	state     *runState
	plant     Plant
	panel     ControlPanel
	clock     control.Clock
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	log       *logger.Logger

	tick time.Duration
	poll time.Duration
	idle time.Duration

	// set for the duration of one run; only the control goroutine
	// touches these.
	runCtx     context.Context
	phaseCount int
}

func NewRunLoopService(
	state *runState,
	plant Plant,
	panel ControlPanel,
	clock control.Clock,
	stateRepo repository.StateRepo,
	eventRepo repository.EventRepo,
	log *logger.Logger,
	cfg Config,
) *RunLoopService {
	idle := cfg.Idle
	if idle <= 0 {
		idle = defaultIdleInterval
	}
	poll := cfg.Poll
	if poll == 0 {
		poll = defaultPollInterval
	}
	if poll < 0 {
		poll = 0 // tight loop, used by tests
	}
	return &RunLoopService{
		state:     state,
		plant:     plant,
		panel:     panel,
		clock:     clock,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		log:       log,
		tick:      cfg.Tick,
		poll:      poll,
		idle:      idle,
	}
}

// Run polls the start latch until ctx is canceled.
func (s *RunLoopService) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if !s.panel.ConsumeStart() {
			time.Sleep(s.idle)
			continue
		}
		s.runOnce(ctx)
	}
}

// runOnce executes one full profile run. Whatever the outcome, the
// heater is forced off and the abort latch cleared before returning to
// idle.
func (s *RunLoopService) runOnce(ctx context.Context) {
	profile := s.state.profileSnapshot()
	s.runCtx = ctx
	s.phaseCount = profile.Count()
	s.state.setRunning(true)

	s.appendEvent(ctx, models.EventRunStart, "Run started",
		map[string]any{"phases": profile.Count()})

	runner := control.Runner{
		Temps:    s.plant,
		Heater:   s.plant,
		Abort:    s.panel,
		Clock:    s.clock,
		Observer: s,
		Tick:     s.tick,
		Poll:     s.poll,
	}
	outcome := runner.Run(ctx, profile)

	// Safe-off transition: the controller never touches the heater on
	// abort, so the loop owns leaving the element off after every run.
	s.plant.SetHeater(false)
	s.panel.ClearAbort()
	s.state.setRunning(false)
	s.runCtx = nil

	last := models.OutcomeFinished
	eventType := models.EventRunFinished
	desc := "Run finished"
	if outcome == control.RunAborted {
		last = models.OutcomeAborted
		eventType = models.EventRunAborted
		desc = "Run aborted"
	}

	s.saveState(ctx, models.KilnState{
		ID:          1,
		IsRunning:   false,
		PhaseCount:  profile.Count(),
		MeasuredC:   s.plant.ReadTemperature(),
		HeaterOn:    false,
		LastOutcome: last,
		UpdatedAt:   time.Now().UTC(),
	})
	s.appendEvent(ctx, eventType, desc, map[string]any{"phases": profile.Count()})

	if s.log != nil {
		s.log.Infow("run_terminated", "outcome", outcome.String(), "phases", profile.Count())
	}
}

// ---- control.Observer ----

// PhaseStarted logs and records the phase transition.
func (s *RunLoopService) PhaseStarted(index int, phase models.Phase) {
	if s.log != nil {
		s.log.Infow("phase_started",
			"phase", index+1,
			"duration_s", phase.DurationSeconds,
			"target_c", phase.TargetTempC,
		)
	}
	s.appendEvent(s.runCtx, models.EventPhaseStart,
		fmt.Sprintf("Phase %d started", index+1),
		map[string]any{
			"phase":      index + 1,
			"duration_s": phase.DurationSeconds,
			"target_c":   phase.TargetTempC,
		})
}

// Sampled persists the telemetry snapshot for every control decision.
func (s *RunLoopService) Sampled(sm control.Sample) {
	if s.log != nil {
		s.log.Debugw("sample",
			"phase", sm.PhaseIndex+1,
			"time", sm.ElapsedSeconds,
			"temp", sm.MeasuredC,
			"gain", sm.GainCPerSec,
			"setpoint", sm.SetpointC,
			"heater", sm.HeaterOn,
		)
	}
	s.saveState(s.runCtx, models.KilnState{
		ID:             1,
		IsRunning:      true,
		PhaseIndex:     sm.PhaseIndex,
		PhaseCount:     s.phaseCount,
		ElapsedSeconds: sm.ElapsedSeconds,
		MeasuredC:      sm.MeasuredC,
		SetpointC:      sm.SetpointC,
		HeaterOn:       sm.HeaterOn,
		UpdatedAt:      time.Now().UTC(),
	})
}

// PhaseEnded records completed phases; aborted runs get their own
// terminal event from runOnce.
func (s *RunLoopService) PhaseEnded(index int, outcome control.PhaseOutcome) {
	if outcome != control.PhaseCompleted {
		return
	}
	s.appendEvent(s.runCtx, models.EventPhaseComplete,
		fmt.Sprintf("Phase %d completed", index+1),
		map[string]any{"phase": index + 1})
}

// ---- best-effort persistence ----

// Persistence failures degrade to a log line; the control loop never
// stops over them.
func (s *RunLoopService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.eventRepo.Append(ctx, models.KilnEvent{Type: typ, Description: desc, Metadata: meta}); err != nil && s.log != nil {
		s.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}

func (s *RunLoopService) saveState(ctx context.Context, st models.KilnState) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.stateRepo.Save(ctx, st); err != nil && s.log != nil {
		s.log.Warnw("state_save_failed", "err", err)
	}
}
