package service

import (
	"context"
	"errors"

	"controlling_kiln/internal/control"
	"controlling_kiln/internal/logger"
	"controlling_kiln/internal/models"
	"controlling_kiln/internal/repository"
)

var (
	errRunInProgress      = errors.New("a run is already in progress")
	errReloadWhileRunning = errors.New("cannot reload profile while a run is in progress")
)

// KilnService is the API-facing side of kiln control. It only latches
// signals on the panel and manages the loaded profile; the run loop
// owns the hardware.
type KilnService struct {
	state     *runState
	panel     ControlPanel
	source    control.ConfigSource
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewKilnService(state *runState, panel ControlPanel, source control.ConfigSource, eventRepo repository.EventRepo, log *logger.Logger) *KilnService {
	return &KilnService{
		state:     state,
		panel:     panel,
		source:    source,
		eventRepo: eventRepo,
		log:       log,
	}
}

// Start latches a start request for the run loop. Running an empty
// profile is allowed and finishes immediately, matching a kiln with no
// profile document.
func (s *KilnService) Start(ctx context.Context) error {
	if s.state.isRunning() {
		return errRunInProgress
	}
	s.panel.RequestStart()
	if s.log != nil {
		s.log.Infow("run_requested", "phases", s.state.profileSnapshot().Count())
	}
	return nil
}

// Abort asserts the level-triggered abort signal. The active run
// observes it on its next poll iteration; the run loop clears it once
// the run terminates.
func (s *KilnService) Abort(ctx context.Context) error {
	s.panel.RequestAbort()
	return s.eventRepo.Append(ctx, models.KilnEvent{
		Type:        models.EventAbortRequest,
		Description: "Abort requested",
	})
}

// Profile returns the currently loaded profile.
func (s *KilnService) Profile(ctx context.Context) (models.Profile, error) {
	return s.state.profileSnapshot(), nil
}

// ReloadProfile re-reads the profile document and replaces the loaded
// profile wholesale. Entries the builder rejects are surfaced as a
// warning and an ERROR event but never fail the reload; an unreadable
// document degrades to an empty profile.
func (s *KilnService) ReloadProfile(ctx context.Context) (models.Profile, error) {
	if s.state.isRunning() {
		return models.Profile{}, errReloadWhileRunning
	}

	times, temps := s.source.ReadProfile()
	profile, dropped := control.BuildProfile(times, temps)

	for _, d := range dropped {
		if s.log != nil {
			s.log.Warnw("invalid_phase_dropped", "index", d.Index, "target_c", d.TargetTempC)
		}
		_ = s.eventRepo.Append(ctx, models.KilnEvent{
			Type:        models.EventError,
			Description: "Invalid phase dropped: " + d.Error(),
			Metadata:    map[string]any{"index": d.Index, "target_c": d.TargetTempC},
		})
	}

	s.state.setProfile(profile)

	err := s.eventRepo.Append(ctx, models.KilnEvent{
		Type:        models.EventProfileLoaded,
		Description: "Profile loaded",
		Metadata: map[string]any{
			"phases":  profile.Count(),
			"dropped": len(dropped),
		},
	})
	return profile, err
}
