package service

import (
	"context"
	"time"

	"controlling_kiln/internal/control"
	"controlling_kiln/internal/models"
	"controlling_kiln/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted kiln snapshot. If nothing has
// been recorded yet it returns a baseline idle snapshot at ambient.
func (s *MonitoringService) GetState(ctx context.Context) (models.KilnState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.KilnState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is the snapshot for a kiln that has never run: idle at
// the assumed ambient temperature, heater off.
func (s *MonitoringService) baselineState() models.KilnState {
	return models.KilnState{
		ID:        1, // DB schema enforces single-row state with id=1
		IsRunning: false,
		MeasuredC: control.BaselineTempC,
		HeaterOn:  false,
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
