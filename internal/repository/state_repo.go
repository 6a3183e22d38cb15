package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"controlling_kiln/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

var _ StateRepo = (*StateSQLite)(nil)

const (
	kilnStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO kiln_state (id, running, phase_idx, phase_count, elapsed_s, measured_c, setpoint_c, heater_on, outcome, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			running=excluded.running,
			phase_idx=excluded.phase_idx,
			phase_count=excluded.phase_count,
			elapsed_s=excluded.elapsed_s,
			measured_c=excluded.measured_c,
			setpoint_c=excluded.setpoint_c,
			heater_on=excluded.heater_on,
			outcome=excluded.outcome,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, running, phase_idx, phase_count, elapsed_s, measured_c, setpoint_c, heater_on, outcome, updated_at
		FROM kiln_state WHERE id=?
	`
)

// Save upserts the kiln_state row (id always 1). UpdatedAt is persisted
// as UTC; a zero value is replaced with now.
func (r *StateSQLite) Save(ctx context.Context, state models.KilnState) error {
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		kilnStateRowID,
		state.IsRunning,
		state.PhaseIndex,
		state.PhaseCount,
		state.ElapsedSeconds,
		state.MeasuredC,
		state.SetpointC,
		state.HeaterOn,
		state.LastOutcome,
		tsUTC,
	)
	return err
}

// Load fetches the single kiln_state row. A missing row returns the
// zero value with no error: no state has been recorded yet.
func (r *StateSQLite) Load(ctx context.Context) (models.KilnState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, kilnStateRowID)

	var s models.KilnState
	if err := row.Scan(
		&s.ID,
		&s.IsRunning,
		&s.PhaseIndex,
		&s.PhaseCount,
		&s.ElapsedSeconds,
		&s.MeasuredC,
		&s.SetpointC,
		&s.HeaterOn,
		&s.LastOutcome,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.KilnState{}, nil
		}
		return models.KilnState{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
