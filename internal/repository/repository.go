package repository

import (
	"context"
	"database/sql"
	"time"

	"controlling_kiln/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// StateRepo persists the single kiln telemetry snapshot.
type StateRepo interface {
	Save(ctx context.Context, s models.KilnState) error
	Load(ctx context.Context) (models.KilnState, error)
}

// EventRepo is the append-only run log with filtered access.
type EventRepo interface {
	Append(ctx context.Context, e models.KilnEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.KilnEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
