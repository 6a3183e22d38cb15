package service

import (
	"context"
	"time"

	"controlling_kiln/internal/control"
	"controlling_kiln/internal/logger"
	"controlling_kiln/internal/models"
	"controlling_kiln/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Kiln exposes control operations: requesting a run, aborting it, and
// managing the loaded firing profile.
type Kiln interface {
	Start(ctx context.Context) error
	Abort(ctx context.Context) error
	Profile(ctx context.Context) (models.Profile, error)
	ReloadProfile(ctx context.Context) (models.Profile, error)
}

// Monitoring exposes the read-only telemetry snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.KilnState, error)
}

// EventLog exposes the append-only run log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.KilnEvent, error)
}

// RunLoop is the control goroutine: it polls the start latch and drives
// profile runs to completion. Stop via context cancellation in main()
// for graceful shutdown.
type RunLoop interface {
	Run(ctx context.Context)
}

// Plant is the hardware pair the control loop drives.
type Plant interface {
	control.TemperatureSource
	control.HeaterSink
}

// ControlPanel is the operator surface: start latch plus the
// level-triggered abort signal.
type ControlPanel interface {
	control.AbortSource
	RequestStart()
	ConsumeStart() bool
	RequestAbort()
	ClearAbort()
}

// LogFilter narrows event listing by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "" or one of the models.Event* constants
}

// Config carries service tuning read from the app configuration.
type Config struct {
	SigningKey string        // JWT signing key
	Tick       time.Duration // sample cadence; default 1s
	Poll       time.Duration // control-loop poll sleep; 0 = tight loop
	Idle       time.Duration // start-latch poll interval when no run is active
}

// Service aggregates all sub-services.
type Service struct {
	Kiln
	Monitoring
	EventLog
	RunLoop
	Authorization
}

// NewService wires repositories and the simulated hardware into the
// concrete services. Kiln and RunLoop share the loaded profile and the
// run-active flag through a single runState.
func NewService(
	repos *repository.Repository,
	plant Plant,
	panel ControlPanel,
	source control.ConfigSource,
	clock control.Clock,
	log *logger.Logger,
	cfg Config,
) *Service {
	shared := &runState{}
	return &Service{
		Kiln:          NewKilnService(shared, panel, source, repos.EventRepo, log),
		Monitoring:    NewMonitoringService(repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		RunLoop:       NewRunLoopService(shared, plant, panel, clock, repos.StateRepo, repos.EventRepo, log, cfg),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey),
	}
}
