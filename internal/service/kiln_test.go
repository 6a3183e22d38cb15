package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"controlling_kiln/internal/models"
)

// ---- Test doubles ----

// panelStub mirrors kilnsim.Panel; atomics because the run-loop test
// pokes it from another goroutine.
type panelStub struct {
	startRequested atomic.Bool
	abortAsserted  atomic.Bool
}

func (p *panelStub) RequestStart()        { p.startRequested.Store(true) }
func (p *panelStub) ConsumeStart() bool   { return p.startRequested.CompareAndSwap(true, false) }
func (p *panelStub) RequestAbort()        { p.abortAsserted.Store(true) }
func (p *panelStub) ClearAbort()          { p.abortAsserted.Store(false) }
func (p *panelStub) AbortRequested() bool { return p.abortAsserted.Load() }

type sourceStub struct {
	times []uint16
	temps []uint16
}

func (s *sourceStub) ReadProfile() ([]uint16, []uint16) { return s.times, s.temps }

type eventRepoStub struct {
	mu        sync.Mutex
	appendErr error
	appends   []models.KilnEvent
}

func (e *eventRepoStub) Append(ctx context.Context, ev models.KilnEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appends = append(e.appends, ev)
	return e.appendErr
}
func (e *eventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.KilnEvent, error) {
	return nil, nil
}

func (e *eventRepoStub) typesSeen() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.appends))
	for _, ev := range e.appends {
		out = append(out, ev.Type)
	}
	return out
}

// ---- Tests ----

func TestKilnService_StartLatchesWhenIdle(t *testing.T) {
	panel := &panelStub{}
	svc := NewKilnService(&runState{}, panel, &sourceStub{}, &eventRepoStub{}, nil)

	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !panel.startRequested.Load() {
		t.Fatalf("start latch not set")
	}
}

func TestKilnService_StartRejectedWhileRunning(t *testing.T) {
	state := &runState{}
	state.setRunning(true)
	panel := &panelStub{}
	svc := NewKilnService(state, panel, &sourceStub{}, &eventRepoStub{}, nil)

	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected error while a run is in progress")
	}
	if panel.startRequested.Load() {
		t.Fatalf("start must not be latched during an active run")
	}
}

func TestKilnService_AbortAssertsLevelAndLogsEvent(t *testing.T) {
	panel := &panelStub{}
	events := &eventRepoStub{}
	svc := NewKilnService(&runState{}, panel, &sourceStub{}, events, nil)

	if err := svc.Abort(context.Background()); err != nil {
		t.Fatalf("Abort() error = %v", err)
	}
	if !panel.AbortRequested() {
		t.Fatalf("abort signal not asserted")
	}
	if len(events.appends) != 1 || events.appends[0].Type != models.EventAbortRequest {
		t.Fatalf("expected ABORT_REQUEST event, got %v", events.typesSeen())
	}
}

func TestKilnService_ReloadProfile_ReplacesWholesale(t *testing.T) {
	state := &runState{}
	state.setProfile(models.Profile{Phases: []models.Phase{{DurationSeconds: 1, TargetTempC: 1}}})
	events := &eventRepoStub{}
	src := &sourceStub{times: []uint16{10, 20}, temps: []uint16{100, 200}}
	svc := NewKilnService(state, &panelStub{}, src, events, nil)

	profile, err := svc.ReloadProfile(context.Background())
	if err != nil {
		t.Fatalf("ReloadProfile() error = %v", err)
	}
	if profile.Count() != 2 {
		t.Fatalf("count = %d, want 2", profile.Count())
	}
	if got, _ := svc.Profile(context.Background()); got.Count() != 2 {
		t.Fatalf("loaded profile not replaced: %+v", got)
	}
	if len(events.appends) != 1 || events.appends[0].Type != models.EventProfileLoaded {
		t.Fatalf("expected PROFILE_LOADED event, got %v", events.typesSeen())
	}
}

func TestKilnService_ReloadProfile_SurfacesDroppedPhases(t *testing.T) {
	events := &eventRepoStub{}
	src := &sourceStub{times: []uint16{10, 0}, temps: []uint16{100, 200}}
	svc := NewKilnService(&runState{}, &panelStub{}, src, events, nil)

	profile, err := svc.ReloadProfile(context.Background())
	if err != nil {
		t.Fatalf("ReloadProfile() error = %v", err)
	}
	if profile.Count() != 1 {
		t.Fatalf("count = %d, want 1", profile.Count())
	}
	types := events.typesSeen()
	if len(types) != 2 || types[0] != models.EventError || types[1] != models.EventProfileLoaded {
		t.Fatalf("event types = %v, want [ERROR PROFILE_LOADED]", types)
	}
}

func TestKilnService_ReloadProfile_EmptySourceIsValid(t *testing.T) {
	svc := NewKilnService(&runState{}, &panelStub{}, &sourceStub{}, &eventRepoStub{}, nil)

	profile, err := svc.ReloadProfile(context.Background())
	if err != nil {
		t.Fatalf("ReloadProfile() error = %v", err)
	}
	if !profile.Empty() {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestKilnService_ReloadProfile_RejectedWhileRunning(t *testing.T) {
	state := &runState{}
	state.setRunning(true)
	svc := NewKilnService(state, &panelStub{}, &sourceStub{}, &eventRepoStub{}, nil)

	if _, err := svc.ReloadProfile(context.Background()); err == nil {
		t.Fatalf("expected error while a run is in progress")
	}
}
