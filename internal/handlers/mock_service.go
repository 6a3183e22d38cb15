package handlers

import (
	"context"
	"net/http"
	"time"

	"controlling_kiln/internal/models"
	"controlling_kiln/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockKiln struct {
	startErr    error
	abortErr    error
	profile     models.Profile
	profileErr  error
	reloaded    models.Profile
	reloadErr   error
	startCalls  int
	abortCalls  int
	reloadCalls int
}

func (m *mockKiln) Start(ctx context.Context) error {
	m.startCalls++
	return m.startErr
}
func (m *mockKiln) Abort(ctx context.Context) error {
	m.abortCalls++
	return m.abortErr
}
func (m *mockKiln) Profile(ctx context.Context) (models.Profile, error) {
	return m.profile, m.profileErr
}
func (m *mockKiln) ReloadProfile(ctx context.Context) (models.Profile, error) {
	m.reloadCalls++
	return m.reloaded, m.reloadErr
}

type mockMonitoring struct {
	state models.KilnState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.KilnState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.KilnEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.KilnEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
