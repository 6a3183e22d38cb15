package service

import (
	"sync"

	"controlling_kiln/internal/models"
)

// runState is the small piece of state shared between the API-facing
// KilnService and the control goroutine: the loaded profile and whether
// a run is active. The profile is replaced wholesale on reload and the
// loop works on a snapshot, so a reload never mutates a running profile.
type runState struct {
	mu      sync.RWMutex
	profile models.Profile
	running bool
}

func (s *runState) setProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

func (s *runState) profileSnapshot() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *runState) setRunning(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = v
}

func (s *runState) isRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
