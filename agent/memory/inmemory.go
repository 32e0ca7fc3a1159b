package memory

import (
	"context"
	"fmt"
	"sync"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// InMemoryProfileStore is a process-local ProfileStore for local runs where
// no Redis is configured.
type InMemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[int64]contractx.MemoryProfile
}

var _ contractx.ProfileStore = (*InMemoryProfileStore)(nil)

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		profiles: make(map[int64]contractx.MemoryProfile),
	}
}

func (s *InMemoryProfileStore) Get(_ context.Context, accountID int64) (contractx.MemoryProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[accountID]
	if !ok {
		return contractx.MemoryProfile{}, false, nil
	}
	profile.MusicPreferences = append([]string(nil), profile.MusicPreferences...)
	return profile, true, nil
}

func (s *InMemoryProfileStore) Put(_ context.Context, profile contractx.MemoryProfile) error {
	if profile.AccountID <= 0 {
		return fmt.Errorf("%w: profile account id is required", contractx.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile.MusicPreferences = append([]string(nil), profile.MusicPreferences...)
	s.profiles[profile.AccountID] = profile
	return nil
}
