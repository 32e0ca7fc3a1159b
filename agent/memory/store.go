// Package memory implements the durable per-account preference store.
package memory

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	upstashx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/upstash"
)

// Profile records are namespaced by account id under this prefix. Long-term
// memory has no TTL; it outlives sessions.
const keyPrefix = "memory_profile_"

func profileKey(accountID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, accountID)
}

// RedisProfileStore keeps memory profiles in Upstash Redis, one record per
// account. Put is a whole-record replace; the synchronous SET guarantees a
// subsequent Get observes the write.
type RedisProfileStore struct {
	client *upstashx.Client
}

var _ contractx.ProfileStore = (*RedisProfileStore)(nil)

func NewRedisProfileStore(client *upstashx.Client) (*RedisProfileStore, error) {
	if client == nil {
		return nil, errors.New("upstash client is required")
	}
	return &RedisProfileStore{client: client}, nil
}

func (s *RedisProfileStore) Get(ctx context.Context, accountID int64) (contractx.MemoryProfile, bool, error) {
	var profile contractx.MemoryProfile
	found, err := s.client.GetJSON(ctx, profileKey(accountID), &profile)
	if err != nil {
		return contractx.MemoryProfile{}, false, fmt.Errorf("%w: get profile account=%d: %v", contractx.ErrStorage, accountID, err)
	}
	if !found {
		return contractx.MemoryProfile{}, false, nil
	}
	return profile, true, nil
}

func (s *RedisProfileStore) Put(ctx context.Context, profile contractx.MemoryProfile) error {
	if profile.AccountID <= 0 {
		return fmt.Errorf("%w: profile account id is required", contractx.ErrValidation)
	}
	if err := s.client.SetJSON(ctx, profileKey(profile.AccountID), profile, 0); err != nil {
		return fmt.Errorf("%w: put profile account=%d: %v", contractx.ErrStorage, profile.AccountID, err)
	}
	return nil
}
