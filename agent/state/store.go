package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	upstashx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/upstash"
)

var (
	ErrStateNotFound   = errors.New("session state not found")
	ErrNilSessionState = errors.New("session state is nil")
)

const (
	defaultKeyPrefix = "cadenza:session:"
	defaultTTL       = 24 * time.Hour
)

// Store persists one SessionState snapshot per thread id. The snapshot taken
// at every suspension and terminal point is the resumable continuation.
type Store interface {
	Load(ctx context.Context, threadID string) (*SessionState, error)
	Save(ctx context.Context, st *SessionState) error
	Delete(ctx context.Context, threadID string) error
}

// StoreOption customizes RedisStore.
type StoreOption func(*RedisStore)

func WithKeyPrefix(prefix string) StoreOption {
	return func(s *RedisStore) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// RedisStore keeps session snapshots in Upstash Redis.
type RedisStore struct {
	client    *upstashx.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(client *upstashx.Client, opts ...StoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("upstash client is required")
	}

	store := &RedisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	if store.ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}
	return store, nil
}

func (s *RedisStore) Load(ctx context.Context, threadID string) (*SessionState, error) {
	key, err := s.redisKey(threadID)
	if err != nil {
		return nil, err
	}

	var st SessionState
	found, err := s.client.GetJSON(ctx, key, &st)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrStateNotFound
	}

	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session state loaded from store: %w", err)
	}
	return &st, nil
}

func (s *RedisStore) Save(ctx context.Context, st *SessionState) error {
	if st == nil {
		return ErrNilSessionState
	}
	if err := st.Validate(); err != nil {
		return err
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	} else {
		st.UpdatedAt = st.UpdatedAt.UTC()
	}

	key, err := s.redisKey(st.ThreadID)
	if err != nil {
		return err
	}
	return s.client.SetJSON(ctx, key, st, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, threadID string) error {
	key, err := s.redisKey(threadID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, key)
}

func (s *RedisStore) redisKey(threadID string) (string, error) {
	if strings.TrimSpace(threadID) == "" {
		return "", ErrInvalidThread
	}
	return s.keyPrefix + threadID, nil
}
