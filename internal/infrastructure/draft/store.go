// Package draft persists the per-session work-in-progress invoice so it
// survives page reloads. The draft lives under a fixed key per session and
// is removed only on explicit clear, which the invoicing service does after
// a successful submission and at no other time.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evasence/holoo-admin/internal/domain/billing"
)

// Store persists one draft per session.
type Store interface {
	// Load returns the draft for a session, or (nil, nil) when none exists.
	Load(ctx context.Context, sessionID string) (*billing.Draft, error)
	// Save stores the draft for a session.
	Save(ctx context.Context, sessionID string, d *billing.Draft) error
	// Clear removes the draft for a session.
	Clear(ctx context.Context, sessionID string) error
}

const keyPrefix = "draft:invoice:"

// RedisStore implements Store on Redis with a TTL matched to the session
// lifetime, so abandoned drafts age out with their session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed draft store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load returns the draft for a session.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*billing.Draft, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var d billing.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

// Save stores the draft for a session.
func (s *RedisStore) Save(ctx context.Context, sessionID string, d *billing.Draft) error {
	d.UpdatedAt = time.Now()
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Clear removes the draft for a session.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

// NewMemoryStore creates an in-memory draft store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string][]byte)}
}

// Load returns the draft for a session.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*billing.Draft, error) {
	s.mu.RLock()
	raw, ok := s.drafts[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var d billing.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

// Save stores the draft for a session.
func (s *MemoryStore) Save(_ context.Context, sessionID string, d *billing.Draft) error {
	d.UpdatedAt = time.Now()
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	s.mu.Lock()
	s.drafts[sessionID] = raw
	s.mu.Unlock()
	return nil
}

// Clear removes the draft for a session.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.drafts, sessionID)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
