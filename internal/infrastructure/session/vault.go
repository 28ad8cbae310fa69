package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evasence/holoo-admin/internal/domain/shared"
)

// TokenVault stores the upstream bearer token per session id. The token
// never leaves the server; the browser only ever sees the session cookie.
type TokenVault interface {
	// Put stores the token under the session id with a TTL.
	Put(ctx context.Context, sessionID, token string, ttl time.Duration) error
	// Get retrieves the token, or ErrSessionExpired when it is gone.
	Get(ctx context.Context, sessionID string) (string, error)
	// Delete removes the token, ending the session server-side.
	Delete(ctx context.Context, sessionID string) error
}

// RedisVault implements TokenVault on Redis. Suitable for distributed
// deployments where multiple instances share session state.
type RedisVault struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisVaultWithClient creates a vault on an existing Redis client so the
// vault and the draft store can share one connection pool.
func NewRedisVaultWithClient(client *redis.Client, keyPrefix string) *RedisVault {
	if keyPrefix == "" {
		keyPrefix = "session:token:"
	}
	return &RedisVault{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Put stores the token under the session id.
func (v *RedisVault) Put(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if err := v.client.Set(ctx, v.keyPrefix+sessionID, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// Get retrieves the token for a session id.
func (v *RedisVault) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := v.client.Get(ctx, v.keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", shared.ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session token: %w", err)
	}
	return token, nil
}

// Delete removes the token for a session id.
func (v *RedisVault) Delete(ctx context.Context, sessionID string) error {
	if err := v.client.Del(ctx, v.keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (v *RedisVault) Close() error {
	return v.client.Close()
}

var _ TokenVault = (*RedisVault)(nil)

// MemoryVault is an in-process TokenVault for development and tests.
type MemoryVault struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// NewMemoryVault creates an in-memory token vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{entries: make(map[string]memoryEntry)}
}

// Put stores the token under the session id.
func (v *MemoryVault) Put(_ context.Context, sessionID, token string, ttl time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries[sessionID] = memoryEntry{
		token:     token,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get retrieves the token for a session id.
func (v *MemoryVault) Get(_ context.Context, sessionID string) (string, error) {
	v.mu.RLock()
	entry, ok := v.entries[sessionID]
	v.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return "", shared.ErrSessionExpired
	}
	return entry.token, nil
}

// Delete removes the token for a session id.
func (v *MemoryVault) Delete(_ context.Context, sessionID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.entries, sessionID)
	return nil
}

var _ TokenVault = (*MemoryVault)(nil)
