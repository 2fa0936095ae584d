// Package workspace keeps each signed-in user's editable page state: the
// projects list and generated optimizations. Workspaces are seeded from the
// fixtures on first use and expire after a period of inactivity. Nothing
// here is durable; the external provider remains the system of record.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/huabuyu/geoai/internal/fixtures"
)

// keyPrefix namespaces workspace keys in Redis.
const keyPrefix = "workspace:"

// Workspace is one user's mutable state.
type Workspace struct {
	Projects      []fixtures.Project      `json:"projects"`
	Optimizations []fixtures.Optimization `json:"optimizations"`
}

// Store persists workspaces keyed by user id.
type Store interface {
	// Load returns the workspace and whether it existed.
	Load(ctx context.Context, userID string) (*Workspace, bool, error)

	// Save writes the workspace and refreshes its expiry.
	Save(ctx context.Context, userID string, ws *Workspace) error
}

// --- Redis ---

// RedisStore keeps workspaces as JSON strings with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, userID string) (*Workspace, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading workspace: %w", err)
	}

	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, false, fmt.Errorf("unmarshaling workspace: %w", err)
	}
	return &ws, true, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, userID string, ws *Workspace) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshaling workspace: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+userID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

// --- Memory ---

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps workspaces in process memory. Used when no Redis URL is
// configured; state is lost on restart and not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, userID string) (*Workspace, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return nil, false, nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.entries, userID)
		return nil, false, nil
	}

	var ws Workspace
	if err := json.Unmarshal(e.data, &ws); err != nil {
		return nil, false, fmt.Errorf("unmarshaling workspace: %w", err)
	}
	return &ws, true, nil
}

// Save implements Store. The workspace is serialized so callers cannot
// alias stored state.
func (s *MemoryStore) Save(_ context.Context, userID string, ws *Workspace) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshaling workspace: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}
