// Package flash carries one-shot notifications ("toasts") across redirects.
// Messages are queued per visitor, identified by an anonymous cookie, and
// drained by the next page render.
package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message kinds, matching the toast styles in the layout.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

// keyPrefix namespaces flash queues in Redis.
const keyPrefix = "flash:"

// Message is one notification.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Store queues messages per visitor.
type Store interface {
	Push(ctx context.Context, visitorID string, msg Message) error
	Drain(ctx context.Context, visitorID string) ([]Message, error)
}

// --- Redis ---

// RedisStore keeps each visitor's queue in a Redis list with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Push implements Store.
func (s *RedisStore) Push(ctx context.Context, visitorID string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling flash: %w", err)
	}
	key := keyPrefix + visitorID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("pushing flash: %w", err)
	}
	return nil
}

// Drain implements Store. Reading and deleting happen in one transaction
// so a message is delivered at most once.
func (s *RedisStore) Drain(ctx context.Context, visitorID string) ([]Message, error) {
	key := keyPrefix + visitorID
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("draining flash: %w", err)
	}

	raw := items.Val()
	out := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// --- Memory ---

type memoryQueue struct {
	messages  []Message
	expiresAt time.Time
}

// MemoryStore keeps queues in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	queues map[string]*memoryQueue
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, queues: make(map[string]*memoryQueue)}
}

// Push implements Store.
func (s *MemoryStore) Push(_ context.Context, visitorID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	q, ok := s.queues[visitorID]
	if !ok {
		q = &memoryQueue{}
		s.queues[visitorID] = q
	}
	q.messages = append(q.messages, msg)
	q.expiresAt = s.now().Add(s.ttl)
	return nil
}

// Drain implements Store.
func (s *MemoryStore) Drain(_ context.Context, visitorID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[visitorID]
	delete(s.queues, visitorID)
	if !ok || s.now().After(q.expiresAt) {
		return nil, nil
	}
	return q.messages, nil
}

// sweep drops expired queues. Called with mu held.
func (s *MemoryStore) sweep() {
	now := s.now()
	for id, q := range s.queues {
		if now.After(q.expiresAt) {
			delete(s.queues, id)
		}
	}
}
