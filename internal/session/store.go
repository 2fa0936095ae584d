// Package session holds the per-request authentication state. A Store is
// created for every request, rehydrated from the persisted access token,
// and mutated only through SetAuthenticated and Logout so that
// IsAuthenticated and User can never disagree.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/huabuyu/geoai/internal/backend"
)

// ErrNilUser is returned when SetAuthenticated is called without a user.
var ErrNilUser = errors.New("session: cannot authenticate a nil user")

// TokenStorage owns the persisted access token. The HTTP layer backs it
// with a cookie; tests use MemoryTokens.
type TokenStorage interface {
	Token() string
	SetToken(token string, expiresAt time.Time)
	RemoveToken()
}

// State is a snapshot of the store.
type State struct {
	IsAuthenticated bool
	User            *backend.User
	Loading         bool
}

// Store is the authentication state for one request.
type Store struct {
	mu      sync.RWMutex
	user    *backend.User
	loading int
	tokens  TokenStorage
}

// New creates an empty, unauthenticated store over the given token storage.
func New(tokens TokenStorage) *Store {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	return &Store{tokens: tokens}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{Loading: s.loading > 0}
	if s.user != nil {
		u := *s.user
		st.User = &u
		st.IsAuthenticated = true
	}
	return st
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *backend.User {
	return s.State().User
}

// SetAuthenticated marks user as signed in. It does not touch the token;
// the caller persists the token it received alongside the user.
func (s *Store) SetAuthenticated(user *backend.User) error {
	if user == nil {
		return ErrNilUser
	}
	u := *user

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return nil
}

// Logout clears the user and removes the persisted token. Calling it on an
// already signed-out store is a no-op apart from removing the token again.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.tokens.RemoveToken()
}

// Token returns the persisted access token, if any.
func (s *Store) Token() string {
	return s.tokens.Token()
}

// PersistToken stores the access token issued at sign-in.
func (s *Store) PersistToken(token string, expiresAt time.Time) {
	s.tokens.SetToken(token, expiresAt)
}

// Begin marks the store as loading until the returned func is called.
// Nested transitions are counted.
func (s *Store) Begin() (done func()) {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.loading--
			s.mu.Unlock()
		})
	}
}

// MemoryTokens is an in-process TokenStorage.
type MemoryTokens struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Token implements TokenStorage.
func (m *MemoryTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// SetToken implements TokenStorage.
func (m *MemoryTokens) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.expiresAt = token, expiresAt
}

// RemoveToken implements TokenStorage.
func (m *MemoryTokens) RemoveToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.expiresAt = "", time.Time{}
}

// ExpiresAt returns the expiry recorded with the token.
func (m *MemoryTokens) ExpiresAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiresAt
}
