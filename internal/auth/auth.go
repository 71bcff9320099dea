package auth

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/eshoplabs/e-shop-backend/internal/storage"
)

const (
	// StorageKey names the blob that keeps session identity across
	// reloads.
	StorageKey = "auth-storage"
	// ContextKey is where the session middleware parks the store.
	ContextKey = "auth"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the authenticated identity for a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type state struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	PasswordHash    string `json:"passwordHash,omitempty"`
}

// Store holds the session's identity. IsAuthenticated is true exactly
// when a user is present.
type Store struct {
	mu    sync.RWMutex
	state state
	blobs storage.Store
}

// NewStore builds the auth store for a session, restoring any identity
// persisted from a previous visit.
func NewStore(blobs storage.Store) *Store {
	s := &Store{blobs: blobs}
	b, err := blobs.Get(context.Background(), StorageKey)
	if err != nil {
		return s
	}

	var st state
	if err := json.Unmarshal(b, &st); err != nil {
		log.Printf("auth: discarding malformed %s blob: %v", StorageKey, err)
		return s
	}
	// the flag never sticks without a user, whatever the blob claims
	if st.User == nil {
		st.IsAuthenticated = false
	}
	s.state = st
	return s
}

// SetUser commits a fabricated identity. The last write wins when calls
// overlap.
func (s *Store) SetUser(ctx context.Context, u User, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{User: &u, IsAuthenticated: true, PasswordHash: passwordHash}
	s.persistLocked(ctx)
}

// Logout clears the identity. It is synchronous and has no failure mode.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{}
	s.persistLocked(ctx)
}

// User returns a copy of the current identity, or nil when anonymous.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *Store) persistLocked(ctx context.Context) {
	b, err := json.Marshal(s.state)
	if err == nil {
		err = s.blobs.Set(ctx, StorageKey, b)
	}
	if err != nil {
		log.Printf("auth: persist failed: %v", err)
	}
}
