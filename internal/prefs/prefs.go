package prefs

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/eshoplabs/e-shop-backend/internal/storage"
)

const (
	// StorageKey holds the persisted theme flag.
	StorageKey = "theme-storage"
	// ContextKey is where the session middleware parks the store.
	ContextKey = "prefs"
)

// Store keeps the shell's UI state. The two overlay flags are
// independent booleans and live only for the session; the dark-mode flag
// survives reloads.
type Store struct {
	mu       sync.RWMutex
	cartOpen bool
	authOpen bool
	darkMode bool
	blobs    storage.Store
}

type persisted struct {
	IsDarkMode bool `json:"isDarkMode"`
}

// NewStore builds the prefs store for a session, restoring the persisted
// theme flag.
func NewStore(blobs storage.Store) *Store {
	s := &Store{blobs: blobs}
	if b, err := blobs.Get(context.Background(), StorageKey); err == nil {
		var p persisted
		if json.Unmarshal(b, &p) == nil {
			s.darkMode = p.IsDarkMode
		}
	}
	return s
}

// State is a snapshot of the UI flags.
type State struct {
	CartOpen bool `json:"cartOpen"`
	AuthOpen bool `json:"authOpen"`
	DarkMode bool `json:"darkMode"`
}

// Update carries the optional flag changes; nil fields are untouched.
type Update struct {
	CartOpen *bool `json:"cartOpen,omitempty"`
	AuthOpen *bool `json:"authOpen,omitempty"`
	DarkMode *bool `json:"darkMode,omitempty"`
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{CartOpen: s.cartOpen, AuthOpen: s.authOpen, DarkMode: s.darkMode}
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// Apply sets the supplied flags. Only a dark-mode change touches the
// blob store.
func (s *Store) Apply(ctx context.Context, u Update) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.CartOpen != nil {
		s.cartOpen = *u.CartOpen
	}
	if u.AuthOpen != nil {
		s.authOpen = *u.AuthOpen
	}
	if u.DarkMode != nil && *u.DarkMode != s.darkMode {
		s.darkMode = *u.DarkMode
		s.persistLocked(ctx)
	}
	return State{CartOpen: s.cartOpen, AuthOpen: s.authOpen, DarkMode: s.darkMode}
}

// ToggleTheme flips and persists the dark-mode flag.
func (s *Store) ToggleTheme(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = !s.darkMode
	s.persistLocked(ctx)
	return State{CartOpen: s.cartOpen, AuthOpen: s.authOpen, DarkMode: s.darkMode}
}

func (s *Store) persistLocked(ctx context.Context) {
	b, err := json.Marshal(persisted{IsDarkMode: s.darkMode})
	if err == nil {
		err = s.blobs.Set(ctx, StorageKey, b)
	}
	if err != nil {
		log.Printf("prefs: persist failed: %v", err)
	}
}
