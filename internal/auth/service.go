package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"golang.org/x/crypto/bcrypt"
)

// Service fabricates identities the way the mock backend does: every call
// waits the configured latency and then succeeds. Credentials are not
// verified; the password is hashed so the fabricated record never keeps
// it in plaintext.
type Service struct {
	clk     clock.Clock
	latency time.Duration
	isAdmin func(email string) bool
}

// NewService builds the mock identity issuer. isAdmin decides which
// emails receive the admin role; nil means nobody does.
func NewService(clk clock.Clock, latency time.Duration, isAdmin func(string) bool) *Service {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Service{clk: clk, latency: latency, isAdmin: isAdmin}
}

// Login fabricates a session identity after the mock latency. The display
// name is fixed, matching the simulated backend.
func (s *Service) Login(ctx context.Context, store *Store, email, password string) (User, error) {
	if err := s.wait(ctx); err != nil {
		return User{}, err
	}
	return s.commit(ctx, store, email, password, "John Doe")
}

// Register behaves like Login but keeps the supplied display name.
func (s *Service) Register(ctx context.Context, store *Store, email, password, name string) (User, error) {
	if err := s.wait(ctx); err != nil {
		return User{}, err
	}
	return s.commit(ctx, store, email, password, name)
}

func (s *Service) commit(ctx context.Context, store *Store, email, password, name string) (User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	role := RoleUser
	if s.isAdmin(email) {
		role = RoleAdmin
	}

	u := User{ID: uuid.NewString(), Email: email, Name: name, Role: role}
	store.SetUser(ctx, u, string(hashed))
	return u, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-s.clk.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
