package session

import (
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/order"
	"github.com/eshoplabs/e-shop-backend/internal/prefs"
	"github.com/eshoplabs/e-shop-backend/internal/storage"
	"github.com/eshoplabs/e-shop-backend/internal/vendor"
)

const (
	// CookieName carries the session id between requests.
	CookieName = "sid"
	// ContextKey is where the middleware parks the resolved session id.
	ContextKey = "sid"
)

// Session is the per-visitor set of stores. Each store exclusively owns
// its slice of state; nothing is shared by mutable reference across
// them.
type Session struct {
	ID     string
	Cart   *cart.Cart
	Auth   *auth.Store
	Orders *order.Store
	Vendor *vendor.Store
	Prefs  *prefs.Store
}

// Manager constructs sessions at session start and rehydrates their
// persisted slices from the blob store. Stores are injected into
// consumers through request locals rather than reached as globals.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	blobs       storage.Store
	clk         clock.Clock
	mockLatency time.Duration
}

func NewManager(blobs storage.Store, clk clock.Clock, mockLatency time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		blobs:       blobs,
		clk:         clk,
		mockLatency: mockLatency,
	}
}

// Get returns the session for id, creating and rehydrating it on first
// use. The cart starts empty every time the process does: it is the one
// store that is never persisted.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	scope := storage.Scoped(m.blobs, "session:"+id+":")
	s := &Session{
		ID:     id,
		Cart:   cart.New(),
		Auth:   auth.NewStore(scope),
		Orders: order.NewStore(scope, m.clk),
		Vendor: vendor.NewStore(scope, m.clk, m.mockLatency),
		Prefs:  prefs.NewStore(scope),
	}
	m.sessions[id] = s
	return s
}
