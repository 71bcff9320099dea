package session

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/juju/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/catalog"
	"github.com/eshoplabs/e-shop-backend/internal/storage"
)

func TestGetReturnsSameSessionForSameID(t *testing.T) {
	m := NewManager(storage.NewInMemoryStore(), clock.WallClock, 0)

	a := m.Get("s1")
	b := m.Get("s1")
	c := m.Get("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestSessionsDoNotShareState(t *testing.T) {
	m := NewManager(storage.NewInMemoryStore(), clock.WallClock, 0)

	a := m.Get("s1")
	b := m.Get("s2")

	a.Cart.AddItem(catalog.Product{ID: 1, Price: 10})
	assert.Equal(t, 1, a.Cart.Len())
	assert.Equal(t, 0, b.Cart.Len())

	a.Auth.SetUser(context.Background(), auth.User{ID: "u1", Email: "a@b.com", Role: auth.RoleUser}, "")
	assert.True(t, a.Auth.IsAuthenticated())
	assert.False(t, b.Auth.IsAuthenticated())
}

func TestRehydrationIsScopedToSession(t *testing.T) {
	blobs := storage.NewInMemoryStore()
	m := NewManager(blobs, clock.WallClock, 0)

	s := m.Get("s1")
	s.Auth.SetUser(context.Background(), auth.User{ID: "u1", Email: "a@b.com", Role: auth.RoleUser}, "")

	// a fresh manager over the same blobs restores the same visitor
	again := NewManager(blobs, clock.WallClock, 0).Get("s1")
	assert.True(t, again.Auth.IsAuthenticated())

	other := NewManager(blobs, clock.WallClock, 0).Get("s2")
	assert.False(t, other.Auth.IsAuthenticated())
}

func TestCartNeverSurvivesRestart(t *testing.T) {
	blobs := storage.NewInMemoryStore()
	m := NewManager(blobs, clock.WallClock, 0)
	m.Get("s1").Cart.AddItem(catalog.Product{ID: 1, Price: 10})

	again := NewManager(blobs, clock.WallClock, 0).Get("s1")
	assert.Equal(t, 0, again.Cart.Len())
}

func TestMiddlewareBindsStoresAndCookie(t *testing.T) {
	m := NewManager(storage.NewInMemoryStore(), clock.WallClock, 0)

	app := fiber.New()
	app.Use(Middleware(m))
	app.Get("/probe", func(c *fiber.Ctx) error {
		if _, ok := c.Locals(ContextKey).(string); !ok {
			return fiber.ErrInternalServerError
		}
		if _, ok := c.Locals(cart.ContextKey).(*cart.Cart); !ok {
			return fiber.ErrInternalServerError
		}
		if _, ok := c.Locals(auth.ContextKey).(*auth.Store); !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendStatus(fiber.StatusOK)
	})

	res, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var sid string
	for _, ck := range res.Cookies() {
		if ck.Name == CookieName {
			sid = ck.Value
		}
	}
	require.NotEmpty(t, sid, "expected a session cookie")

	// the cookie pins the visitor to the same session
	s1 := m.Get(sid)
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Cookie", CookieName+"="+sid)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Same(t, s1, m.Get(sid))
}
