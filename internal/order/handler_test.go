package order

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/storage"
)

func makeAppWithOrderHandler(as *auth.Store, st *Store) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.ContextKey, as)
		c.Locals(ContextKey, st)
		return c.Next()
	})
	NewHandler().RegisterProtectedRoutes(app)
	return app
}

func newAuthStore(role string) *auth.Store {
	as := auth.NewStore(storage.Scoped(storage.NewInMemoryStore(), "session:t:"))
	if role != "" {
		as.SetUser(context.Background(), auth.User{ID: "u1", Email: "a@b.com", Name: "A", Role: role}, "")
	}
	return as
}

func TestGetOrdersRequiresAuth(t *testing.T) {
	st, _ := newTestStore()
	app := makeAppWithOrderHandler(newAuthStore(""), st)

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous session, got %d", res.StatusCode)
	}

	app = makeAppWithOrderHandler(newAuthStore(auth.RoleUser), st)
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated session, got %d", res.StatusCode)
	}
}

func TestUpdateStatusIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore()
	ord, err := st.AddOrder(ctx, draft())
	if err != nil {
		t.Fatalf("add order: %v", err)
	}

	// a plain user may not touch statuses
	app := makeAppWithOrderHandler(newAuthStore(auth.RoleUser), st)
	req := httptest.NewRequest("PATCH", "/api/v1/orders/"+ord.ID+"/status", strings.NewReader(`{"status":"processing"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	admin := makeAppWithOrderHandler(newAuthStore(auth.RoleAdmin), st)

	// a legal forward step succeeds
	req = httptest.NewRequest("PATCH", "/api/v1/orders/"+ord.ID+"/status", strings.NewReader(`{"status":"processing"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = admin.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for legal transition, got %d", res.StatusCode)
	}

	// an illegal transition is a conflict
	req = httptest.NewRequest("PATCH", "/api/v1/orders/"+ord.ID+"/status", strings.NewReader(`{"status":"pending"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = admin.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for illegal transition, got %d", res.StatusCode)
	}

	// an unknown order id is silently ignored
	req = httptest.NewRequest("PATCH", "/api/v1/orders/nope/status", strings.NewReader(`{"status":"processing"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = admin.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for unknown id, got %d", res.StatusCode)
	}

	got, ok := st.Get(ord.ID)
	if !ok || got.Status != StatusProcessing {
		t.Fatalf("expected order to stay in processing, got %+v", got)
	}
}
