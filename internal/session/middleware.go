package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/order"
	"github.com/eshoplabs/e-shop-backend/internal/prefs"
	"github.com/eshoplabs/e-shop-backend/internal/vendor"
)

// Middleware resolves the visitor's session id (token claim first, then
// cookie, else a fresh id) and binds the session's stores into the
// request locals for the handlers downstream.
func Middleware(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := sidFromToken(c)
		if id == "" {
			id = c.Cookies(CookieName)
		}
		if id == "" {
			id = uuid.NewString()
		}
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
		})

		s := m.Get(id)
		c.Locals(ContextKey, id)
		c.Locals(cart.ContextKey, s.Cart)
		c.Locals(auth.ContextKey, s.Auth)
		c.Locals(order.ContextKey, s.Orders)
		c.Locals(vendor.ContextKey, s.Vendor)
		c.Locals(prefs.ContextKey, s.Prefs)
		return c.Next()
	}
}

// sidFromToken reads the session id claim from a token already validated
// by the JWT middleware, if any.
func sidFromToken(c *fiber.Ctx) string {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
