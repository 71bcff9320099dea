package shell

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/catalog"
	"github.com/eshoplabs/e-shop-backend/internal/order"
	"github.com/eshoplabs/e-shop-backend/internal/prefs"
	"github.com/eshoplabs/e-shop-backend/internal/vendor"
)

// Shell maps the storefront's view routes onto the per-session stores
// and enforces the gating rule for each route before building its view
// model.
type Shell struct {
	catalog *catalog.Service
}

func New(cat *catalog.Service) *Shell {
	return &Shell{catalog: cat}
}

func (s *Shell) RegisterRoutes(app *fiber.App) {
	app.Get("/", s.home)
	app.Get("/orders", s.orders)
	app.Get("/admin", s.admin)
	app.Get("/vendor/register", s.vendorRegister)
	app.Get("/vendor/dashboard", s.vendorDashboard)
}

// theme mirrors the persisted dark-mode flag into every view model.
func theme(c *fiber.Ctx) string {
	if st, err := prefs.FromCtx(c); err == nil && st.DarkMode() {
		return "dark"
	}
	return "light"
}

func (s *Shell) home(c *fiber.Ctx) error {
	ct, err := cart.FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"view":      "product-grid",
		"theme":     theme(c),
		"products":  s.catalog.List(),
		"cartCount": ct.Len(),
	})
}

func (s *Shell) orders(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}
	if !as.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"view":    "login-prompt",
			"theme":   theme(c),
			"message": "Please login to view your orders",
		})
	}

	st, err := order.FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"view":   "order-history",
		"theme":  theme(c),
		"orders": st.Orders(),
	})
}

func (s *Shell) admin(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}

	// a stale role in persisted state never opens the dashboard
	// without a live authenticated session
	u := as.User()
	if !as.IsAuthenticated() || u == nil || u.Role != auth.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"view":    "access-denied",
			"theme":   theme(c),
			"message": "Access Denied",
		})
	}

	st, err := order.FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"view":   "admin-dashboard",
		"theme":  theme(c),
		"orders": st.Orders(),
	})
}

func (s *Shell) vendorRegister(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}
	if !as.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"view":    "login-prompt",
			"theme":   theme(c),
			"message": "Please login to register as a vendor",
		})
	}
	return c.JSON(fiber.Map{
		"view":       "vendor-registration",
		"theme":      theme(c),
		"categories": s.catalog.Categories(),
	})
}

func (s *Shell) vendorDashboard(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}
	vs, err := vendor.FromCtx(c)
	if err != nil {
		return err
	}

	profile, ok := vs.Profile()
	if !as.IsAuthenticated() || !ok {
		return c.JSON(fiber.Map{
			"view":    "become-a-vendor",
			"theme":   theme(c),
			"message": "Become a Vendor",
			"cta":     "/vendor/register",
		})
	}
	return c.JSON(fiber.Map{
		"view":      "vendor-dashboard",
		"theme":     theme(c),
		"profile":   profile,
		"products":  vs.Products(),
		"orders":    vs.Orders(),
		"analytics": vs.Analytics(),
	})
}
