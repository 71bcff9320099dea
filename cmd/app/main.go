package main

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/juju/clock"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/catalog"
	"github.com/eshoplabs/e-shop-backend/internal/checkout"
	"github.com/eshoplabs/e-shop-backend/internal/config"
	"github.com/eshoplabs/e-shop-backend/internal/order"
	"github.com/eshoplabs/e-shop-backend/internal/prefs"
	"github.com/eshoplabs/e-shop-backend/internal/session"
	"github.com/eshoplabs/e-shop-backend/internal/shell"
	"github.com/eshoplabs/e-shop-backend/internal/storage"
	"github.com/eshoplabs/e-shop-backend/internal/vendor"
)

func main() {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	blobs := newBlobStore(cfg)
	manager := session.NewManager(blobs, clock.WallClock, cfg.MockLatency)

	app := fiber.New()
	setupCORS(app)

	// only the order, checkout and vendor APIs demand a token; views and
	// the rest of the API gate on session state instead
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			p := c.Path()
			protected := strings.HasPrefix(p, "/api/v1/orders") ||
				strings.HasPrefix(p, "/api/v1/checkout") ||
				strings.HasPrefix(p, "/api/v1/vendor")
			return !protected
		},
	}))
	app.Use(session.Middleware(manager))

	authService := auth.NewService(clock.WallClock, cfg.MockLatency, cfg.IsAdminEmail)
	authHandler := auth.NewHandler(authService, []byte(cfg.JWTSecret))
	authHandler.RegisterPublicRoutes(app)

	catalog.NewHandler(cat).RegisterPublicRoutes(app)
	cart.NewHandler(cat).RegisterPublicRoutes(app)
	prefs.NewHandler().RegisterPublicRoutes(app)

	order.NewHandler().RegisterProtectedRoutes(app)

	checkoutService := checkout.NewService(clock.WallClock, cfg.MockLatency)
	checkout.NewHandler(checkoutService).RegisterProtectedRoutes(app)

	vendor.NewHandler().RegisterProtectedRoutes(app)

	shell.New(cat).RegisterRoutes(app)

	log.Printf("starting storefront on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newBlobStore(cfg config.Config) storage.Store {
	if cfg.RedisAddr == "" {
		return storage.NewInMemoryStore()
	}
	rs := storage.NewRedisStore(cfg.RedisAddr)
	if err := rs.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable (%v), keeping state in memory", err)
		return storage.NewInMemoryStore()
	}
	return rs
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
