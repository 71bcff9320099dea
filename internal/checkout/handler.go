package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
	"github.com/eshoplabs/e-shop-backend/internal/cart"
	"github.com/eshoplabs/e-shop-backend/internal/order"
	"github.com/eshoplabs/e-shop-backend/internal/vendor"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.placeOrder)
}

type checkoutRequest struct {
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}
	if !as.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ct, err := cart.FromCtx(c)
	if err != nil {
		return err
	}
	orders, err := order.FromCtx(c)
	if err != nil {
		return err
	}
	vendors, err := vendor.FromCtx(c)
	if err != nil {
		return err
	}

	ord, err := h.service.PlaceOrder(c.Context(), ct, orders, vendors, payload.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}
