package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/eshoplabs/e-shop-backend/internal/auth"
)

// Handler exposes the order history and the admin-only status update.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.getOrders)
	app.Patch("/api/v1/orders/:id/status", h.updateStatus)
}

// FromCtx returns the order store bound to the request's session.
func FromCtx(c *fiber.Ctx) (*Store, error) {
	s, ok := c.Locals(ContextKey).(*Store)
	if !ok {
		return nil, fiber.ErrInternalServerError
	}
	return s, nil
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}
	if !as.IsAuthenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	st, err := FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(st.Orders())
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	as, err := auth.FromCtx(c)
	if err != nil {
		return err
	}
	u := as.User()
	if !as.IsAuthenticated() || u == nil || u.Role != auth.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}

	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	st, err := FromCtx(c)
	if err != nil {
		return err
	}

	if err := st.UpdateStatus(c.Context(), c.Params("id"), payload.Status); err != nil {
		var te *TransitionError
		switch {
		case errors.As(err, &te):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": te.Error()})
		case errors.Is(err, ErrUnknownStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
