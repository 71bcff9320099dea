package prefs

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the UI preference endpoints.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/prefs", h.getPrefs)
	app.Put("/api/v1/prefs", h.updatePrefs)
	app.Post("/api/v1/prefs/theme/toggle", h.toggleTheme)
}

// FromCtx returns the prefs store bound to the request's session.
func FromCtx(c *fiber.Ctx) (*Store, error) {
	s, ok := c.Locals(ContextKey).(*Store)
	if !ok {
		return nil, fiber.ErrInternalServerError
	}
	return s, nil
}

func (h *Handler) getPrefs(c *fiber.Ctx) error {
	st, err := FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(st.State())
}

func (h *Handler) updatePrefs(c *fiber.Ctx) error {
	st, err := FromCtx(c)
	if err != nil {
		return err
	}

	payload := new(Update)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(st.Apply(c.Context(), *payload))
}

func (h *Handler) toggleTheme(c *fiber.Ctx) error {
	st, err := FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(st.ToggleTheme(c.Context()))
}
