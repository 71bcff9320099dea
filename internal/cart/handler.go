package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/eshoplabs/e-shop-backend/internal/catalog"
)

// Handler exposes the session cart endpoints. The cart works for
// anonymous visitors too, so the routes are public.
type Handler struct {
	catalog *catalog.Service
}

func NewHandler(cat *catalog.Service) *Handler {
	return &Handler{catalog: cat}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items/:id<[0-9]+>", h.updateQuantity)
	app.Delete("/api/v1/cart/items/:id<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

// FromCtx returns the cart bound to the request's session.
func FromCtx(c *fiber.Ctx) (*Cart, error) {
	ct, ok := c.Locals(ContextKey).(*Cart)
	if !ok {
		return nil, fiber.ErrInternalServerError
	}
	return ct, nil
}

type cartView struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

func view(ct *Cart) cartView {
	return cartView{Items: ct.Items(), Total: ct.Total()}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	ct, err := FromCtx(c)
	if err != nil {
		return err
	}
	return c.JSON(view(ct))
}

type addItemRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	p, err := h.catalog.GetByID(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	ct, err := FromCtx(c)
	if err != nil {
		return err
	}
	ct.AddItem(p)
	return c.JSON(view(ct))
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ct, err := FromCtx(c)
	if err != nil {
		return err
	}
	ct.UpdateQuantity(id, payload.Quantity)
	return c.JSON(view(ct))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ct, err := FromCtx(c)
	if err != nil {
		return err
	}
	ct.RemoveItem(id)
	return c.JSON(view(ct))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	ct, err := FromCtx(c)
	if err != nil {
		return err
	}
	ct.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
