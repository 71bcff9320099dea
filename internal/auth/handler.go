package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Handler exposes the mock sign-in/sign-up/sign-out endpoints and issues
// session tokens on success.
type Handler struct {
	service   *Service
	jwtSecret []byte
}

func NewHandler(service *Service, jwtSecret []byte) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.signIn)
	app.Post("/api/v1/sign-up", h.signUp)
	app.Post("/api/v1/sign-out", h.signOut)
}

// FromCtx returns the auth store bound to the request's session.
func FromCtx(c *fiber.Ctx) (*Store, error) {
	s, ok := c.Locals(ContextKey).(*Store)
	if !ok {
		return nil, fiber.ErrInternalServerError
	}
	return s, nil
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	store, err := FromCtx(c)
	if err != nil {
		return err
	}

	u, err := h.service.Login(c.Context(), store, payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	signed, err := h.issueToken(c, u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    u,
		"token":   signed,
	})
}

func (h *Handler) signUp(c *fiber.Ctx) error {
	payload := new(signUpRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing required fields"})
	}

	store, err := FromCtx(c)
	if err != nil {
		return err
	}

	u, err := h.service.Register(c.Context(), store, payload.Email, payload.Password, payload.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	signed, err := h.issueToken(c, u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  u,
		"token": signed,
	})
}

func (h *Handler) signOut(c *fiber.Ctx) error {
	store, err := FromCtx(c)
	if err != nil {
		return err
	}
	store.Logout(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) issueToken(c *fiber.Ctx, u User) (string, error) {
	// "sid" is set by the session middleware; the claim lets a token
	// rebind its session without the cookie
	sid, _ := c.Locals("sid").(string)
	claims := jwt.MapClaims{
		"sid":     sid,
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
