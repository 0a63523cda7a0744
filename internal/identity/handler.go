package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hydrosys/storefront/internal/backend"
)

// Handler exposes the auth surface of the gateway. It normalizes whatever
// the backend answers and hands the token plus canonical user back to the
// caller, which keeps its own copy.
type Handler struct {
	auth *Client
}

func NewHandler(auth *Client) *Handler {
	return &Handler{auth: auth}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/login", h.login)
	app.Post("/api/auth/register", h.register)
	app.Post("/api/auth/logout", h.logout)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(credentialsRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	user, token, err := h.auth.Login(RequestContext(c), payload.Email, payload.Password)
	if err != nil {
		return authError(c, err, "Error al iniciar sesión")
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(Registration)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "correo and password are required"})
	}
	if payload.Role == "" {
		payload.Role = "cliente"
	}

	user, token, err := h.auth.Register(RequestContext(c), *payload)
	if err != nil {
		return authError(c, err, "Error al registrarse")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": user})
}

// logout exists so the SPA has one endpoint to call; the session itself
// lives on the client side and invalidating the token is the backend's
// business.
func (h *Handler) logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func authError(c *fiber.Ctx, err error, fallback string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return c.Status(apiErr.Status).JSON(fiber.Map{"message": msg})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": fallback})
}
