package backend

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps a resource-client failure onto the gateway response,
// relaying the backend's status and structured message when there is one.
// Transport failures become a 502.
func RespondError(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return c.Status(apiErr.Status).JSON(fiber.Map{"message": msg})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
}
