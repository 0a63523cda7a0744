package analytics

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hydrosys/storefront/internal/identity"
)

// Handler serves the back-office dashboard data.
type Handler struct {
	source *Client
}

func NewHandler(source *Client) *Handler {
	return &Handler{source: source}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/analitica/resumen", identity.RequireAdmin, h.summary)
	app.Get("/api/analitica/registros", identity.RequireAdmin, h.records)
}

func (h *Handler) summary(c *fiber.Ctx) error {
	records, err := h.source.Records(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(Summarize(records, time.Now()))
}

func (h *Handler) records(c *fiber.Ctx) error {
	records, err := h.source.Records(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(records)
}
