package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/identity"
)

// Handler exposes the caller's own cart. Every route is scoped to the
// authenticated user id from the JWT claims.
type Handler struct {
	carts *Client
}

func NewHandler(carts *Client) *Handler {
	return &Handler{carts: carts}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	// literal route first so it is not captured by /:id
	app.Get("/api/carrito/resumen", h.summary)
	app.Get("/api/carrito", h.items)
	app.Post("/api/carrito", h.add)
	app.Delete("/api/carrito/vaciar", h.clear)
	app.Delete("/api/carrito/:id<[0-9]+>", h.remove)
}

func (h *Handler) items(c *fiber.Ctx) error {
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	lines, err := h.carts.Items(identity.RequestContext(c), userID)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(lines)
}

// summary reports the same total the checkout will charge for the current
// cart contents.
func (h *Handler) summary(c *fiber.Ctx) error {
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	lines, err := h.carts.Items(identity.RequestContext(c), userID)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"items": len(lines), "total": Total(lines)})
}

type addRequest struct {
	ProductID int     `json:"productoId"`
	Quantity  int     `json:"cantidadProducto"`
	UnitPrice float64 `json:"precioUnitario"`
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productoId"})
	}
	if payload.Quantity <= 0 {
		payload.Quantity = 1
	}
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	line, err := h.carts.Add(identity.RequestContext(c), AddRequest{
		UserID:    userID,
		ProductID: payload.ProductID,
		Quantity:  payload.Quantity,
		UnitPrice: payload.UnitPrice,
	})
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.carts.Remove(identity.RequestContext(c), id); err != nil {
		return backend.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) clear(c *fiber.Ctx) error {
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if err := h.carts.Clear(identity.RequestContext(c), userID); err != nil {
		return backend.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
