package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/identity"
)

// Handler exposes order listings and the administrative status flow.
// Customers only ever see their own orders; administrators see everything.
type Handler struct {
	orders *Client
	lines  *LinesClient
}

func NewHandler(orders *Client, lines *LinesClient) *Handler {
	return &Handler{orders: orders, lines: lines}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/pedidos", h.list)
	app.Get("/api/pedidos/:id<[0-9]+>", h.get)
	app.Get("/api/detalles/pedido/:pedidoId<[0-9]+>", h.linesByOrder)
	app.Patch("/api/pedidos/:id<[0-9]+>", identity.RequireAdmin, h.updateStatus)
	app.Delete("/api/pedidos/:id<[0-9]+>", identity.RequireAdmin, h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.orders.List(identity.RequestContext(c))
	if err != nil {
		return backend.RespondError(c, err)
	}
	if identity.RoleFromCtx(c) == identity.RoleAdministrator {
		return c.JSON(orders)
	}

	own := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == userID {
			own = append(own, o)
		}
	}
	return c.JSON(own)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.orders.Get(identity.RequestContext(c), id)
	if err != nil {
		return backend.RespondError(c, err)
	}
	if ord.UserID != userID && identity.RoleFromCtx(c) != identity.RoleAdministrator {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your order"})
	}
	return c.JSON(ord)
}

func (h *Handler) linesByOrder(c *fiber.Ctx) error {
	orderID, _ := strconv.Atoi(c.Params("pedidoId"))
	lines, err := h.lines.LinesByOrder(identity.RequestContext(c), orderID)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(lines)
}

type statusRequest struct {
	Status string `json:"estadoPedido"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "estadoPedido is required"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	ord, err := h.orders.UpdateStatus(identity.RequestContext(c), id, payload.Status)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(ord)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.orders.Delete(identity.RequestContext(c), id); err != nil {
		return backend.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
