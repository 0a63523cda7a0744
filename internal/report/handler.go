package report

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tealeg/xlsx"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/identity"
	"github.com/hydrosys/storefront/internal/order"
	"github.com/hydrosys/storefront/internal/product"
)

type OrderLister interface {
	List(ctx context.Context) ([]order.Order, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]product.Product, error)
}

// Handler streams the generated workbooks as attachments. Back office only.
type Handler struct {
	orders   OrderLister
	products ProductLister
}

func NewHandler(orders OrderLister, products ProductLister) *Handler {
	return &Handler{orders: orders, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/reportes/dashboard", identity.RequireAdmin, h.dashboard)
	app.Get("/api/reportes/pedidos", identity.RequireAdmin, h.orderListing)
	app.Get("/api/reportes/inventario", identity.RequireAdmin, h.inventory)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	ctx := identity.RequestContext(c)
	orders, err := h.orders.List(ctx)
	if err != nil {
		return backend.RespondError(c, err)
	}
	products, err := h.products.List(ctx)
	if err != nil {
		return backend.RespondError(c, err)
	}
	file, err := Dashboard(orders, products, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return send(c, file, KindDashboard)
}

func (h *Handler) orderListing(c *fiber.Ctx) error {
	orders, err := h.orders.List(identity.RequestContext(c))
	if err != nil {
		return backend.RespondError(c, err)
	}
	file, err := Orders(orders)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return send(c, file, KindOrders)
}

func (h *Handler) inventory(c *fiber.Ctx) error {
	products, err := h.products.List(identity.RequestContext(c))
	if err != nil {
		return backend.RespondError(c, err)
	}
	file, err := Inventory(products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return send(c, file, KindInventory)
}

func send(c *fiber.Ctx, file *xlsx.File, kind Kind) error {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+Filename(kind, time.Now()))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return file.Write(c)
}
