package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/identity"
)

// Handler exposes the catalog. Reads are public, mutations are back-office
// only.
type Handler struct {
	products *Client
}

func NewHandler(products *Client) *Handler {
	return &Handler{products: products}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/productos", h.list)
	app.Get("/api/productos/:id<[0-9]+>", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/productos", identity.RequireAdmin, h.create)
	app.Put("/api/productos/:id<[0-9]+>", identity.RequireAdmin, h.update)
	app.Delete("/api/productos/:id<[0-9]+>", identity.RequireAdmin, h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	p, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "nombre and a positive precio are required"})
	}
	created, err := h.products.Create(identity.RequestContext(c), *payload)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	updated, err := h.products.Update(identity.RequestContext(c), id, *payload)
	if err != nil {
		return backend.RespondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.products.Delete(identity.RequestContext(c), id); err != nil {
		return backend.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
