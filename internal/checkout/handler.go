package checkout

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/cart"
	"github.com/hydrosys/storefront/internal/identity"
)

type CartLister interface {
	Items(ctx context.Context, userID int) ([]cart.Line, error)
}

// Handler drives a purchase for the authenticated caller: it loads the
// current cart from the backend and hands it to the orchestrator.
type Handler struct {
	carts CartLister
	orch  *Orchestrator
}

func NewHandler(carts CartLister, orch *Orchestrator) *Handler {
	return &Handler{carts: carts, orch: orch}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/checkout", h.checkout)
}

type checkoutRequest struct {
	PaymentMethodID int    `json:"metodoPagoId"`
	ShippingAddress string `json:"direccionEnvio"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	userID, err := identity.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ctx := identity.RequestContext(c)
	lines, err := h.carts.Items(ctx, userID)
	if err != nil {
		return backend.RespondError(c, err)
	}

	result := h.orch.ProcessPurchase(ctx, userID, lines, Options{
		PaymentMethodID: payload.PaymentMethodID,
		ShippingAddress: payload.ShippingAddress,
	})
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
