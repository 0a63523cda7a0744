// Package checkout converts a user's cart into one persisted order plus its
// lines and then clears the cart. The backend offers no transaction across
// those calls, so the orchestrator runs them strictly in sequence with no
// retries and no rollback; whatever persisted before a failure stays
// persisted, and the caller learns about it through a structured result.
package checkout

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/cart"
	"github.com/hydrosys/storefront/internal/order"
)

const (
	defaultPaymentMethodID = 1
	defaultShippingAddress = "Dirección por defecto"
	fallbackMessage        = "Error al procesar la compra"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidTotal = errors.New("computed total is not a positive finite number")
)

type OrderCreator interface {
	Create(ctx context.Context, draft order.Draft) (order.Order, error)
}

type LineCreator interface {
	CreateLine(ctx context.Context, line order.Line) (order.Line, error)
}

type CartClearer interface {
	Clear(ctx context.Context, userID int) error
}

// Result is what the caller gets instead of an exception. Success is true
// only when the order was created and the cart was cleared; skipped lines
// do not spoil it.
type Result struct {
	Success bool   `json:"success"`
	OrderID int    `json:"pedidoId,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Options tune one purchase. Zero values fall back to the storefront
// defaults.
type Options struct {
	PaymentMethodID int
	ShippingAddress string
}

type Orchestrator struct {
	orders OrderCreator
	lines  LineCreator
	carts  CartClearer
}

func NewOrchestrator(orders OrderCreator, lines LineCreator, carts CartClearer) *Orchestrator {
	return &Orchestrator{orders: orders, lines: lines, carts: carts}
}

// ProcessPurchase runs the whole purchase for one user:
//
//  1. validate the cart and the computed total before any network call
//  2. create the order with the total as a decimal string
//  3. create one order line per cart line, in order, one at a time;
//     a line with no resolvable product id is logged and skipped
//  4. clear the cart
//
// Any failure past validation aborts the remaining steps. The order is
// never deleted on a later failure, so "order created but cart not cleared"
// is a possible outcome the caller reconciles on the next cart load.
func (o *Orchestrator) ProcessPurchase(ctx context.Context, userID int, lines []cart.Line, opts Options) Result {
	if opts.PaymentMethodID == 0 {
		opts.PaymentMethodID = defaultPaymentMethodID
	}
	if opts.ShippingAddress == "" {
		opts.ShippingAddress = defaultShippingAddress
	}

	if len(lines) == 0 {
		return failure(ErrEmptyCart)
	}
	total := cart.Total(lines)
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return failure(ErrInvalidTotal)
	}

	created, err := o.orders.Create(ctx, order.Draft{
		UserID:          userID,
		PaymentMethodID: opts.PaymentMethodID,
		Status:          order.StatusPending,
		ShippingAddress: opts.ShippingAddress,
		Total:           order.FormatTotal(total),
	})
	if err != nil {
		return failure(err)
	}

	for _, l := range lines {
		productID := l.ResolvedProductID()
		if productID == 0 {
			log.Printf("checkout: cart line %d has no resolvable product id, skipping", l.ID)
			continue
		}
		_, err := o.lines.CreateLine(ctx, order.Line{
			OrderID:   created.ID,
			ProductID: productID,
			Quantity:  l.Quantity,
			UnitPrice: l.EffectiveUnitPrice(),
		})
		if err != nil {
			return failure(err)
		}
	}

	if err := o.carts.Clear(ctx, userID); err != nil {
		return failure(err)
	}

	return Result{Success: true, OrderID: created.ID}
}

// failure picks the most specific message available: the backend's
// structured message, then the transport error, then the generic fallback.
func failure(err error) Result {
	msg := fallbackMessage
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		msg = apiErr.Message
	case err != nil && err.Error() != "":
		msg = err.Error()
	}
	return Result{Success: false, Err: msg}
}
