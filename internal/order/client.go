package order

import (
	"context"
	"strconv"

	"github.com/hydrosys/storefront/internal/backend"
)

// Draft is the create-order payload. Total must already be the decimal
// string the checkout computed.
type Draft struct {
	UserID          int    `json:"usuarioId"`
	PaymentMethodID int    `json:"metodoPagoId"`
	Status          string `json:"estadoPedido"`
	ShippingAddress string `json:"direccionEnvio"`
	Total           string `json:"totalPedido"`
}

type statusUpdate struct {
	Status string `json:"estadoPedido"`
}

// Client wraps the order endpoints.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.api.Get(ctx, "/api/pedidos", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Get(ctx context.Context, id int) (Order, error) {
	var ord Order
	if err := c.api.Get(ctx, "/api/pedidos/"+strconv.Itoa(id), &ord); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (c *Client) Create(ctx context.Context, draft Draft) (Order, error) {
	var ord Order
	if err := c.api.Post(ctx, "/api/pedidos", draft, &ord); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int, status string) (Order, error) {
	var ord Order
	if err := c.api.Patch(ctx, "/api/pedidos/"+strconv.Itoa(id), statusUpdate{Status: status}, &ord); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, "/api/pedidos/"+strconv.Itoa(id))
}

// LinesClient wraps the order-line endpoints, a separate backend resource.
type LinesClient struct {
	api *backend.Client
}

func NewLinesClient(api *backend.Client) *LinesClient {
	return &LinesClient{api: api}
}

func (c *LinesClient) CreateLine(ctx context.Context, line Line) (Line, error) {
	var created Line
	if err := c.api.Post(ctx, "/api/detalles", line, &created); err != nil {
		return Line{}, err
	}
	return created, nil
}

func (c *LinesClient) LinesByOrder(ctx context.Context, orderID int) ([]Line, error) {
	var lines []Line
	if err := c.api.Get(ctx, "/api/detalles/pedido/"+strconv.Itoa(orderID), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *LinesClient) DeleteLine(ctx context.Context, id int) error {
	return c.api.Delete(ctx, "/api/detalles/"+strconv.Itoa(id))
}
