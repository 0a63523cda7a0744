package cart

import (
	"context"
	"strconv"

	"github.com/hydrosys/storefront/internal/backend"
)

// AddRequest is the payload the backend expects for "add to cart".
type AddRequest struct {
	UserID    int     `json:"usuarioId"`
	ProductID int     `json:"productoId"`
	Quantity  int     `json:"cantidadProducto"`
	UnitPrice float64 `json:"precioUnitario"`
}

// Client wraps the cart endpoints of the HydroSyS backend. It is stateless;
// failures come back unchanged for the caller to deal with.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Items(ctx context.Context, userID int) ([]Line, error) {
	var lines []Line
	if err := c.api.Get(ctx, "/api/carrito/"+strconv.Itoa(userID), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) Add(ctx context.Context, req AddRequest) (Line, error) {
	var line Line
	if err := c.api.Post(ctx, "/api/carrito", req, &line); err != nil {
		return Line{}, err
	}
	return line, nil
}

func (c *Client) Remove(ctx context.Context, id int) error {
	return c.api.Delete(ctx, "/api/carrito/"+strconv.Itoa(id))
}

// Clear removes every line of one user's cart in a single call.
func (c *Client) Clear(ctx context.Context, userID int) error {
	return c.api.Delete(ctx, "/api/carrito/vaciar/"+strconv.Itoa(userID))
}
