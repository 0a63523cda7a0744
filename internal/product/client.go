package product

import (
	"context"
	"strconv"

	"github.com/hydrosys/storefront/internal/backend"
)

// Client wraps the product endpoints.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.api.Get(ctx, "/api/productos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Get(ctx context.Context, id int) (Product, error) {
	var p Product
	if err := c.api.Get(ctx, "/api/productos/"+strconv.Itoa(id), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *Client) Create(ctx context.Context, p Product) (Product, error) {
	var created Product
	if err := c.api.Post(ctx, "/api/productos", p, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id int, p Product) (Product, error) {
	var updated Product
	if err := c.api.Put(ctx, "/api/productos/"+strconv.Itoa(id), p, &updated); err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.api.Delete(ctx, "/api/productos/"+strconv.Itoa(id))
}
