package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/hydrosys/storefront/internal/backend"
	"github.com/hydrosys/storefront/internal/cart"
	"github.com/hydrosys/storefront/internal/order"
)

// fakeHydrosys is the minimal remote backend a full purchase touches.
type fakeHydrosys struct {
	cartBody     string
	orderDrafts  []order.Draft
	linesCreated []order.Line
	cleared      []string
}

func (f *fakeHydrosys) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/carrito/"):
		w.Write([]byte(f.cartBody))
	case r.Method == http.MethodPost && r.URL.Path == "/api/pedidos":
		var draft order.Draft
		json.NewDecoder(r.Body).Decode(&draft)
		f.orderDrafts = append(f.orderDrafts, draft)
		w.Write([]byte(`{"id":77,"usuarioId":5,"estadoPedido":"PENDIENTE","totalPedido":"2500"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/api/detalles":
		var line order.Line
		json.NewDecoder(r.Body).Decode(&line)
		f.linesCreated = append(f.linesCreated, line)
		line.ID = len(f.linesCreated)
		json.NewEncoder(w).Encode(line)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/carrito/vaciar/"):
		f.cleared = append(f.cleared, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	default:
		http.NotFound(w, r)
	}
}

func checkoutApp(t *testing.T, fake *fakeHydrosys) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	api, err := backend.New(srv.URL, 2*time.Second, nil)
	require.NoError(t, err)

	carts := cart.NewClient(api)
	orch := NewOrchestrator(order.NewClient(api), order.NewLinesClient(api), carts)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": float64(5), "rol": "cliente"}})
		return c.Next()
	})
	NewHandler(carts, orch).RegisterProtectedRoutes(app)
	return app
}

func TestCheckoutEndpoint_FullPurchase(t *testing.T) {
	fake := &fakeHydrosys{cartBody: `[
		{"id":1,"usuarioId":5,"cantidadProducto":2,"producto":{"id":10,"precio":1000}},
		{"id":2,"usuarioId":5,"cantidadProducto":1,"producto":{"id":20,"precio":500}}
	]`}
	app := checkoutApp(t, fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.True(t, result.Success)
	require.Equal(t, 77, result.OrderID)

	require.Len(t, fake.orderDrafts, 1)
	require.Equal(t, "2500", fake.orderDrafts[0].Total)
	require.Len(t, fake.linesCreated, 2)
	require.Equal(t, []string{"/api/carrito/vaciar/5"}, fake.cleared)
}

func TestCheckoutEndpoint_EmptyCart(t *testing.T) {
	fake := &fakeHydrosys{cartBody: `[]`}
	app := checkoutApp(t, fake)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.False(t, result.Success)
	require.NotEmpty(t, result.Err)
	require.Empty(t, fake.orderDrafts)
}

func TestCheckoutEndpoint_BodyOverridesDefaults(t *testing.T) {
	fake := &fakeHydrosys{cartBody: `[{"id":1,"usuarioId":5,"cantidadProducto":1,"producto":{"id":10,"precio":1000}}]`}
	app := checkoutApp(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout",
		strings.NewReader(`{"metodoPagoId":3,"direccionEnvio":"Av. Siempre Viva 742"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, fake.orderDrafts, 1)
	require.Equal(t, 3, fake.orderDrafts[0].PaymentMethodID)
	require.Equal(t, "Av. Siempre Viva 742", fake.orderDrafts[0].ShippingAddress)
}
