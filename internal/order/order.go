package order

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Known status labels. The field stays free text on the wire; these are the
// values the storefront and back office actually use.
const (
	StatusPending    = "PENDIENTE"
	StatusProcessing = "PROCESANDO"
	StatusShipped    = "ENVIADO"
	StatusDelivered  = "ENTREGADO"
	StatusCancelled  = "CANCELADO"
)

// Customer is the identity summary the backend embeds in an order.
type Customer struct {
	ID        int    `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"nombre,omitempty"`
	LastName  string `json:"apellido,omitempty"`
}

type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"nombrePago,omitempty"`
}

// ProductSummary is the product excerpt nested in an order line.
type ProductSummary struct {
	ID    int     `json:"id"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
}

// Line is one immutable product line of a placed order (DetallePedido).
type Line struct {
	ID        int             `json:"id,omitempty"`
	OrderID   int             `json:"pedidoId"`
	ProductID int             `json:"productoId"`
	Quantity  int             `json:"cantidadProducto"`
	UnitPrice float64         `json:"precioUnitario"`
	Product   *ProductSummary `json:"producto,omitempty"`
}

// Order is a placed purchase (Pedido) in canonical form. The backend has
// answered with the owner as an embedded object or a bare foreign key, the
// payment method likewise, the creation timestamp under two names and the
// total as either a JSON string or a number. UnmarshalJSON resolves all of
// it here so nothing downstream sees the variants.
type Order struct {
	ID              int
	UserID          int
	Customer        *Customer
	PaymentMethodID int
	PaymentMethod   *PaymentMethod
	Status          string
	ShippingAddress string
	Total           string // decimal string, no currency symbol
	PlacedAt        string
	Lines           []Line
}

type orderWire struct {
	ID              int             `json:"id,omitempty"`
	Customer        *Customer       `json:"usuario,omitempty"`
	UserID          int             `json:"usuarioId,omitempty"`
	PaymentMethod   *PaymentMethod  `json:"metodoPago,omitempty"`
	PaymentMethodID int             `json:"metodoPagoId,omitempty"`
	Status          string          `json:"estadoPedido"`
	ShippingAddress string          `json:"direccionEnvio"`
	Total           json.RawMessage `json:"totalPedido"`
	PlacedAt        string          `json:"fechaPedido,omitempty"`
	CreatedAt       string          `json:"fechaCreacion,omitempty"`
	Lines           []Line          `json:"detalles,omitempty"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var raw orderWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.ID = raw.ID
	o.Customer = raw.Customer
	o.UserID = raw.UserID
	if raw.Customer != nil && raw.Customer.ID != 0 {
		o.UserID = raw.Customer.ID
	}
	o.PaymentMethod = raw.PaymentMethod
	o.PaymentMethodID = raw.PaymentMethodID
	if raw.PaymentMethod != nil && raw.PaymentMethod.ID != 0 {
		o.PaymentMethodID = raw.PaymentMethod.ID
	}
	o.Status = raw.Status
	o.ShippingAddress = raw.ShippingAddress
	o.Total = decodeDecimal(raw.Total)
	o.PlacedAt = raw.PlacedAt
	if o.PlacedAt == "" {
		o.PlacedAt = raw.CreatedAt
	}
	o.Lines = raw.Lines
	return nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	total, err := json.Marshal(o.Total)
	if err != nil {
		return nil, err
	}
	return json.Marshal(orderWire{
		ID:              o.ID,
		Customer:        o.Customer,
		UserID:          o.UserID,
		PaymentMethod:   o.PaymentMethod,
		PaymentMethodID: o.PaymentMethodID,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		Total:           total,
		PlacedAt:        o.PlacedAt,
		Lines:           o.Lines,
	})
}

// TotalAmount parses the decimal-string total for aggregation; a value that
// does not parse counts as zero, matching how the display layer treats it.
func (o Order) TotalAmount() float64 {
	v, err := strconv.ParseFloat(o.Total, 64)
	if err != nil {
		return 0
	}
	return v
}

// PlacedTime parses the creation timestamp; zero time when absent or
// unparseable.
func (o Order) PlacedTime() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, o.PlacedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CustomerName renders the owner for listings.
func (o Order) CustomerName() string {
	if o.Customer == nil {
		return "N/A"
	}
	name := strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
	if name == "" {
		return "N/A"
	}
	return name
}

// FormatTotal serializes a computed total the way the backend's BigDecimal
// field wants it: a plain decimal string.
func FormatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decodeDecimal(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
