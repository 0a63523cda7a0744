package cart

import "encoding/json"

// EmbeddedProduct is the product summary the backend nests inside a cart line.
type EmbeddedProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Description string  `json:"descripcion,omitempty"`
	ImageURL    string  `json:"imagenUrl,omitempty"`
}

// Line is one product+quantity entry of a user's cart (DetalleCarrito).
// The backend has shipped the quantity under two different keys over time;
// UnmarshalJSON folds them into Quantity so nothing downstream ever sees
// the ambiguity.
type Line struct {
	ID        int              `json:"id,omitempty"`
	UserID    int              `json:"usuarioId"`
	ProductID int              `json:"productoId,omitempty"`
	Quantity  int              `json:"cantidadProducto"`
	UnitPrice float64          `json:"precioUnitario,omitempty"`
	Product   *EmbeddedProduct `json:"producto,omitempty"`
}

func (l *Line) UnmarshalJSON(data []byte) error {
	type alias Line
	aux := struct {
		*alias
		QuantityAlt int `json:"cantidad"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if l.Quantity == 0 {
		l.Quantity = aux.QuantityAlt
	}
	if l.Quantity == 0 {
		l.Quantity = 1
	}
	return nil
}

// ResolvedProductID prefers the embedded product's id over the bare foreign
// key. Zero means the line references no resolvable product.
func (l Line) ResolvedProductID() int {
	if l.Product != nil && l.Product.ID != 0 {
		return l.Product.ID
	}
	return l.ProductID
}

// EffectiveUnitPrice is the embedded product's price when one is present,
// otherwise the line's own unit price, otherwise zero.
func (l Line) EffectiveUnitPrice() float64 {
	if l.Product != nil && l.Product.Price != 0 {
		return l.Product.Price
	}
	return l.UnitPrice
}

func (l Line) Subtotal() float64 {
	return l.EffectiveUnitPrice() * float64(l.Quantity)
}

// Total sums effective price times effective quantity over all lines. Both
// the checkout orchestrator and the cart summary use this one function, so
// the total shown to the user and the total charged can never diverge.
func Total(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal()
	}
	return sum
}
