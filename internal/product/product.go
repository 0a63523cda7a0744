package product

// Product is a catalog entry. Read-mostly from the storefront's point of
// view; stock is never touched by checkout.
type Product struct {
	ID          int       `json:"id,omitempty"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Price       float64   `json:"precio"`
	Stock       int       `json:"stock"`
	CategoryID  int       `json:"categoriaId,omitempty"`
	Category    *Category `json:"categoria,omitempty"`
	ImageURL    string    `json:"imagenUrl,omitempty"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

func (p Product) CategoryName() string {
	if p.Category == nil {
		return "N/A"
	}
	return p.Category.Name
}

// InventoryValue is stock times unit price.
func (p Product) InventoryValue() float64 {
	return float64(p.Stock) * p.Price
}

// LowStock filters products under the given stock threshold.
func LowStock(products []Product, threshold int) []Product {
	low := make([]Product, 0)
	for _, p := range products {
		if p.Stock < threshold {
			low = append(low, p)
		}
	}
	return low
}

// TotalInventoryValue sums stock value across the catalog.
func TotalInventoryValue(products []Product) float64 {
	var sum float64
	for _, p := range products {
		sum += p.InventoryValue()
	}
	return sum
}
