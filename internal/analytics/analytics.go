// Package analytics reads the flattened order-line view from the secondary
// reporting source and computes the dashboard aggregates. That source is
// independent of the primary backend; its records never feed back into the
// order flow.
package analytics

import (
	"sort"
	"time"
)

// Record is one flattened order line as the reporting view exposes it.
type Record struct {
	ProductID    int     `json:"id_producto"`
	ProductName  string  `json:"nombre_producto"`
	CustomerID   int     `json:"id_cliente"`
	CustomerName string  `json:"nombre_cliente"`
	UnitPrice    float64 `json:"precio_unitario"`
	Quantity     int     `json:"cantidad"`
	Date         string  `json:"fecha"`
	Status       string  `json:"estado"`
}

func (r Record) Amount() float64 {
	return r.UnitPrice * float64(r.Quantity)
}

func (r Record) Time() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

type ProductSales struct {
	ProductID int    `json:"id_producto"`
	Name      string `json:"nombre_producto"`
	Units     int    `json:"unidades"`
}

// Summary is the set of display aggregates the dashboard shows.
type Summary struct {
	TotalSales      float64        `json:"totalVentas"`
	Records         int            `json:"registros"`
	OrdersToday     int            `json:"pedidosHoy"`
	UniqueCustomers int            `json:"clientesUnicos"`
	ByStatus        map[string]int `json:"porEstado"`
	TopProducts     []ProductSales `json:"productosVendidos"`
}

// Summarize computes every dashboard aggregate in one pass over the
// records. "Today" is judged against now's calendar date.
func Summarize(records []Record, now time.Time) Summary {
	s := Summary{
		Records:  len(records),
		ByStatus: make(map[string]int),
	}
	customers := make(map[int]struct{})
	byProduct := make(map[int]*ProductSales)

	y, m, d := now.Date()
	for _, r := range records {
		s.TotalSales += r.Amount()
		customers[r.CustomerID] = struct{}{}
		s.ByStatus[r.Status]++

		ry, rm, rd := r.Time().Date()
		if ry == y && rm == m && rd == d {
			s.OrdersToday++
		}

		if ps, ok := byProduct[r.ProductID]; ok {
			ps.Units += r.Quantity
		} else {
			byProduct[r.ProductID] = &ProductSales{ProductID: r.ProductID, Name: r.ProductName, Units: r.Quantity}
		}
	}
	s.UniqueCustomers = len(customers)

	s.TopProducts = make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		s.TopProducts = append(s.TopProducts, *ps)
	}
	sort.Slice(s.TopProducts, func(i, j int) bool {
		if s.TopProducts[i].Units != s.TopProducts[j].Units {
			return s.TopProducts[i].Units > s.TopProducts[j].Units
		}
		return s.TopProducts[i].ProductID < s.TopProducts[j].ProductID
	})
	return s
}

// SortByDateDesc orders records newest first, the way every listing shows
// them.
func SortByDateDesc(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time().After(records[j].Time())
	})
}
