// Package report builds the exportable back-office documents: a dashboard
// summary, the full order listing and the inventory listing, one workbook
// each with the same layout the storefront shows on screen.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/hydrosys/storefront/internal/order"
	"github.com/hydrosys/storefront/internal/product"
)

type Kind string

const (
	KindDashboard Kind = "Dashboard"
	KindOrders    Kind = "Pedidos"
	KindInventory Kind = "Inventario"
)

const lowStockThreshold = 10

// Filename embeds the report type and the generation date.
func Filename(kind Kind, now time.Time) string {
	return fmt.Sprintf("HydroSyS_%s_%s.xlsx", kind, now.Format("2006-01-02"))
}

// Dashboard renders the executive summary, the ten most recent orders and,
// when there are any, a page of low-stock products.
func Dashboard(orders []order.Order, products []product.Product, now time.Time) (*xlsx.File, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Resumen")
	if err != nil {
		return nil, err
	}
	lowStock := product.LowStock(products, lowStockThreshold)
	addRow(summary, "Métrica", "Valor")
	addRow(summary, "Total de Ventas", money(totalSales(orders)))
	addRow(summary, "Total de Pedidos", len(orders))
	addRow(summary, "Pedidos Hoy", ordersToday(orders, now))
	addRow(summary, "Productos en Inventario", len(products))
	addRow(summary, "Productos con Stock Bajo", len(lowStock))

	recent, err := file.AddSheet("Pedidos Recientes")
	if err != nil {
		return nil, err
	}
	addRow(recent, "ID", "Cliente", "Fecha", "Estado", "Total")
	for _, o := range recentOrders(orders, 10) {
		addRow(recent, o.ID, o.CustomerName(), formatDate(o.PlacedTime()), o.Status, money(o.TotalAmount()))
	}

	if len(lowStock) > 0 {
		sheet, err := file.AddSheet("Stock Bajo")
		if err != nil {
			return nil, err
		}
		addRow(sheet, "ID", "Producto", "Categoría", "Stock", "Precio")
		for _, p := range lowStock {
			addRow(sheet, p.ID, p.Name, p.CategoryName(), p.Stock, money(p.Price))
		}
	}
	return file, nil
}

// Orders renders the full order listing plus the financial summary.
func Orders(orders []order.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Pedidos")
	if err != nil {
		return nil, err
	}
	addRow(sheet, "ID", "Cliente", "Fecha", "Estado", "Dirección", "Total")
	for _, o := range orders {
		addRow(sheet, o.ID, o.CustomerName(), formatDate(o.PlacedTime()), o.Status, o.ShippingAddress, money(o.TotalAmount()))
	}

	total := totalSales(orders)
	average := 0.0
	if len(orders) > 0 {
		average = total / float64(len(orders))
	}
	summary, err := file.AddSheet("Resumen Financiero")
	if err != nil {
		return nil, err
	}
	addRow(summary, "Concepto", "Valor")
	addRow(summary, "Total de Pedidos", len(orders))
	addRow(summary, "Total de Ventas", money(total))
	addRow(summary, "Promedio por Pedido", money(average))
	return file, nil
}

// Inventory renders the catalog listing plus the stock summary.
func Inventory(products []product.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Inventario")
	if err != nil {
		return nil, err
	}
	addRow(sheet, "ID", "Producto", "Categoría", "Stock", "Precio Unit.", "Valor Total")
	for _, p := range products {
		addRow(sheet, p.ID, p.Name, p.CategoryName(), p.Stock, money(p.Price), money(p.InventoryValue()))
	}

	outOfStock := 0
	for _, p := range products {
		if p.Stock == 0 {
			outOfStock++
		}
	}
	summary, err := file.AddSheet("Resumen de Inventario")
	if err != nil {
		return nil, err
	}
	addRow(summary, "Concepto", "Valor")
	addRow(summary, "Total de Productos", len(products))
	addRow(summary, fmt.Sprintf("Productos con Stock Bajo (<%d)", lowStockThreshold), len(product.LowStock(products, lowStockThreshold)))
	addRow(summary, "Productos Agotados", outOfStock)
	addRow(summary, "Valor Total del Inventario", money(product.TotalInventoryValue(products)))
	return file, nil
}

func addRow(sheet *xlsx.Sheet, values ...interface{}) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetValue(v)
	}
}

func totalSales(orders []order.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.TotalAmount()
	}
	return sum
}

func ordersToday(orders []order.Order, now time.Time) int {
	y, m, d := now.Date()
	count := 0
	for _, o := range orders {
		oy, om, od := o.PlacedTime().Date()
		if oy == y && om == m && od == d {
			count++
		}
	}
	return count
}

func recentOrders(orders []order.Order, n int) []order.Order {
	sorted := make([]order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlacedTime().After(sorted[j].PlacedTime())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006 15:04")
}

func money(v float64) string {
	return "$" + fmt.Sprintf("%.0f", v)
}
