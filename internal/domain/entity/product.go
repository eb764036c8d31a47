package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto. out_of_stock y low_stock se derivan del stock;
// inactive es manual y pegajoso hasta que alguien lo cambie.
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusLowStock   = "low_stock"
	ProductStatusOutOfStock = "out_of_stock"
)

// LowStockThreshold unidades por debajo de las cuales el producto pasa a low_stock.
const LowStockThreshold = 10

// Product representa un producto o SKU del catálogo.
type Product struct {
	ID          string
	SKU         string // código único de catálogo
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int             // unidades disponibles, nunca negativo
	Status      string          // derivado de Stock salvo inactive manual
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusForStock deriva el estado a partir del stock. Es la ÚNICA fuente de
// esta regla: todo camino de mutación debe pasar por aquí.
//
//	stock == 0            -> out_of_stock
//	0 < stock < umbral    -> low_stock
//	stock >= umbral       -> active
//
// Un producto marcado inactive a mano conserva ese estado.
func StatusForStock(stock int, current string) string {
	if current == ProductStatusInactive {
		return ProductStatusInactive
	}
	switch {
	case stock == 0:
		return ProductStatusOutOfStock
	case stock < LowStockThreshold:
		return ProductStatusLowStock
	default:
		return ProductStatusActive
	}
}

// ApplyStock fija el stock y recalcula el estado.
func (p *Product) ApplyStock(stock int) {
	p.Stock = stock
	p.Status = StatusForStock(p.Stock, p.Status)
}
