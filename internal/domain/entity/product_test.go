package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// StatusForStock es la única fuente de la regla stock→estado; estos casos
// cubren los tres rangos y el estado inactive manual.
// ──────────────────────────────────────────────────────────────────────────────

func TestStatusForStock_Rangos(t *testing.T) {
	cases := []struct {
		name    string
		stock   int
		current string
		want    string
	}{
		{"stock cero es out_of_stock", 0, entity.ProductStatusActive, entity.ProductStatusOutOfStock},
		{"stock 1 es low_stock", 1, entity.ProductStatusActive, entity.ProductStatusLowStock},
		{"stock 9 es low_stock", 9, entity.ProductStatusActive, entity.ProductStatusLowStock},
		{"stock en el umbral es active", entity.LowStockThreshold, entity.ProductStatusLowStock, entity.ProductStatusActive},
		{"stock alto es active", 500, entity.ProductStatusOutOfStock, entity.ProductStatusActive},
		{"inactive manual se conserva con stock alto", 500, entity.ProductStatusInactive, entity.ProductStatusInactive},
		{"inactive manual se conserva con stock cero", 0, entity.ProductStatusInactive, entity.ProductStatusInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.StatusForStock(tc.stock, tc.current))
		})
	}
}

// Escenario del ciclo completo: 5 → 0 → 50 unidades.
func TestApplyStock_TransicionesDeEstado(t *testing.T) {
	p := &entity.Product{SKU: "SKU-X", Stock: 5, Status: entity.ProductStatusLowStock}

	p.ApplyStock(0)
	assert.Equal(t, entity.ProductStatusOutOfStock, p.Status, "stock 0 debe dejar el producto en out_of_stock")

	p.ApplyStock(50)
	assert.Equal(t, entity.ProductStatusActive, p.Status, "reponer stock debe reactivar el producto")
	assert.Equal(t, 50, p.Stock)
}
