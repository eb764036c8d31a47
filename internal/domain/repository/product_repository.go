package repository

import "github.com/flowgrid/flowgrid-api/internal/domain/entity"

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search   string // match parcial sobre nombre o SKU
	Category string
	Status   string
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx
	// para que dos pedidos concurrentes no pasen ambos la verificación de stock.
	GetForUpdate(id string) (*entity.Product, error)
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	ListLowStock() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock persiste solo stock y status (camino caliente del pedido).
	UpdateStock(id string, stock int, status string) error
	Delete(id string) error
}
