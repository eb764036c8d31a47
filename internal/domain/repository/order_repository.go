package repository

import "github.com/flowgrid/flowgrid-api/internal/domain/entity"

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	Status     string
	CustomerID string
}

// OrderRepository define el puerto de persistencia para Order (cabecera,
// líneas y factura embebida).
type OrderRepository interface {
	// Create persiste la cabecera (incluida la factura) y todas las líneas.
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(filter OrderFilter, limit, offset int) ([]*entity.Order, int, error)
	// UpdateStatus cambia el estado de entrega y opcionalmente la fecha de entrega.
	UpdateStatus(order *entity.Order) error
	// UpdateInvoice cambia el estado de cobro de la factura embebida.
	UpdateInvoice(order *entity.Order) error
}
