package sales

import (
	"context"

	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la colocación de un pedido
// (stock, numeración, cabecera, acumulados del cliente) sea todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
		counterRepo repository.CounterRepository,
	) error) error
}

// InvoicePDFGenerator genera el PDF de la factura de un pedido.
type InvoicePDFGenerator interface {
	GenerateInvoice(order OrderPDFData) ([]byte, error)
}
