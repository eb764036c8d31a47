package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido: progresión lineal con un único estado de escape.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Estados de factura (ciclo de cobro, independiente del de entrega).
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// orderRank posición de cada estado en la progresión lineal.
var orderRank = map[string]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusCompleted:  3,
}

// CanTransitionOrder valida el cambio de estado de un pedido: sólo se avanza
// hacia adelante en la progresión, y cancelled es alcanzable desde cualquier
// estado no terminal. Un pedido cancelado o completado no cambia más.
func CanTransitionOrder(from, to string) bool {
	if from == to {
		return true
	}
	if from == OrderStatusCancelled || from == OrderStatusCompleted {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	fromRank, okFrom := orderRank[from]
	toRank, okTo := orderRank[to]
	if !okFrom || !okTo {
		return false
	}
	return toRank > fromRank
}

// ValidInvoiceStatus indica si el estado de factura pertenece a la enumeración.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// OrderItem línea de pedido. SKU, nombre y precio se copian del producto al
// momento de crear el pedido para que cambios de precio posteriores no
// alteren pedidos históricos.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Invoice registro de cobro embebido en el pedido. No tiene ciclo de vida
// propio: se crea con el pedido y sólo muta su estado de pago.
type Invoice struct {
	InvoiceNumber string // INV-YYYY-NNNNN, único
	Amount        decimal.Decimal
	Status        string // pending, paid, overdue, cancelled
	DueDate       time.Time
	PaidDate      *time.Time
	PaymentMethod string
}

// Order representa un pedido de venta con su factura embebida.
// CustomerName y CustomerEmail son snapshots al momento de la creación.
type Order struct {
	ID              string
	OrderNumber     string // ORD-YYYY-NNNNN, único
	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	Status          string
	OrderDate       time.Time
	DeliveryDate    *time.Time
	Total           decimal.Decimal
	ShippingAddress Address
	Items           []OrderItem
	Invoice         Invoice
	CreatedBy       string // user ID
	CreatedByName   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
