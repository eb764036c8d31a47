package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada: producto y cantidad.
// El precio NO viaja en el request; se toma del producto al crear el pedido.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest entrada para colocar un pedido.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customerId" validate:"required"`
	OrderItems      []OrderItemRequest `json:"orderItems" validate:"required,min=1"`
	ShippingAddress AddressDTO         `json:"shippingAddress"`
}

// UpdateOrderRequest cambio de estado de entrega.
type UpdateOrderRequest struct {
	Status       string     `json:"status" validate:"required"`
	DeliveryDate *time.Time `json:"deliveryDate"`
}

// UpdateInvoiceRequest cambio de estado de cobro de la factura embebida.
type UpdateInvoiceRequest struct {
	Status        string     `json:"status" validate:"required"`
	PaidDate      *time.Time `json:"paidDate"`
	PaymentMethod string     `json:"paymentMethod"`
}

// OrderItemResponse línea de pedido con el snapshot del producto.
type OrderItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductSKU  string          `json:"productSku"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse factura embebida.
type InvoiceResponse struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	DueDate       time.Time       `json:"dueDate"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// OrderResponse salida de un pedido completo.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      string              `json:"customerId"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	Status          string              `json:"status"`
	OrderDate       time.Time           `json:"orderDate"`
	DeliveryDate    *time.Time          `json:"deliveryDate,omitempty"`
	Total           decimal.Decimal     `json:"total"`
	ShippingAddress AddressDTO          `json:"shippingAddress"`
	OrderItems      []OrderItemResponse `json:"orderItems"`
	Invoice         InvoiceResponse     `json:"invoice"`
	CreatedBy       string              `json:"createdBy"`
	CreatedByName   string              `json:"createdByName"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListQuery filtros del listado.
type OrderListQuery struct {
	PageRequest
	Status     string `query:"status"`
	CustomerID string `query:"customerId"`
}
