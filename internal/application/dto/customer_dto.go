package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressDTO dirección postal embebida.
type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string     `json:"name" validate:"required"`
	Email   string     `json:"email" validate:"required,email"`
	Phone   string     `json:"phone" validate:"required"`
	Status  string     `json:"status"`  // por defecto active
	Segment string     `json:"segment"` // por defecto SMB
	Company string     `json:"company"`
	Address AddressDTO `json:"address"`
	Notes   string     `json:"notes"`
}

// UpdateCustomerRequest entrada para actualizar un cliente.
// Los acumulados totalOrders/totalValue no son editables por API.
type UpdateCustomerRequest struct {
	Name    *string     `json:"name"`
	Email   *string     `json:"email"`
	Phone   *string     `json:"phone"`
	Status  *string     `json:"status"`
	Segment *string     `json:"segment"`
	Company *string     `json:"company"`
	Address *AddressDTO `json:"address"`
	Notes   *string     `json:"notes"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Status      string          `json:"status"`
	Company     string          `json:"company"`
	Segment     string          `json:"segment"`
	Address     AddressDTO      `json:"address"`
	TotalOrders int             `json:"totalOrders"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	LastContact *time.Time      `json:"lastContact,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CompanyNameResponse par id/empresa para la página de registro.
type CompanyNameResponse struct {
	ID      string `json:"id"`
	Company string `json:"company"`
}

// CustomerListQuery filtros del listado.
type CustomerListQuery struct {
	PageRequest
	Search  string `query:"search"`
	Status  string `query:"status"`
	Segment string `query:"segment"`
}
