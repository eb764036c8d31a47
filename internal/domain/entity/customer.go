package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y segmentos de cliente (CRM).
const (
	CustomerStatusLead     = "lead"
	CustomerStatusActive   = "active"
	CustomerStatusPremium  = "premium"
	CustomerStatusInactive = "inactive"

	SegmentEnterprise = "Enterprise"
	SegmentSMB        = "SMB"
	SegmentStartup    = "Startup"
)

// Address dirección postal simple (se embebe en Customer, Order y Employee).
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// Customer representa un cliente. TotalOrders y TotalValue son el conteo y la
// suma de sus pedidos no cancelados; se actualizan al crear cada pedido.
type Customer struct {
	ID          string
	Name        string
	Email       string // único
	Phone       string
	Status      string // lead, active, premium, inactive
	Company     string
	Segment     string // Enterprise, SMB, Startup
	Address     Address
	TotalOrders int
	TotalValue  decimal.Decimal
	LastContact *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
