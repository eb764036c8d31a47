package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Search  string // match parcial sobre nombre, email o empresa
	Status  string
	Segment string
}

// CompanyName par id/empresa para el endpoint público de registro.
type CompanyName struct {
	ID      string
	Company string
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	List(filter CustomerFilter, limit, offset int) ([]*entity.Customer, int, error)
	// ListCompanyNames nombres de empresa de clientes active|premium, ordenados.
	ListCompanyNames() ([]CompanyName, error)
	Update(customer *entity.Customer) error
	// ApplyOrderStats suma un pedido a los acumulados del cliente
	// (totalOrders+1, totalValue+orderTotal, lastContact=now).
	ApplyOrderStats(id string, orderTotal decimal.Decimal, lastContact time.Time) error
	Delete(id string) error
}
