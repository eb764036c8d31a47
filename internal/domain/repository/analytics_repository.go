package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
)

// MonthRevenueResult fila de la serie mensual de ingresos.
// Lo produce la DB; el use case lo convierte en DTO.
type MonthRevenueResult struct {
	Year    int
	Month   int
	Revenue decimal.Decimal
	Orders  int
}

// StatusCountResult agrupación de pedidos por estado.
type StatusCountResult struct {
	Status string
	Count  int
	Total  decimal.Decimal
}

// ProductRevenueResult agrupación de líneas de pedido por producto.
type ProductRevenueResult struct {
	ProductID     string
	ProductSKU    string
	ProductName   string
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

// DepartmentStatResult plantilla y masa salarial por departamento (solo activos).
type DepartmentStatResult struct {
	Department  string
	Count       int
	TotalSalary decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard y los
// reportes. Sin componente de máquina de estados: todo son agregaciones.
type AnalyticsRepository interface {
	// RevenueBetween suma los totales de pedidos no cancelados del rango.
	RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// CountActiveOrders cuenta pedidos en pending|processing|shipped.
	CountActiveOrders(ctx context.Context) (int, error)
	// InventoryValue suma price*stock de los productos no inactivos.
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	CountActiveEmployees(ctx context.Context) (int, error)
	// MonthlyRevenue serie (año, mes) → ingresos de pedidos no cancelados desde `since`.
	MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthRevenueResult, error)
	// OrdersByStatus agrupa pedidos por estado; start/end en nil = sin filtro de fechas.
	OrdersByStatus(ctx context.Context, start, end *time.Time) ([]StatusCountResult, error)
	TopCustomers(ctx context.Context, limit int) ([]*entity.Customer, error)
	TopProducts(ctx context.Context, start, end *time.Time, limit int) ([]ProductRevenueResult, error)
	DepartmentStats(ctx context.Context) ([]DepartmentStatResult, error)
}
