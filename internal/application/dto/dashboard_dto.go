package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricValue valor puntual de una métrica del panel.
type MetricValue struct {
	Value decimal.Decimal `json:"value"`
}

// MetricWithChange métrica con variación porcentual contra el mes anterior.
type MetricWithChange struct {
	Value  decimal.Decimal `json:"value"`
	Change decimal.Decimal `json:"change"`
}

// CountMetric métrica de conteo simple.
type CountMetric struct {
	Value int64 `json:"value"`
}

// DashboardMetrics métricas principales del panel.
type DashboardMetrics struct {
	TotalRevenue   MetricWithChange `json:"totalRevenue"`
	ActiveOrders   CountMetric      `json:"activeOrders"`
	InventoryValue MetricValue      `json:"inventoryValue"`
	TotalEmployees CountMetric      `json:"totalEmployees"`
}

// LowStockItem producto bajo el umbral de reposición.
type LowStockItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}

// RecentOrder pedido reciente para el panel.
type RecentOrder struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"orderDate"`
}

// MonthlyRevenuePoint punto de la serie mensual de ingresos.
type MonthlyRevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardStatsResponse carga completa del panel principal.
type DashboardStatsResponse struct {
	Metrics        DashboardMetrics      `json:"metrics"`
	LowStockItems  []LowStockItem        `json:"lowStockItems"`
	RecentOrders   []RecentOrder         `json:"recentOrders"`
	MonthlyRevenue []MonthlyRevenuePoint `json:"monthlyRevenue"`
}

// StatusCount cantidad y monto de pedidos por estado.
type StatusCount struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// TopCustomer cliente ordenado por valor acumulado.
type TopCustomer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Company    string          `json:"company"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// TopProduct producto ordenado por ingresos en el rango consultado.
type TopProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DepartmentStat agregado de empleados y masa salarial por departamento.
type DepartmentStat struct {
	Department  string          `json:"department"`
	Employees   int64           `json:"employees"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
}

// AnalyticsQuery rango opcional para los reportes.
type AnalyticsQuery struct {
	StartDate *time.Time `query:"startDate"`
	EndDate   *time.Time `query:"endDate"`
}

// AnalyticsResponse reportes de negocio agregados.
type AnalyticsResponse struct {
	OrdersByStatus  []StatusCount    `json:"ordersByStatus"`
	TopCustomers    []TopCustomer    `json:"topCustomers"`
	TopProducts     []TopProduct     `json:"topProducts"`
	DepartmentStats []DepartmentStat `json:"departmentStats"`
}
