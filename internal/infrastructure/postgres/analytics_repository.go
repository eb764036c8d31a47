package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y los reportes.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// RevenueBetween suma los totales de pedidos no cancelados del rango [start, end).
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0)
	FROM orders
	WHERE status <> 'cancelled' AND order_date >= $1 AND order_date < $2`

	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.RevenueBetween: %w", err)
	}
	return revenue, nil
}

// CountActiveOrders cuenta pedidos en curso (pending, processing, shipped).
func (r *AnalyticsRepo) CountActiveOrders(ctx context.Context) (int, error) {
	const query = `
	SELECT COUNT(*) FROM orders WHERE status IN ('pending', 'processing', 'shipped')`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.CountActiveOrders: %w", err)
	}
	return count, nil
}

// InventoryValue suma price*stock de los productos no inactivos.
func (r *AnalyticsRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(price * stock), 0) FROM products WHERE status <> 'inactive'`

	var value decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.InventoryValue: %w", err)
	}
	return value, nil
}

// CountActiveEmployees cuenta empleados con status active.
func (r *AnalyticsRepo) CountActiveEmployees(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = $1`,
		entity.EmployeeStatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountActiveEmployees: %w", err)
	}
	return count, nil
}

// MonthlyRevenue agrupa ingresos de pedidos no cancelados por (año, mes) desde `since`.
func (r *AnalyticsRepo) MonthlyRevenue(ctx context.Context, since time.Time) ([]repository.MonthRevenueResult, error) {
	const query = `
	SELECT
	    EXTRACT(YEAR FROM order_date)::INT   AS year,
	    EXTRACT(MONTH FROM order_date)::INT  AS month,
	    COALESCE(SUM(total), 0)              AS revenue,
	    COUNT(*)                             AS orders
	FROM orders
	WHERE status <> 'cancelled' AND order_date >= $1
	GROUP BY 1, 2
	ORDER BY 1, 2`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthRevenueResult
	for rows.Next() {
		var row repository.MonthRevenueResult
		if err := rows.Scan(&row.Year, &row.Month, &row.Revenue, &row.Orders); err != nil {
			return nil, fmt.Errorf("analytics.MonthlyRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// OrdersByStatus agrupa pedidos por estado; start/end en nil = sin filtro de fechas.
func (r *AnalyticsRepo) OrdersByStatus(ctx context.Context, start, end *time.Time) ([]repository.StatusCountResult, error) {
	query := `
	SELECT status, COUNT(*), COALESCE(SUM(total), 0)
	FROM orders WHERE 1=1`
	args := []any{}
	i := 1
	if start != nil {
		query += fmt.Sprintf(` AND order_date >= $%d`, i)
		args = append(args, *start)
		i++
	}
	if end != nil {
		query += fmt.Sprintf(` AND order_date <= $%d`, i)
		args = append(args, *end)
		i++
	}
	query += ` GROUP BY status ORDER BY status`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.OrdersByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCountResult
	for rows.Next() {
		var row repository.StatusCountResult
		if err := rows.Scan(&row.Status, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.OrdersByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopCustomers lista clientes ordenados por valor acumulado descendente.
func (r *AnalyticsRepo) TopCustomers(ctx context.Context, limit int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + `
	FROM customers ORDER BY total_value DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopCustomers: %w", err)
	}
	defer rows.Close()

	var results []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.TopCustomers scan: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// TopProducts agrupa líneas de pedidos no cancelados por producto y ordena
// por ingresos descendente. start/end en nil = sin filtro de fechas.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, start, end *time.Time, limit int) ([]repository.ProductRevenueResult, error) {
	query := `
	SELECT
	    oi.product_id,
	    oi.product_sku,
	    oi.product_name,
	    SUM(oi.quantity)   AS total_quantity,
	    SUM(oi.line_total) AS total_revenue
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE o.status <> 'cancelled'`
	args := []any{}
	i := 1
	if start != nil {
		query += fmt.Sprintf(` AND o.order_date >= $%d`, i)
		args = append(args, *start)
		i++
	}
	if end != nil {
		query += fmt.Sprintf(` AND o.order_date <= $%d`, i)
		args = append(args, *end)
		i++
	}
	query += fmt.Sprintf(`
	GROUP BY oi.product_id, oi.product_sku, oi.product_name
	ORDER BY total_revenue DESC
	LIMIT $%d`, i)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductRevenueResult
	for rows.Next() {
		var row repository.ProductRevenueResult
		if err := rows.Scan(&row.ProductID, &row.ProductSKU, &row.ProductName,
			&row.TotalQuantity, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DepartmentStats agrupa plantilla y masa salarial por departamento (solo activos).
func (r *AnalyticsRepo) DepartmentStats(ctx context.Context) ([]repository.DepartmentStatResult, error) {
	const query = `
	SELECT department, COUNT(*), COALESCE(SUM(base_salary), 0)
	FROM employees
	WHERE status = 'active'
	GROUP BY department
	ORDER BY department`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.DepartmentStats: %w", err)
	}
	defer rows.Close()

	var results []repository.DepartmentStatResult
	for rows.Next() {
		var row repository.DepartmentStatResult
		if err := rows.Scan(&row.Department, &row.Count, &row.TotalSalary); err != nil {
			return nil, fmt.Errorf("analytics.DepartmentStats scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
