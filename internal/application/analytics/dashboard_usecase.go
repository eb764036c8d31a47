package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

const (
	lowStockLimit    = 10
	recentOrderLimit = 10
	topLimit         = 10
	revenueMonths    = 6
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase arma la carga del panel principal. Las consultas son
// independientes entre sí y se ejecutan en paralelo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
	}
}

// GetStats calcula las métricas del panel: ingresos del mes con variación
// contra el mes anterior (0 si el mes anterior fue 0), pedidos activos, valor
// de inventario, plantilla activa, productos bajos de stock, pedidos
// recientes y la serie de ingresos de los últimos 6 meses.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	seriesStart := monthStart.AddDate(0, -(revenueMonths - 1), 0)

	type revenueResult struct {
		current, previous decimal.Decimal
		err               error
	}
	type countsResult struct {
		activeOrders, employees int
		inventoryValue          decimal.Decimal
		err                     error
	}
	type seriesResult struct {
		rows []repository.MonthRevenueResult
		err  error
	}
	type lowStockResult struct {
		products []dto.LowStockItem
		err      error
	}
	type recentResult struct {
		orders []dto.RecentOrder
		err    error
	}

	revCh := make(chan revenueResult, 1)
	cntCh := make(chan countsResult, 1)
	serCh := make(chan seriesResult, 1)
	lowCh := make(chan lowStockResult, 1)
	recCh := make(chan recentResult, 1)

	go func() {
		current, err := uc.analyticsRepo.RevenueBetween(ctx, monthStart, now)
		if err != nil {
			revCh <- revenueResult{err: err}
			return
		}
		previous, err := uc.analyticsRepo.RevenueBetween(ctx, prevMonthStart, monthStart)
		revCh <- revenueResult{current: current, previous: previous, err: err}
	}()
	go func() {
		var r countsResult
		r.activeOrders, r.err = uc.analyticsRepo.CountActiveOrders(ctx)
		if r.err == nil {
			r.inventoryValue, r.err = uc.analyticsRepo.InventoryValue(ctx)
		}
		if r.err == nil {
			r.employees, r.err = uc.analyticsRepo.CountActiveEmployees(ctx)
		}
		cntCh <- r
	}()
	go func() {
		rows, err := uc.analyticsRepo.MonthlyRevenue(ctx, seriesStart)
		serCh <- seriesResult{rows: rows, err: err}
	}()
	go func() {
		products, err := uc.productRepo.ListLowStock()
		if err != nil {
			lowCh <- lowStockResult{err: err}
			return
		}
		if len(products) > lowStockLimit {
			products = products[:lowStockLimit]
		}
		items := make([]dto.LowStockItem, 0, len(products))
		for _, p := range products {
			items = append(items, dto.LowStockItem{ID: p.ID, Name: p.Name, SKU: p.SKU, Stock: p.Stock})
		}
		lowCh <- lowStockResult{products: items}
	}()
	go func() {
		orders, _, err := uc.orderRepo.List(repository.OrderFilter{}, recentOrderLimit, 0)
		if err != nil {
			recCh <- recentResult{err: err}
			return
		}
		items := make([]dto.RecentOrder, 0, len(orders))
		for _, o := range orders {
			items = append(items, dto.RecentOrder{
				ID:           o.ID,
				OrderNumber:  o.OrderNumber,
				CustomerName: o.CustomerName,
				Total:        o.Total,
				Status:       o.Status,
				OrderDate:    o.OrderDate,
			})
		}
		recCh <- recentResult{orders: items}
	}()

	rev := <-revCh
	cnt := <-cntCh
	ser := <-serCh
	low := <-lowCh
	rec := <-recCh

	if rev.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos: %w", rev.err)
	}
	if cnt.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", cnt.err)
	}
	if ser.err != nil {
		return nil, fmt.Errorf("dashboard: serie mensual: %w", ser.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if rec.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos recientes: %w", rec.err)
	}

	// variación % contra el mes anterior; 0 cuando no hay línea base
	change := decimal.Zero
	if rev.previous.IsPositive() {
		change = rev.current.Sub(rev.previous).Div(rev.previous).Mul(hundred).Round(2)
	}

	series := make([]dto.MonthlyRevenuePoint, 0, len(ser.rows))
	for _, r := range ser.rows {
		month := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
		series = append(series, dto.MonthlyRevenuePoint{
			Month:   month.Format("Jan 2006"),
			Revenue: r.Revenue.Round(2),
		})
	}

	return &dto.DashboardStatsResponse{
		Metrics: dto.DashboardMetrics{
			TotalRevenue:   dto.MetricWithChange{Value: rev.current.Round(2), Change: change},
			ActiveOrders:   dto.CountMetric{Value: int64(cnt.activeOrders)},
			InventoryValue: dto.MetricValue{Value: cnt.inventoryValue.Round(2)},
			TotalEmployees: dto.CountMetric{Value: int64(cnt.employees)},
		},
		LowStockItems:  low.products,
		RecentOrders:   rec.orders,
		MonthlyRevenue: series,
	}, nil
}

// GetAnalytics arma los reportes de negocio para un rango opcional de fechas.
func (uc *DashboardUseCase) GetAnalytics(ctx context.Context, q dto.AnalyticsQuery) (*dto.AnalyticsResponse, error) {
	type statusResult struct {
		rows []repository.StatusCountResult
		err  error
	}
	type customersResult struct {
		rows []dto.TopCustomer
		err  error
	}
	type productsResult struct {
		rows []repository.ProductRevenueResult
		err  error
	}
	type deptResult struct {
		rows []repository.DepartmentStatResult
		err  error
	}

	stCh := make(chan statusResult, 1)
	cuCh := make(chan customersResult, 1)
	prCh := make(chan productsResult, 1)
	deCh := make(chan deptResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.OrdersByStatus(ctx, q.StartDate, q.EndDate)
		stCh <- statusResult{rows: rows, err: err}
	}()
	go func() {
		customers, err := uc.analyticsRepo.TopCustomers(ctx, topLimit)
		if err != nil {
			cuCh <- customersResult{err: err}
			return
		}
		rows := make([]dto.TopCustomer, 0, len(customers))
		for _, c := range customers {
			rows = append(rows, dto.TopCustomer{
				ID:         c.ID,
				Name:       c.Name,
				Company:    c.Company,
				TotalValue: c.TotalValue,
			})
		}
		cuCh <- customersResult{rows: rows}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopProducts(ctx, q.StartDate, q.EndDate, topLimit)
		prCh <- productsResult{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.DepartmentStats(ctx)
		deCh <- deptResult{rows: rows, err: err}
	}()

	st := <-stCh
	cu := <-cuCh
	pr := <-prCh
	de := <-deCh

	if st.err != nil {
		return nil, fmt.Errorf("analytics: pedidos por estado: %w", st.err)
	}
	if cu.err != nil {
		return nil, fmt.Errorf("analytics: top clientes: %w", cu.err)
	}
	if pr.err != nil {
		return nil, fmt.Errorf("analytics: top productos: %w", pr.err)
	}
	if de.err != nil {
		return nil, fmt.Errorf("analytics: departamentos: %w", de.err)
	}

	byStatus := make([]dto.StatusCount, 0, len(st.rows))
	for _, r := range st.rows {
		byStatus = append(byStatus, dto.StatusCount{Status: r.Status, Count: r.Count, Total: r.Total.Round(2)})
	}
	topProducts := make([]dto.TopProduct, 0, len(pr.rows))
	for _, r := range pr.rows {
		topProducts = append(topProducts, dto.TopProduct{
			ID:       r.ProductID,
			Name:     r.ProductName,
			SKU:      r.ProductSKU,
			Quantity: r.TotalQuantity,
			Revenue:  r.TotalRevenue.Round(2),
		})
	}
	deptStats := make([]dto.DepartmentStat, 0, len(de.rows))
	for _, r := range de.rows {
		deptStats = append(deptStats, dto.DepartmentStat{
			Department:  r.Department,
			Employees:   int64(r.Count),
			TotalSalary: r.TotalSalary.Round(2),
		})
	}

	return &dto.AnalyticsResponse{
		OrdersByStatus:  byStatus,
		TopCustomers:    cu.rows,
		TopProducts:     topProducts,
		DepartmentStats: deptStats,
	}, nil
}
