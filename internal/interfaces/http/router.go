package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowgrid/flowgrid-api/internal/application/analytics"
	"github.com/flowgrid/flowgrid-api/internal/application/auth"
	"github.com/flowgrid/flowgrid-api/internal/application/hr"
	"github.com/flowgrid/flowgrid-api/internal/application/sales"
	"github.com/flowgrid/flowgrid-api/internal/application/usecase"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	OrderUC     *sales.OrderUseCase
	PDFUC       *sales.PDFUseCase
	EmployeeUC  *hr.EmployeeUseCase
	PayrollUC   *hr.PayrollUseCase
	DashboardUC *analytics.DashboardUseCase
	Pool        *pgxpool.Pool
	JWTSecret   string
	AppName     string
}

// Router registra las rutas de la API con sus permisos por rol.
func Router(app *fiber.App, deps RouterDeps) {
	// Health (público): reporta estado del servicio y de la DB.
	app.Get("/health", healthHandler(deps.Pool, deps.AppName))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", AuthMiddleware(deps.JWTSecret), authHandler.Profile)

	// Empresas de clientes (público: lo consume la página de registro)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	api.Get("/customers/companies", customerHandler.ListCompanyNames)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products: lectura para cualquier autenticado, escritura restringida.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	productsWrite := RequireRole(entity.RoleAdmin, entity.RoleInventoryManager)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productsWrite, productHandler.Create)
	products.Put("/:id", productsWrite, productHandler.Update)
	products.Delete("/:id", productsWrite, productHandler.Delete)

	// Customers: escritura para ventas, borrado sólo gerencia.
	customers := protected.Group("/customers")
	customersWrite := RequireRole(entity.RoleAdmin, entity.RoleSalesManager, entity.RoleSalesRep)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", customersWrite, customerHandler.Create)
	customers.Put("/:id", customersWrite, customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleSalesManager), customerHandler.Delete)

	// Orders: colocación para ventas, estado para gerencia, cobro para contabilidad.
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PDFUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/invoice/pdf", orderHandler.DownloadInvoicePDF)
	orders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSalesManager, entity.RoleSalesRep), orderHandler.Create)
	orders.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleSalesManager), orderHandler.UpdateStatus)
	orders.Put("/:id/invoice", RequireRole(entity.RoleAdmin, entity.RoleAccountant), orderHandler.UpdateInvoice)

	// Employees: lectura para cualquier autenticado, escritura para RRHH;
	// solicitar licencia también abierta a cualquier autenticado.
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.PayrollUC)
	hrWrite := RequireRole(entity.RoleAdmin, entity.RoleHRManager)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", hrWrite, employeeHandler.Create)
	employees.Post("/payroll/process", hrWrite, employeeHandler.ProcessPayroll)
	employees.Put("/leave/:leaveId", hrWrite, employeeHandler.UpdateLeave)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", hrWrite, employeeHandler.Update)
	employees.Post("/:id/payroll", hrWrite, employeeHandler.AddPayroll)
	employees.Post("/:id/leave", employeeHandler.AddLeave)

	// Dashboard (cualquier autenticado)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/analytics", dashboardHandler.GetAnalytics)
}

// healthHandler responde el estado del servicio; degraded si la DB no responde.
func healthHandler(pool *pgxpool.Pool, appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		dbStatus := "up"
		status := "ok"
		code := fiber.StatusOK
		if err := pool.Ping(ctx); err != nil {
			dbStatus = "down"
			status = "degraded"
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"service":  appName,
			"database": dbStatus,
		})
	}
}
