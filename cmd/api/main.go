package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/flowgrid/flowgrid-api/internal/application/analytics"
	"github.com/flowgrid/flowgrid-api/internal/application/auth"
	"github.com/flowgrid/flowgrid-api/internal/application/hr"
	"github.com/flowgrid/flowgrid-api/internal/application/sales"
	"github.com/flowgrid/flowgrid-api/internal/application/usecase"
	infrapdf "github.com/flowgrid/flowgrid-api/internal/infrastructure/pdf"
	"github.com/flowgrid/flowgrid-api/internal/infrastructure/postgres"
	httpRouter "github.com/flowgrid/flowgrid-api/internal/interfaces/http"
	"github.com/flowgrid/flowgrid-api/pkg/config"
	"github.com/flowgrid/flowgrid-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	counterRepo := postgres.NewCounterRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	orderUC := sales.NewOrderUseCase(txRunner, orderRepo, customerRepo, userRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	pdfUC := sales.NewPDFUseCase(orderRepo, pdfGenerator)

	employeeUC := hr.NewEmployeeUseCase(employeeRepo, userRepo, counterRepo)
	payrollUC := hr.NewPayrollUseCase(employeeRepo, hr.Rates{
		Tax:       cfg.Payroll.TaxRate,
		Insurance: cfg.Payroll.InsuranceRate,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, productRepo, orderRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		OrderUC:     orderUC,
		PDFUC:       pdfUC,
		EmployeeUC:  employeeUC,
		PayrollUC:   payrollUC,
		DashboardUC: dashboardUC,
		Pool:        pool,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
