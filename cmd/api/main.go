package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jmcastano/costeo-api/internal/application/analytics"
	"github.com/jmcastano/costeo-api/internal/application/auth"
	"github.com/jmcastano/costeo-api/internal/application/inventory"
	"github.com/jmcastano/costeo-api/internal/application/production"
	"github.com/jmcastano/costeo-api/internal/application/sales"
	"github.com/jmcastano/costeo-api/internal/application/usecase"
	"github.com/jmcastano/costeo-api/internal/infrastructure/postgres"
	infrareports "github.com/jmcastano/costeo-api/internal/infrastructure/reports"
	httpRouter "github.com/jmcastano/costeo-api/internal/interfaces/http"
	"github.com/jmcastano/costeo-api/pkg/config"
	"github.com/jmcastano/costeo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	costoFijoRepo := postgres.NewCostoFijoRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	insumoUC := usecase.NewInsumoUseCase(insumoRepo, loteRepo)
	loteUC := inventory.NewLoteUseCase(loteRepo, insumoRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo, insumoRepo, loteRepo)
	produceUC := production.NewProduceUseCase(txRunner, productoRepo, productionRepo)
	ventaUC := sales.NewVentaUseCase(txRunner, ventaRepo, produceUC)
	costoFijoUC := usecase.NewCostoFijoUseCase(costoFijoRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costeo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InsumoUC:    insumoUC,
		LoteUC:      loteUC,
		ProductoUC:  productoUC,
		ProduceUC:   produceUC,
		VentaUC:     ventaUC,
		CostoFijoUC: costoFijoUC,
		DashboardUC: dashboardUC,
		Excel:       infrareports.NewExcelExporter(),
		PDF:         infrareports.NewPDFReportGenerator(),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
