package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/costeo-api/internal/application/analytics"
	"github.com/jmcastano/costeo-api/internal/application/auth"
	"github.com/jmcastano/costeo-api/internal/application/inventory"
	"github.com/jmcastano/costeo-api/internal/application/production"
	"github.com/jmcastano/costeo-api/internal/application/sales"
	"github.com/jmcastano/costeo-api/internal/application/usecase"
	"github.com/jmcastano/costeo-api/internal/infrastructure/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InsumoUC    *usecase.InsumoUseCase
	LoteUC      *inventory.LoteUseCase
	ProductoUC  *usecase.ProductoUseCase
	ProduceUC   *production.ProduceUseCase
	VentaUC     *sales.VentaUseCase
	CostoFijoUC *usecase.CostoFijoUseCase
	DashboardUC *analytics.DashboardUseCase
	Excel       *reports.ExcelExporter
	PDF         *reports.PDFReportGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Insumos y su libro de lotes (protegido)
	insumos := protected.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoUC)
	loteHandler := NewLoteHandler(deps.LoteUC)
	insumos.Post("/", insumoHandler.Create)
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Put("/:id", insumoHandler.Update)
	insumos.Delete("/:id", insumoHandler.Delete)
	insumos.Post("/:id/lotes", loteHandler.RecordPurchase)
	insumos.Get("/:id/lotes", loteHandler.ListAvailable)
	insumos.Get("/:id/price-history", loteHandler.PriceHistory)
	protected.Delete("/lotes/:id", loteHandler.Delete)

	// Productos, receta y producción (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productionHandler := NewProductionHandler(deps.ProduceUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)
	productos.Put("/:id/stock", productoHandler.AdjustStock)
	productos.Post("/:id/produce", productionHandler.Produce)
	protected.Get("/production-history", productionHandler.History)

	// Ventas (protegido)
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventas.Post("/", ventaHandler.Create)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Put("/:id", ventaHandler.Update)
	ventas.Delete("/:id", ventaHandler.Delete)

	// Costos fijos (protegido)
	costos := protected.Group("/costos-fijos")
	costoFijoHandler := NewCostoFijoHandler(deps.CostoFijoUC)
	costos.Get("/monthly-total", costoFijoHandler.MonthlyTotal)
	costos.Post("/", costoFijoHandler.Create)
	costos.Get("/", costoFijoHandler.List)
	costos.Put("/:id", costoFijoHandler.Update)
	costos.Delete("/:id", costoFijoHandler.Delete)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/kpis", dashboardHandler.KPIs)
	dashboard.Get("/best-sellers", dashboardHandler.BestSellers)
	dashboard.Get("/profit-trend", dashboardHandler.ProfitTrend)

	// Reportes descargables (protegido)
	reportsGroup := protected.Group("/reports")
	reportsHandler := NewReportsHandler(deps.VentaUC, deps.AuthUC, deps.Excel, deps.PDF)
	reportsGroup.Get("/ventas.xlsx", reportsHandler.VentasExcel)
	reportsGroup.Get("/ventas.pdf", reportsHandler.VentasPDF)
}
