package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/costeo-api/internal/application/analytics"
)

// DashboardHandler maneja las métricas del tablero (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// KPIs godoc
// @Summary      KPIs del día y del mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardKPIsResponse
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.KPIs(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BestSellers godoc
// @Summary      Productos más vendidos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days   query  int  false  "Rango en días"  default(30)
// @Param        limit  query  int  false  "Máximo de productos"  default(5)
// @Success      200  {array}  dto.BestSellerResponse
// @Router       /api/dashboard/best-sellers [get]
func (h *DashboardHandler) BestSellers(c *fiber.Ctx) error {
	out, err := h.uc.BestSellers(GetUserID(c), c.QueryInt("days", 30), c.QueryInt("limit", 5))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProfitTrend godoc
// @Summary      Serie diaria de ingresos, costos y ganancia
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Rango en días"  default(30)
// @Success      200  {array}  dto.ProfitTrendPointResponse
// @Router       /api/dashboard/profit-trend [get]
func (h *DashboardHandler) ProfitTrend(c *fiber.Ctx) error {
	out, err := h.uc.ProfitTrend(GetUserID(c), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
