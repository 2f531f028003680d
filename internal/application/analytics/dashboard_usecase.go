// Package analytics expone las agregaciones del tablero: KPIs del día y del
// mes, productos más vendidos y la serie diaria de ganancia.
package analytics

import (
	"time"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// DashboardUseCase resuelve rangos de fecha y delega las sumas al repositorio.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// KPIs devuelve ventas, costos, ganancia y pedidos de hoy y del mes corriente.
func (uc *DashboardUseCase) KPIs(userID string) (*dto.DashboardKPIsResponse, error) {
	kpis, err := uc.repo.KPIs(userID, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.DashboardKPIsResponse{
		SalesToday:      kpis.SalesToday,
		SalesMonth:      kpis.SalesMonth,
		ProfitToday:     kpis.ProfitToday,
		ProfitMonth:     kpis.ProfitMonth,
		CostsToday:      kpis.CostsToday,
		CostsMonth:      kpis.CostsMonth,
		ProfitMarginAvg: kpis.ProfitMarginAvg,
		OrdersToday:     kpis.OrdersToday,
		OrdersMonth:     kpis.OrdersMonth,
	}, nil
}

// BestSellers devuelve los productos más vendidos en los últimos `days` días.
// Con days <= 0 usa 30; con limit <= 0 usa 5.
func (uc *DashboardUseCase) BestSellers(userID string, days, limit int) ([]dto.BestSellerResponse, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 {
		limit = 5
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	sellers, err := uc.repo.BestSellers(userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BestSellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, dto.BestSellerResponse{
			ProductoID:   s.ProductoID,
			ProductoName: s.ProductoName,
			UnitsSold:    s.UnitsSold,
			TotalRevenue: s.TotalRevenue,
		})
	}
	return out, nil
}

// ProfitTrend devuelve la serie diaria de ingresos, costos y ganancia de los
// últimos `days` días. Con days <= 0 usa 30.
func (uc *DashboardUseCase) ProfitTrend(userID string, days int) ([]dto.ProfitTrendPointResponse, error) {
	if days <= 0 {
		days = 30
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	points, err := uc.repo.ProfitTrend(userID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfitTrendPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ProfitTrendPointResponse{
			Date:   p.Date.Format("2006-01-02"),
			Income: p.Income,
			Costs:  p.Costs,
			Profit: p.Profit,
		})
	}
	return out, nil
}
