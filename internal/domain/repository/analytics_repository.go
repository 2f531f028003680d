package repository

import (
	"time"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

// AnalyticsRepository define el puerto de agregaciones para el dashboard.
// Las sumas se hacen en SQL; el caso de uso solo decide los rangos.
type AnalyticsRepository interface {
	KPIs(userID string, now time.Time) (*entity.DashboardKPIs, error)
	BestSellers(userID string, from, to time.Time, limit int) ([]entity.BestSeller, error)
	ProfitTrend(userID string, from, to time.Time) ([]entity.ProfitTrendPoint, error)
}
