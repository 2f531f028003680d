package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero. Suma los totales
// congelados en las ventas: el dashboard refleja los costos al momento de
// vender, no los vigentes.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// KPIs agrega ventas, costos, ganancia y pedidos de hoy y del mes corriente.
// Usa COALESCE para devolver ceros en períodos sin ventas.
func (r *AnalyticsRepo) KPIs(userID string, now time.Time) (*entity.DashboardKPIs, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	const query = `
	SELECT
	    COALESCE(SUM(total_income) FILTER (WHERE sale_date >= $2), 0) AS sales_today,
	    COALESCE(SUM(total_income),                                0) AS sales_month,
	    COALESCE(SUM(profit)       FILTER (WHERE sale_date >= $2), 0) AS profit_today,
	    COALESCE(SUM(profit),                                      0) AS profit_month,
	    COALESCE(SUM(total_cost)   FILTER (WHERE sale_date >= $2), 0) AS costs_today,
	    COALESCE(SUM(total_cost),                                  0) AS costs_month,
	    COALESCE(AVG(profit_margin),                               0) AS profit_margin_avg,
	    COUNT(*)                   FILTER (WHERE sale_date >= $2)     AS orders_today,
	    COUNT(*)                                                      AS orders_month
	FROM ventas
	WHERE user_id = $1 AND sale_date >= $3 AND sale_date < $4`

	var k entity.DashboardKPIs
	err := r.pool.QueryRow(context.Background(), query,
		userID, dayStart, monthStart, monthStart.AddDate(0, 1, 0),
	).Scan(
		&k.SalesToday, &k.SalesMonth,
		&k.ProfitToday, &k.ProfitMonth,
		&k.CostsToday, &k.CostsMonth,
		&k.ProfitMarginAvg,
		&k.OrdersToday, &k.OrdersMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.KPIs: %w", err)
	}
	return &k, nil
}

// BestSellers agrupa ventas por producto en el rango y ordena por unidades.
// Agrupa por el nombre snapshot, así los productos eliminados siguen apareciendo.
func (r *AnalyticsRepo) BestSellers(userID string, from, to time.Time, limit int) ([]entity.BestSeller, error) {
	const query = `
	SELECT
	    COALESCE(producto_id::TEXT, '') AS producto_id,
	    producto_name,
	    SUM(quantity)                   AS units_sold,
	    SUM(total_income)               AS total_revenue
	FROM ventas
	WHERE user_id = $1 AND sale_date BETWEEN $2 AND $3
	GROUP BY producto_id, producto_name
	ORDER BY units_sold DESC, total_revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(context.Background(), query, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.BestSellers: %w", err)
	}
	defer rows.Close()

	var sellers []entity.BestSeller
	for rows.Next() {
		var s entity.BestSeller
		if err := rows.Scan(&s.ProductoID, &s.ProductoName, &s.UnitsSold, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("analytics.BestSellers scan: %w", err)
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

// ProfitTrend devuelve la serie diaria de ingresos, costos y ganancia del rango.
// Los días sin ventas no generan punto.
func (r *AnalyticsRepo) ProfitTrend(userID string, from, to time.Time) ([]entity.ProfitTrendPoint, error) {
	const query = `
	SELECT
	    date_trunc('day', sale_date) AS day,
	    SUM(total_income)            AS income,
	    SUM(total_cost)              AS costs,
	    SUM(profit)                  AS profit
	FROM ventas
	WHERE user_id = $1 AND sale_date BETWEEN $2 AND $3
	GROUP BY day
	ORDER BY day ASC`

	rows, err := r.pool.Query(context.Background(), query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProfitTrend: %w", err)
	}
	defer rows.Close()

	var points []entity.ProfitTrendPoint
	for rows.Next() {
		var p entity.ProfitTrendPoint
		if err := rows.Scan(&p.Date, &p.Income, &p.Costs, &p.Profit); err != nil {
			return nil, fmt.Errorf("analytics.ProfitTrend scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
