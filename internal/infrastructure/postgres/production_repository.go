package postgres

import (
	"context"
	"fmt"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación del puerto ProductionRepository sobre PostgreSQL.
// La tabla es append-only: no hay Update ni Delete.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador del historial de producción.
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create inserta el registro de una corrida de producción exitosa.
func (r *ProductionRepo) Create(record *entity.ProductionRecord) error {
	query := `
		INSERT INTO production_history (id, user_id, producto_id, quantity, total_cost, cost_per_unit, production_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.UserID, record.ProductoID, record.Quantity,
		record.TotalCost, record.CostPerUnit, record.ProductionDate,
	)
	if err != nil {
		return fmt.Errorf("insert production record: %w", err)
	}
	return nil
}

// ListByProducto devuelve las corridas de un producto, de la más reciente a la más antigua.
func (r *ProductionRepo) ListByProducto(userID, productoID string, limit int) ([]*entity.ProductionRecord, error) {
	query := `
		SELECT id, user_id, producto_id, quantity, total_cost, cost_per_unit, production_date
		FROM production_history
		WHERE user_id = $1 AND producto_id = $2
		ORDER BY production_date DESC LIMIT $3`
	return r.queryRecords(query, userID, productoID, limit)
}

// ListByUser devuelve las corridas del usuario, de la más reciente a la más antigua.
func (r *ProductionRepo) ListByUser(userID string, limit int) ([]*entity.ProductionRecord, error) {
	query := `
		SELECT id, user_id, producto_id, quantity, total_cost, cost_per_unit, production_date
		FROM production_history
		WHERE user_id = $1
		ORDER BY production_date DESC LIMIT $2`
	return r.queryRecords(query, userID, limit)
}

func (r *ProductionRepo) queryRecords(query string, args ...any) ([]*entity.ProductionRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production history: %w", err)
	}
	defer rows.Close()

	var records []*entity.ProductionRecord
	for rows.Next() {
		var rec entity.ProductionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ProductoID, &rec.Quantity,
			&rec.TotalCost, &rec.CostPerUnit, &rec.ProductionDate); err != nil {
			return nil, fmt.Errorf("scan production record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
