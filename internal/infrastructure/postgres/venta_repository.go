package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// ventaColumns columnas en el orden que escanea scanVenta.
const ventaColumns = `id, user_id, producto_id, producto_name, quantity, price_sold, cost_unit, total_income, total_cost, profit, profit_margin, sale_date, created_at`

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de persistencia de ventas.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste una venta con su snapshot de costo.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.UserID, venta.ProductoID, venta.ProductoName,
		venta.Quantity, venta.PriceSold, venta.CostUnit,
		venta.TotalIncome, venta.TotalCost, venta.Profit, venta.ProfitMargin,
		venta.SaleDate, venta.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID, restringida al usuario dueño.
func (r *VentaRepo) GetByID(userID, id string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE user_id = $1 AND id = $2`
	var v entity.Venta
	err := scanVenta(r.q.QueryRow(context.Background(), query, userID, id), &v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &v, nil
}

// List devuelve las ventas del usuario, filtradas por rango de fecha y/o
// producto, de la más reciente a la más antigua.
func (r *VentaRepo) List(userID string, filter repository.VentaFilter) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE user_id = $1`
	args := []any{userID}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND sale_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND sale_date <= $` + strconv.Itoa(len(args))
	}
	if filter.ProductoID != "" {
		args = append(args, filter.ProductoID)
		query += ` AND producto_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY sale_date DESC, created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var ventas []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := scanVenta(rows, &v); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		ventas = append(ventas, &v)
	}
	return ventas, rows.Err()
}

// UpdateQuantityAndPrice actualiza cantidad, precio y los totales derivados.
// cost_unit no aparece en el SET: el snapshot de costo es inmutable.
func (r *VentaRepo) UpdateQuantityAndPrice(venta *entity.Venta) error {
	query := `
		UPDATE ventas
		SET quantity = $3, price_sold = $4, total_income = $5, total_cost = $6, profit = $7, profit_margin = $8
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		venta.UserID, venta.ID, venta.Quantity, venta.PriceSold,
		venta.TotalIncome, venta.TotalCost, venta.Profit, venta.ProfitMargin,
	)
	if err != nil {
		return fmt.Errorf("update venta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una venta. No restituye stock ni lotes.
func (r *VentaRepo) Delete(userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM ventas WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanVenta(row pgx.Row, v *entity.Venta) error {
	return row.Scan(
		&v.ID, &v.UserID, &v.ProductoID, &v.ProductoName,
		&v.Quantity, &v.PriceSold, &v.CostUnit,
		&v.TotalIncome, &v.TotalCost, &v.Profit, &v.ProfitMargin,
		&v.SaleDate, &v.CreatedAt,
	)
}
