package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// loteColumns columnas en el orden que escanea scanLote.
const loteColumns = `id, user_id, insumo_id, purchase_date, quantity_purchased, quantity_remaining, price_per_unit, created_at`

// LoteRepo implementación del puerto LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador de persistencia de lotes. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// Create persiste un lote. Remaining arranca igual a Purchased.
func (r *LoteRepo) Create(lote *entity.InsumoLote) error {
	query := `
		INSERT INTO insumo_lotes (id, user_id, insumo_id, purchase_date, quantity_purchased, quantity_remaining, price_per_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.UserID, lote.InsumoID, lote.PurchaseDate,
		lote.QuantityPurchased, lote.QuantityRemaining, lote.PricePerUnit, lote.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID, restringido al usuario dueño.
func (r *LoteRepo) GetByID(userID, id string) (*entity.InsumoLote, error) {
	query := `SELECT ` + loteColumns + ` FROM insumo_lotes WHERE user_id = $1 AND id = $2`
	var l entity.InsumoLote
	err := scanLote(r.q.QueryRow(context.Background(), query, userID, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return &l, nil
}

// ListAvailable devuelve los lotes con remanente > 0 en orden LIFO:
// compra más reciente primero, con la inserción más reciente como desempate.
func (r *LoteRepo) ListAvailable(userID, insumoID string) ([]entity.InsumoLote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM insumo_lotes
		WHERE user_id = $1 AND insumo_id = $2 AND quantity_remaining > 0
		ORDER BY purchase_date DESC, created_at DESC`
	return r.queryLotes(query, userID, insumoID)
}

// ListAvailableForUpdate es ListAvailable con FOR UPDATE: bloquea las filas hasta
// el fin de la tx para que dos corridas de producción no planifiquen sobre el
// mismo remanente.
func (r *LoteRepo) ListAvailableForUpdate(userID, insumoID string) ([]entity.InsumoLote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM insumo_lotes
		WHERE user_id = $1 AND insumo_id = $2 AND quantity_remaining > 0
		ORDER BY purchase_date DESC, created_at DESC
		FOR UPDATE`
	return r.queryLotes(query, userID, insumoID)
}

// ListByInsumo devuelve todos los lotes de un insumo, del más antiguo al más
// reciente (historial de precios).
func (r *LoteRepo) ListByInsumo(userID, insumoID string) ([]entity.InsumoLote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM insumo_lotes
		WHERE user_id = $1 AND insumo_id = $2
		ORDER BY purchase_date ASC, created_at ASC`
	return r.queryLotes(query, userID, insumoID)
}

// DecrementRemaining resta amount de forma condicional: si el remanente ya no
// alcanza (otra tx consumió el lote entre planear y confirmar) no toca la fila
// y devuelve ErrStockConflict.
func (r *LoteRepo) DecrementRemaining(id string, amount decimal.Decimal) error {
	query := `
		UPDATE insumo_lotes
		SET quantity_remaining = quantity_remaining - $2
		WHERE id = $1 AND quantity_remaining >= $2`
	cmd, err := r.q.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("decrement lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStockConflict
	}
	return nil
}

// DeleteIfUntouched elimina el lote solo si nadie lo consumió
// (quantity_remaining == quantity_purchased).
func (r *LoteRepo) DeleteIfUntouched(userID, id string) error {
	query := `
		DELETE FROM insumo_lotes
		WHERE user_id = $1 AND id = $2 AND quantity_remaining = quantity_purchased`
	cmd, err := r.q.Exec(context.Background(), query, userID, id)
	if err != nil {
		return fmt.Errorf("delete lote: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	// 0 filas: o no existe, o ya fue consumido. Distinguir para el caller.
	var exists bool
	err = r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM insumo_lotes WHERE user_id = $1 AND id = $2)`,
		userID, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check lote: %w", err)
	}
	if exists {
		return domain.ErrLoteConsumed
	}
	return domain.ErrNotFound
}

// CurrentUnitCost devuelve el precio por unidad mínima del próximo lote que
// consumiría LIFO: la compra más reciente con remanente; si todos están
// agotados, la compra más reciente; sin lotes, 0.
func (r *LoteRepo) CurrentUnitCost(userID, insumoID string) (decimal.Decimal, error) {
	query := `
		SELECT price_per_unit
		FROM insumo_lotes
		WHERE user_id = $1 AND insumo_id = $2
		ORDER BY (quantity_remaining > 0) DESC, purchase_date DESC, created_at DESC
		LIMIT 1`
	var price decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, userID, insumoID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("current unit cost: %w", err)
	}
	return price, nil
}

func (r *LoteRepo) queryLotes(query string, args ...any) ([]entity.InsumoLote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var lotes []entity.InsumoLote
	for rows.Next() {
		var l entity.InsumoLote
		if err := scanLote(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lotes = append(lotes, l)
	}
	return lotes, rows.Err()
}

func scanLote(row pgx.Row, l *entity.InsumoLote) error {
	return row.Scan(
		&l.ID, &l.UserID, &l.InsumoID, &l.PurchaseDate,
		&l.QuantityPurchased, &l.QuantityRemaining, &l.PricePerUnit, &l.CreatedAt,
	)
}
