package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

var _ repository.CostoFijoRepository = (*CostoFijoRepo)(nil)

// CostoFijoRepo implementación del puerto CostoFijoRepository sobre PostgreSQL.
type CostoFijoRepo struct {
	q Querier
}

// NewCostoFijoRepository construye el adaptador de persistencia de costos fijos.
func NewCostoFijoRepository(q Querier) *CostoFijoRepo {
	return &CostoFijoRepo{q: q}
}

// Create persiste un costo fijo.
func (r *CostoFijoRepo) Create(costo *entity.CostoFijo) error {
	query := `
		INSERT INTO costos_fijos (id, user_id, name, amount, frequency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		costo.ID, costo.UserID, costo.Name, costo.Amount, costo.Frequency,
		costo.CreatedAt, costo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert costo fijo: %w", err)
	}
	return nil
}

// GetByID obtiene un costo fijo por ID, restringido al usuario dueño.
func (r *CostoFijoRepo) GetByID(userID, id string) (*entity.CostoFijo, error) {
	query := `
		SELECT id, user_id, name, amount, frequency, created_at, updated_at
		FROM costos_fijos WHERE user_id = $1 AND id = $2`
	var c entity.CostoFijo
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Amount, &c.Frequency, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get costo fijo: %w", err)
	}
	return &c, nil
}

// List devuelve los costos fijos del usuario, alfabéticamente.
func (r *CostoFijoRepo) List(userID string) ([]*entity.CostoFijo, error) {
	query := `
		SELECT id, user_id, name, amount, frequency, created_at, updated_at
		FROM costos_fijos WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list costos fijos: %w", err)
	}
	defer rows.Close()

	var costos []*entity.CostoFijo
	for rows.Next() {
		var c entity.CostoFijo
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Amount, &c.Frequency, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan costo fijo: %w", err)
		}
		costos = append(costos, &c)
	}
	return costos, rows.Err()
}

// Update actualiza nombre, monto y frecuencia.
func (r *CostoFijoRepo) Update(costo *entity.CostoFijo) error {
	query := `
		UPDATE costos_fijos SET name = $3, amount = $4, frequency = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		costo.UserID, costo.ID, costo.Name, costo.Amount, costo.Frequency, costo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update costo fijo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un costo fijo.
func (r *CostoFijoRepo) Delete(userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM costos_fijos WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete costo fijo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
