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

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación del puerto InsumoRepository sobre PostgreSQL.
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador de persistencia de insumos.
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

// Create persiste un insumo.
func (r *InsumoRepo) Create(insumo *entity.Insumo) error {
	query := `
		INSERT INTO insumos (id, user_id, name, unit_type, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		insumo.ID, insumo.UserID, insumo.Name, insumo.UnitType, insumo.Active,
		insumo.CreatedAt, insumo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID, restringido al usuario dueño.
func (r *InsumoRepo) GetByID(userID, id string) (*entity.Insumo, error) {
	query := `
		SELECT id, user_id, name, unit_type, active, created_at, updated_at
		FROM insumos WHERE user_id = $1 AND id = $2`
	var i entity.Insumo
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&i.ID, &i.UserID, &i.Name, &i.UnitType, &i.Active, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return &i, nil
}

// List lista los insumos del usuario con paginación, alfabéticamente.
func (r *InsumoRepo) List(userID string, limit, offset int) ([]*entity.Insumo, error) {
	query := `
		SELECT id, user_id, name, unit_type, active, created_at, updated_at
		FROM insumos WHERE user_id = $1
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()

	var insumos []*entity.Insumo
	for rows.Next() {
		var i entity.Insumo
		if err := rows.Scan(&i.ID, &i.UserID, &i.Name, &i.UnitType, &i.Active, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		insumos = append(insumos, &i)
	}
	return insumos, rows.Err()
}

// Update actualiza nombre y estado. El tipo de unidad es inmutable: cambiarlo
// invalidaría las cantidades ya guardadas en lotes y recetas.
func (r *InsumoRepo) Update(insumo *entity.Insumo) error {
	query := `
		UPDATE insumos SET name = $3, active = $4, updated_at = $5
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		insumo.UserID, insumo.ID, insumo.Name, insumo.Active, insumo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update insumo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un insumo y, por cascada, sus lotes.
func (r *InsumoRepo) Delete(userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM insumos WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete insumo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
