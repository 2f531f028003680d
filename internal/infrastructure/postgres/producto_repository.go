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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia de productos.
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un producto. El stock de terminados arranca en 0.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (id, user_id, name, price_sale, margin_goal, finished_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.UserID, producto.Name, producto.PriceSale,
		producto.MarginGoal, producto.FinishedStock, producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto con su receta.
func (r *ProductoRepo) GetByID(userID, id string) (*entity.Producto, error) {
	return r.getByID(userID, id, false)
}

// GetForUpdate obtiene un producto bloqueando su fila (SELECT FOR UPDATE):
// serializa ventas y producciones concurrentes del mismo producto.
func (r *ProductoRepo) GetForUpdate(userID, id string) (*entity.Producto, error) {
	return r.getByID(userID, id, true)
}

func (r *ProductoRepo) getByID(userID, id string, forUpdate bool) (*entity.Producto, error) {
	query := `
		SELECT id, user_id, name, price_sale, margin_goal, finished_stock, created_at, updated_at
		FROM productos WHERE user_id = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.PriceSale, &p.MarginGoal,
		&p.FinishedStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	recipe, err := r.ListRecipe(p.ID)
	if err != nil {
		return nil, err
	}
	p.Recipe = recipe
	return &p, nil
}

// ListRecipe devuelve las líneas de receta de un producto.
func (r *ProductoRepo) ListRecipe(productoID string) ([]entity.RecipeItem, error) {
	query := `
		SELECT id, producto_id, insumo_id, quantity_in_base_units, created_at
		FROM recipe_items WHERE producto_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()

	var items []entity.RecipeItem
	for rows.Next() {
		var it entity.RecipeItem
		if err := rows.Scan(&it.ID, &it.ProductoID, &it.InsumoID, &it.QuantityInBaseUnits, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceRecipe reemplaza la receta completa del producto.
func (r *ProductoRepo) ReplaceRecipe(productoID string, items []entity.RecipeItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_items WHERE producto_id = $1`, productoID); err != nil {
		return fmt.Errorf("clear recipe: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_items (id, producto_id, insumo_id, quantity_in_base_units, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, productoID, it.InsumoID, it.QuantityInBaseUnits, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}
	return nil
}

// List lista los productos del usuario con su receta.
func (r *ProductoRepo) List(userID string, limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT id, user_id, name, price_sale, margin_goal, finished_stock, created_at, updated_at
		FROM productos WHERE user_id = $1
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var productos []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.PriceSale, &p.MarginGoal,
			&p.FinishedStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		productos = append(productos, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range productos {
		recipe, err := r.ListRecipe(p.ID)
		if err != nil {
			return nil, err
		}
		p.Recipe = recipe
	}
	return productos, nil
}

// Update actualiza nombre, precio y margen objetivo. El stock no se toca aquí.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET name = $3, price_sale = $4, margin_goal = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		producto.UserID, producto.ID, producto.Name, producto.PriceSale,
		producto.MarginGoal, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto y su receta (cascada). Las ventas quedan con
// producto_id nulo (ON DELETE SET NULL) y conservan el nombre snapshot.
func (r *ProductoRepo) Delete(userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM productos WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementFinishedStock suma qty unidades terminadas.
func (r *ProductoRepo) IncrementFinishedStock(userID, id string, qty int64) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE productos SET finished_stock = finished_stock + $3, updated_at = now()
		WHERE user_id = $1 AND id = $2`,
		userID, id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment finished stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementFinishedStock resta qty solo si el stock alcanza; 0 filas afectadas
// significa que otra tx se llevó las unidades primero.
func (r *ProductoRepo) DecrementFinishedStock(userID, id string, qty int64) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE productos SET finished_stock = finished_stock - $3, updated_at = now()
		WHERE user_id = $1 AND id = $2 AND finished_stock >= $3`,
		userID, id, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement finished stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStockConflict
	}
	return nil
}

// SetFinishedStock fija el contador en un valor absoluto (ajuste por conteo físico).
func (r *ProductoRepo) SetFinishedStock(userID, id string, qty int64) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE productos SET finished_stock = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2`,
		userID, id, qty,
	)
	if err != nil {
		return fmt.Errorf("set finished stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
