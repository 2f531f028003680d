package repository

import "github.com/jmcastano/costeo-api/internal/domain/entity"

// ProductoRepository define el puerto de persistencia de productos terminados.
// El stock de terminados solo se mueve con los métodos Increment/Decrement para
// que el contador nunca quede negativo ni sufra lost updates.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(userID, id string) (*entity.Producto, error)

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar ventas y producciones concurrentes del mismo producto.
	GetForUpdate(userID, id string) (*entity.Producto, error)

	ListRecipe(productoID string) ([]entity.RecipeItem, error)
	ReplaceRecipe(productoID string, items []entity.RecipeItem) error
	List(userID string, limit, offset int) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	Delete(userID, id string) error

	// IncrementFinishedStock suma qty unidades terminadas.
	IncrementFinishedStock(userID, id string, qty int64) error

	// DecrementFinishedStock resta qty solo si el stock alcanza
	// (UPDATE ... WHERE finished_stock >= qty); 0 filas -> domain.ErrStockConflict.
	DecrementFinishedStock(userID, id string, qty int64) error

	// SetFinishedStock fija el contador en un valor >= 0 (ajuste manual).
	SetFinishedStock(userID, id string, qty int64) error
}
