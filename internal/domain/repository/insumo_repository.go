package repository

import "github.com/jmcastano/costeo-api/internal/domain/entity"

// InsumoRepository define el puerto de persistencia del catálogo de insumos.
type InsumoRepository interface {
	Create(insumo *entity.Insumo) error
	GetByID(userID, id string) (*entity.Insumo, error)
	List(userID string, limit, offset int) ([]*entity.Insumo, error)
	Update(insumo *entity.Insumo) error
	Delete(userID, id string) error
}
