package repository

import "github.com/jmcastano/costeo-api/internal/domain/entity"

// CostoFijoRepository define el puerto de persistencia de costos fijos.
type CostoFijoRepository interface {
	Create(costo *entity.CostoFijo) error
	GetByID(userID, id string) (*entity.CostoFijo, error)
	List(userID string) ([]*entity.CostoFijo, error)
	Update(costo *entity.CostoFijo) error
	Delete(userID, id string) error
}
