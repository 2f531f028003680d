package repository

import (
	"time"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

// VentaFilter filtros opcionales para listar ventas.
type VentaFilter struct {
	From       *time.Time
	To         *time.Time
	ProductoID string
}

// VentaRepository define el puerto de persistencia de ventas.
// Update solo puede tocar cantidad y precio; el snapshot de costo es inmutable.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	GetByID(userID, id string) (*entity.Venta, error)
	List(userID string, filter VentaFilter) ([]*entity.Venta, error)
	UpdateQuantityAndPrice(venta *entity.Venta) error
	Delete(userID, id string) error
}
