package repository

import "github.com/jmcastano/costeo-api/internal/domain/entity"

// ProductionRepository define el puerto del historial de producción (append-only).
type ProductionRepository interface {
	Create(record *entity.ProductionRecord) error
	ListByProducto(userID, productoID string, limit int) ([]*entity.ProductionRecord, error)
	ListByUser(userID string, limit int) ([]*entity.ProductionRecord, error)
}
