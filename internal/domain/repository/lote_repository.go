package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/domain/entity"
)

// LoteRepository define el puerto de persistencia del libro de lotes.
// Las lecturas FOR UPDATE y los decrementos condicionales deben usarse dentro
// de una transacción (TxRunner) para que planear y confirmar sean atómicos.
type LoteRepository interface {
	Create(lote *entity.InsumoLote) error
	GetByID(userID, id string) (*entity.InsumoLote, error)

	// ListAvailable devuelve los lotes con remanente > 0 en orden LIFO
	// (fecha de compra desc, inserción desc).
	ListAvailable(userID, insumoID string) ([]entity.InsumoLote, error)

	// ListAvailableForUpdate es ListAvailable con bloqueo de filas (SELECT FOR UPDATE);
	// serializa corridas de producción concurrentes sobre los mismos lotes.
	ListAvailableForUpdate(userID, insumoID string) ([]entity.InsumoLote, error)

	// ListByInsumo devuelve todos los lotes (incluidos los agotados), del más
	// antiguo al más reciente; alimenta el historial de precios.
	ListByInsumo(userID, insumoID string) ([]entity.InsumoLote, error)

	// DecrementRemaining resta amount solo si el remanente alcanza
	// (UPDATE ... WHERE quantity_remaining >= amount). Si no afecta filas
	// devuelve domain.ErrStockConflict: alguien consumió el lote entre la
	// planificación y el commit.
	DecrementRemaining(id string, amount decimal.Decimal) error

	// DeleteIfUntouched elimina el lote solo si remanente == comprado.
	// Lote tocado -> domain.ErrLoteConsumed; inexistente -> domain.ErrNotFound.
	DeleteIfUntouched(userID, id string) error

	// CurrentUnitCost devuelve el precio por unidad mínima del próximo lote que
	// consumiría LIFO (la compra más reciente con remanente); si todo está agotado,
	// el de la compra más reciente; sin lotes, 0.
	CurrentUnitCost(userID, insumoID string) (decimal.Decimal, error)
}
