package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInsufficientStock: la planificación no encontró lotes suficientes para cubrir
	// un requerimiento de insumo. El detalle (insumo y faltante) viaja en
	// costing.InsufficientStockError, que envuelve este sentinel.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrStockConflict: una actualización condicional no afectó filas porque otra
	// transacción consumió el stock entre la planificación y el commit.
	ErrStockConflict = errors.New("conflicto de stock concurrente")

	// ErrLoteConsumed: intento de borrar un lote con consumo parcial o total;
	// un lote tocado es historia permanente de costos.
	ErrLoteConsumed = errors.New("el lote ya fue consumido y no puede eliminarse")

	// ErrInsufficientLote: decremento directo mayor al remanente del lote.
	// Fuera del planificador esto es un error de programación, no de negocio.
	ErrInsufficientLote = errors.New("cantidad supera el remanente del lote")
)
