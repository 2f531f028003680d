package production

import (
	"context"

	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a la tx.
// Commit si fn retorna nil; rollback completo en cualquier error: una corrida
// de producción nunca deja decrementos parciales visibles.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		productionRepo repository.ProductionRepository,
	) error) error
}
