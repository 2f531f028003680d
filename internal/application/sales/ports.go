package sales

import (
	"context"

	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repos que necesita una venta:
// lotes y producción (para fabricar el faltante bajo demanda), productos y ventas.
// La secuencia leer-stock / quizá-producir / descontar / insertar-venta corre
// completa dentro de la misma tx, serializada por producto vía FOR UPDATE.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		productionRepo repository.ProductionRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}
