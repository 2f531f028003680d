// Package production implementa el orquestador de producción: expande la receta,
// planifica el consumo de lotes por insumo (todo-o-nada) y confirma decrementos,
// aumento de stock terminado y registro de auditoría en una sola transacción.
package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/costing"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// ProduceUseCase fabrica unidades de un producto consumiendo lotes de insumos.
type ProduceUseCase struct {
	txRunner       TxRunner
	productoRepo   repository.ProductoRepository
	productionRepo repository.ProductionRepository
}

// NewProduceUseCase construye el caso de uso. productionRepo se usa solo para
// lecturas de historial; las escrituras van por los repos de la transacción.
func NewProduceUseCase(txRunner TxRunner, productoRepo repository.ProductoRepository, productionRepo repository.ProductionRepository) *ProduceUseCase {
	return &ProduceUseCase{txRunner: txRunner, productoRepo: productoRepo, productionRepo: productionRepo}
}

// Produce fabrica qty unidades del producto. Valida fuera de la transacción,
// y dentro de ella bloquea la fila del producto, planifica todas las líneas de la
// receta antes de tocar lote alguno, y confirma. Cualquier fallo revierte todo.
func (uc *ProduceUseCase) Produce(ctx context.Context, userID, productoID string, qty int64, manualOrder map[string][]string) (*dto.ProductionResult, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(userID, productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if len(producto.Recipe) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.ProductionResult
	err = uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		productionRepo repository.ProductionRepository,
	) error {
		// Bloquear la fila del producto serializa producciones y ventas concurrentes.
		locked, err := productoRepo.GetForUpdate(userID, productoID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// La receta vigente es la de la fila bloqueada; la leída antes de la tx
		// pudo haber sido editada en el medio.
		result, err = uc.ProduceInTx(loteRepo, productoRepo, productionRepo, userID, locked, locked.Recipe, qty, manualOrder, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProduceInTx ejecuta una corrida de producción con los repositorios de la
// transacción del caller. Lo usa Produce y también la venta con fabricación
// bajo demanda, que necesita producir el faltante dentro de su propia tx.
//
// Fases: planificar todas las líneas (con los lotes bloqueados FOR UPDATE) y
// recién entonces confirmar. Un decremento condicional que no afecte filas
// significa que otra transacción consumió el lote: se propaga ErrStockConflict
// y el caller revierte.
func (uc *ProduceUseCase) ProduceInTx(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	productionRepo repository.ProductionRepository,
	userID string,
	producto *entity.Producto,
	recipe []entity.RecipeItem,
	qty int64,
	manualOrder map[string][]string,
	now time.Time,
) (*dto.ProductionResult, error) {
	if qty <= 0 || len(recipe) == 0 {
		return nil, domain.ErrInvalidInput
	}
	qtyDec := decimal.NewFromInt(qty)

	// Fase de planificación: ninguna línea se confirma hasta que todas tengan plan.
	plans := make([]costing.Plan, 0, len(recipe))
	for _, line := range recipe {
		lotes, err := loteRepo.ListAvailableForUpdate(userID, line.InsumoID)
		if err != nil {
			return nil, err
		}
		ordered := costing.ApplyManualOrder(lotes, manualOrder[line.InsumoID])
		needed := line.QuantityInBaseUnits.Mul(qtyDec)
		plan, err := costing.PlanConsumption(line.InsumoID, needed, ordered)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	// Fase de commit: decrementos condicionales, stock terminado y auditoría.
	for _, plan := range plans {
		for _, draw := range plan.Draws {
			if err := loteRepo.DecrementRemaining(draw.LoteID, draw.Quantity); err != nil {
				return nil, err
			}
		}
	}

	totalCost := costing.TotalCost(plans)
	costPerUnit := totalCost.Div(qtyDec)

	if err := productoRepo.IncrementFinishedStock(userID, producto.ID, qty); err != nil {
		return nil, err
	}

	record := &entity.ProductionRecord{
		ID:             uuid.New().String(),
		UserID:         userID,
		ProductoID:     producto.ID,
		Quantity:       qty,
		TotalCost:      totalCost,
		CostPerUnit:    costPerUnit,
		ProductionDate: now,
	}
	if err := productionRepo.Create(record); err != nil {
		return nil, err
	}

	return &dto.ProductionResult{
		QuantityProduced: qty,
		TotalCost:        totalCost,
		CostPerUnit:      costPerUnit,
	}, nil
}

// History devuelve las corridas de producción, la más reciente primero.
// Sin productoID lista todas las corridas del usuario.
func (uc *ProduceUseCase) History(userID, productoID string, limit int) ([]dto.ProductionRecordResponse, error) {
	var records []*entity.ProductionRecord
	var err error
	if productoID == "" {
		records, err = uc.productionRepo.ListByUser(userID, limit)
	} else {
		records, err = uc.productionRepo.ListByProducto(userID, productoID, limit)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ProductionRecordResponse{
			ID:             r.ID,
			ProductoID:     r.ProductoID,
			Quantity:       r.Quantity,
			TotalCost:      r.TotalCost,
			CostPerUnit:    r.CostPerUnit,
			ProductionDate: r.ProductionDate,
		})
	}
	return out, nil
}
