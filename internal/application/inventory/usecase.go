// Package inventory implementa el libro de lotes: compras de insumos, consulta
// de disponibilidad en orden de consumo y el guard de borrado de lotes.
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/costing"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// LoteUseCase operaciones sobre el libro de lotes de un insumo.
type LoteUseCase struct {
	loteRepo   repository.LoteRepository
	insumoRepo repository.InsumoRepository
}

// NewLoteUseCase construye el caso de uso.
func NewLoteUseCase(loteRepo repository.LoteRepository, insumoRepo repository.InsumoRepository) *LoteUseCase {
	return &LoteUseCase{loteRepo: loteRepo, insumoRepo: insumoRepo}
}

// RecordPurchase registra una compra como un lote nuevo con remanente = comprado.
// La cantidad y el precio total vienen en la unidad de compra del insumo; aquí se
// convierten una única vez a unidades mínimas y precio por unidad mínima.
func (uc *LoteUseCase) RecordPurchase(userID, insumoID string, in dto.RecordPurchaseRequest) (*dto.LoteResponse, error) {
	if !in.Quantity.IsPositive() || !in.TotalPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	insumo, err := uc.insumoRepo.GetByID(userID, insumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.ErrNotFound
	}

	qtyBase := costing.ToBaseUnits(in.Quantity, insumo.UnitType)
	pricePerUnit := in.TotalPrice.Div(qtyBase)

	purchaseDate := time.Now()
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}

	lote := &entity.InsumoLote{
		ID:                uuid.New().String(),
		UserID:            userID,
		InsumoID:          insumoID,
		PurchaseDate:      purchaseDate,
		QuantityPurchased: qtyBase,
		QuantityRemaining: qtyBase,
		PricePerUnit:      pricePerUnit,
		CreatedAt:         time.Now(),
	}
	if err := uc.loteRepo.Create(lote); err != nil {
		return nil, err
	}
	resp := toLoteResponse(lote)
	return &resp, nil
}

// ListAvailable devuelve los lotes con remanente, en orden LIFO o, si se pasa
// una secuencia explícita de IDs, en ese orden con los no listados al final.
func (uc *LoteUseCase) ListAvailable(userID, insumoID string, order []string) ([]dto.LoteResponse, error) {
	lotes, err := uc.loteRepo.ListAvailable(userID, insumoID)
	if err != nil {
		return nil, err
	}
	ordered := costing.ApplyManualOrder(lotes, order)
	out := make([]dto.LoteResponse, 0, len(ordered))
	for i := range ordered {
		out = append(out, toLoteResponse(&ordered[i]))
	}
	return out, nil
}

// PriceHistory devuelve todos los lotes (también los consumidos) del más antiguo
// al más reciente, para graficar la evolución del precio de compra.
func (uc *LoteUseCase) PriceHistory(userID, insumoID string) ([]dto.PriceHistoryPoint, error) {
	lotes, err := uc.loteRepo.ListByInsumo(userID, insumoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryPoint, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, dto.PriceHistoryPoint{
			Date:              l.PurchaseDate,
			PricePerUnit:      l.PricePerUnit,
			QuantityPurchased: l.QuantityPurchased,
		})
	}
	return out, nil
}

// DecrementRemaining resta directamente del remanente de un lote. Es una
// operación interna del motor: si el monto supera el remanente devuelve
// ErrInsufficientLote (mal uso del planificador, no un caso de negocio).
func (uc *LoteUseCase) DecrementRemaining(userID, loteID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	lote, err := uc.loteRepo.GetByID(userID, loteID)
	if err != nil {
		return err
	}
	if lote == nil {
		return domain.ErrNotFound
	}
	if amount.GreaterThan(lote.QuantityRemaining) {
		return domain.ErrInsufficientLote
	}
	return uc.loteRepo.DecrementRemaining(loteID, amount)
}

// DeleteLote elimina un lote solo si está intacto; un lote con consumo parcial
// o total es historia de costos y el borrado falla con ErrLoteConsumed.
func (uc *LoteUseCase) DeleteLote(userID, loteID string) error {
	return uc.loteRepo.DeleteIfUntouched(userID, loteID)
}

func toLoteResponse(l *entity.InsumoLote) dto.LoteResponse {
	return dto.LoteResponse{
		ID:                l.ID,
		InsumoID:          l.InsumoID,
		PurchaseDate:      l.PurchaseDate,
		QuantityPurchased: l.QuantityPurchased,
		QuantityRemaining: l.QuantityRemaining,
		PricePerUnit:      l.PricePerUnit,
		CreatedAt:         l.CreatedAt,
	}
}
