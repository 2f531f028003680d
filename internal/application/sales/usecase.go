// Package sales implementa el conciliador de ventas: sirve primero del stock
// terminado, fabrica el faltante bajo demanda y congela el costo unitario en la
// venta. Editar una venta solo puede cambiar cantidad y precio.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/application/production"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/costing"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// VentaUseCase registra, lista y edita ventas.
type VentaUseCase struct {
	txRunner  TxRunner
	ventaRepo repository.VentaRepository
	producer  *production.ProduceUseCase
}

// NewVentaUseCase construye el caso de uso. ventaRepo se usa para lecturas y
// ediciones; la creación de ventas va por los repos de la transacción.
func NewVentaUseCase(txRunner TxRunner, ventaRepo repository.VentaRepository, producer *production.ProduceUseCase) *VentaUseCase {
	return &VentaUseCase{txRunner: txRunner, ventaRepo: ventaRepo, producer: producer}
}

// Sell registra una venta. Dentro de una sola transacción: bloquea el producto,
// fabrica el faltante si el stock terminado no alcanza (si esa producción falla,
// la venta entera falla y el stock queda intacto), descuenta el stock, congela el
// costo unitario vigente y persiste la venta con sus derivados.
func (uc *VentaUseCase) Sell(ctx context.Context, userID string, in dto.CreateVentaRequest) (*dto.VentaResponse, error) {
	if in.ProductoID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PriceSold != nil && in.PriceSold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	saleDate := time.Now()
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	var venta *entity.Venta
	err := uc.txRunner.RunSale(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		productionRepo repository.ProductionRepository,
		ventaRepo repository.VentaRepository,
	) error {
		producto, err := productoRepo.GetForUpdate(userID, in.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}

		price := producto.PriceSale
		if in.PriceSold != nil {
			price = *in.PriceSold
		}

		recipe, err := productoRepo.ListRecipe(producto.ID)
		if err != nil {
			return err
		}

		// Paso 1-2: medir el faltante y fabricarlo antes de descontar nada.
		shortfall := in.Quantity - producto.FinishedStock
		var costUnit decimal.Decimal
		if shortfall > 0 {
			result, err := uc.producer.ProduceInTx(
				loteRepo, productoRepo, productionRepo,
				userID, producto, recipe, shortfall, nil, saleDate,
			)
			if err != nil {
				return err // stock de insumos insuficiente: la venta no se registra
			}
			costUnit = result.CostPerUnit
		} else {
			costUnit, err = currentCostUnit(loteRepo, userID, recipe)
			if err != nil {
				return err
			}
		}

		// Paso 3: descontar; tras la producción el stock alcanza por construcción.
		if err := productoRepo.DecrementFinishedStock(userID, producto.ID, in.Quantity); err != nil {
			return err
		}

		// Pasos 4-6: snapshot de costo congelado, derivados y persistencia.
		productoID := producto.ID
		venta = &entity.Venta{
			ID:           uuid.New().String(),
			UserID:       userID,
			ProductoID:   &productoID,
			ProductoName: producto.Name,
			Quantity:     in.Quantity,
			PriceSold:    price,
			CostUnit:     costUnit,
			SaleDate:     saleDate,
			CreatedAt:    time.Now(),
		}
		venta.RecomputeTotals()
		return ventaRepo.Create(venta)
	})
	if err != nil {
		return nil, err
	}
	resp := toVentaResponse(venta)
	return &resp, nil
}

// Edit cambia solo cantidad y precio de una venta ya registrada. No vuelve a
// producir, no toca stock y jamás altera el snapshot de costo: se privilegia la
// auditabilidad sobre la consistencia retroactiva.
func (uc *VentaUseCase) Edit(userID, ventaID string, in dto.UpdateVentaRequest) (*dto.VentaResponse, error) {
	if in.Quantity <= 0 || in.PriceSold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	venta, err := uc.ventaRepo.GetByID(userID, ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	venta.Quantity = in.Quantity
	venta.PriceSold = in.PriceSold
	venta.RecomputeTotals()
	if err := uc.ventaRepo.UpdateQuantityAndPrice(venta); err != nil {
		return nil, err
	}
	resp := toVentaResponse(venta)
	return &resp, nil
}

// Get devuelve una venta del usuario.
func (uc *VentaUseCase) Get(userID, ventaID string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(userID, ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	resp := toVentaResponse(venta)
	return &resp, nil
}

// List devuelve las ventas del usuario con filtros opcionales de rango y producto.
func (uc *VentaUseCase) List(userID string, filter repository.VentaFilter) ([]dto.VentaResponse, error) {
	ventas, err := uc.ventaRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, toVentaResponse(v))
	}
	return out, nil
}

// Delete elimina una venta. No restituye stock: la venta es un registro contable,
// no una reserva.
func (uc *VentaUseCase) Delete(userID, ventaID string) error {
	return uc.ventaRepo.Delete(userID, ventaID)
}

// currentCostUnit calcula el costo unitario vigente del producto: receta × precio
// del próximo lote que consumiría LIFO de cada insumo.
func currentCostUnit(loteRepo repository.LoteRepository, userID string, recipe []entity.RecipeItem) (decimal.Decimal, error) {
	lines := make([]costing.RecipeLineCost, 0, len(recipe))
	for _, item := range recipe {
		unitCost, err := loteRepo.CurrentUnitCost(userID, item.InsumoID)
		if err != nil {
			return decimal.Zero, err
		}
		lines = append(lines, costing.RecipeLineCost{
			InsumoID: item.InsumoID,
			Quantity: item.QuantityInBaseUnits,
			UnitCost: unitCost,
		})
	}
	return costing.RecipeCost(lines), nil
}

func toVentaResponse(v *entity.Venta) dto.VentaResponse {
	return dto.VentaResponse{
		ID:           v.ID,
		ProductoID:   v.ProductoID,
		ProductoName: v.ProductoName,
		Quantity:     v.Quantity,
		PriceSold:    v.PriceSold,
		CostUnit:     v.CostUnit,
		TotalIncome:  v.TotalIncome,
		TotalCost:    v.TotalCost,
		Profit:       v.Profit,
		ProfitMargin: v.ProfitMargin,
		SaleDate:     v.SaleDate,
	}
}
