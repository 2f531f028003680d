package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/costing"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// ProductoUseCase CRUD de productos terminados y ajuste manual de stock.
type ProductoUseCase struct {
	productoRepo repository.ProductoRepository
	insumoRepo   repository.InsumoRepository
	loteRepo     repository.LoteRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(productoRepo repository.ProductoRepository, insumoRepo repository.InsumoRepository, loteRepo repository.LoteRepository) *ProductoUseCase {
	return &ProductoUseCase{productoRepo: productoRepo, insumoRepo: insumoRepo, loteRepo: loteRepo}
}

// Create registra un producto con su receta. Cada línea debe referir un insumo
// existente del usuario y una cantidad positiva en unidades mínimas.
func (uc *ProductoUseCase) Create(userID string, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Name == "" || in.PriceSale.IsNegative() || len(in.Recipe) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildRecipe(userID, in.Recipe)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       in.Name,
		PriceSale:  in.PriceSale,
		MarginGoal: in.MarginGoal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productoRepo.Create(producto); err != nil {
		return nil, err
	}
	if err := uc.productoRepo.ReplaceRecipe(producto.ID, items); err != nil {
		return nil, err
	}
	producto.Recipe = items
	return uc.toResponse(producto)
}

// Get devuelve un producto con receta, costo vigente y precio sugerido.
func (uc *ProductoUseCase) Get(userID, id string) (*dto.ProductoResponse, error) {
	producto, err := uc.productoRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(producto)
}

// List devuelve los productos del usuario.
func (uc *ProductoUseCase) List(userID string, page dto.PageRequest) ([]dto.ProductoResponse, error) {
	page.DefaultPage()
	productos, err := uc.productoRepo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Update cambia nombre, precio, margen objetivo y, si viene, la receta completa.
// Nombre vacío y precio ausente conservan el valor actual.
func (uc *ProductoUseCase) Update(userID, id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.productoRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		producto.Name = in.Name
	}
	if in.PriceSale != nil {
		if in.PriceSale.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.PriceSale = *in.PriceSale
	}
	producto.MarginGoal = in.MarginGoal
	producto.UpdatedAt = time.Now()
	if err := uc.productoRepo.Update(producto); err != nil {
		return nil, err
	}
	if in.Recipe != nil {
		items, err := uc.buildRecipe(userID, in.Recipe)
		if err != nil {
			return nil, err
		}
		if err := uc.productoRepo.ReplaceRecipe(producto.ID, items); err != nil {
			return nil, err
		}
		producto.Recipe = items
	}
	return uc.toResponse(producto)
}

// Delete elimina un producto. Las ventas existentes conservan el nombre
// snapshot y quedan con producto_id nulo.
func (uc *ProductoUseCase) Delete(userID, id string) error {
	return uc.productoRepo.Delete(userID, id)
}

// AdjustStock fija el stock de terminados en un valor absoluto no negativo
// (conteo físico). No genera registro de producción ni toca lotes.
func (uc *ProductoUseCase) AdjustStock(userID, id string, in dto.AdjustStockRequest) error {
	if in.FinishedStock < 0 {
		return domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	return uc.productoRepo.SetFinishedStock(userID, id, in.FinishedStock)
}

func (uc *ProductoUseCase) buildRecipe(userID string, lines []dto.RecipeItemRequest) ([]entity.RecipeItem, error) {
	items := make([]entity.RecipeItem, 0, len(lines))
	for _, line := range lines {
		if line.InsumoID == "" || !line.QuantityInBaseUnits.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		insumo, err := uc.insumoRepo.GetByID(userID, line.InsumoID)
		if err != nil {
			return nil, err
		}
		if insumo == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.RecipeItem{
			ID:                  uuid.New().String(),
			InsumoID:            line.InsumoID,
			QuantityInBaseUnits: line.QuantityInBaseUnits,
			CreatedAt:           time.Now(),
		})
	}
	return items, nil
}

func (uc *ProductoUseCase) toResponse(p *entity.Producto) (*dto.ProductoResponse, error) {
	lines := make([]costing.RecipeLineCost, 0, len(p.Recipe))
	recipe := make([]dto.RecipeItemResponse, 0, len(p.Recipe))
	for _, item := range p.Recipe {
		unitCost, err := uc.loteRepo.CurrentUnitCost(p.UserID, item.InsumoID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, costing.RecipeLineCost{
			InsumoID: item.InsumoID,
			Quantity: item.QuantityInBaseUnits,
			UnitCost: unitCost,
		})
		recipe = append(recipe, dto.RecipeItemResponse{
			InsumoID:            item.InsumoID,
			QuantityInBaseUnits: item.QuantityInBaseUnits,
		})
	}
	costUnit := costing.RecipeCost(lines)

	resp := &dto.ProductoResponse{
		ID:            p.ID,
		Name:          p.Name,
		PriceSale:     p.PriceSale,
		MarginGoal:    p.MarginGoal,
		FinishedStock: p.FinishedStock,
		CostUnit:      costUnit,
		ProfitMargin:  costing.ProfitMarginPct(p.PriceSale, costUnit),
		Recipe:        recipe,
		CreatedAt:     p.CreatedAt,
	}
	if p.MarginGoal != nil {
		suggested := costing.SuggestedPrice(costUnit, *p.MarginGoal)
		resp.SuggestedPrice = &suggested
	}
	return resp, nil
}
