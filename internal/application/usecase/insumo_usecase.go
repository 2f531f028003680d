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

// InsumoUseCase CRUD del catálogo de insumos. El costo vigente de cada insumo
// se deriva de sus lotes, no se guarda en el catálogo.
type InsumoUseCase struct {
	insumoRepo repository.InsumoRepository
	loteRepo   repository.LoteRepository
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(insumoRepo repository.InsumoRepository, loteRepo repository.LoteRepository) *InsumoUseCase {
	return &InsumoUseCase{insumoRepo: insumoRepo, loteRepo: loteRepo}
}

// Create registra un insumo nuevo, activo por defecto.
func (uc *InsumoUseCase) Create(userID string, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error) {
	if in.Name == "" || !entity.ValidUnitType(in.UnitType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	insumo := &entity.Insumo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		UnitType:  in.UnitType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.insumoRepo.Create(insumo); err != nil {
		return nil, err
	}
	return uc.toResponse(insumo)
}

// Get devuelve un insumo con su costo vigente.
func (uc *InsumoUseCase) Get(userID, id string) (*dto.InsumoResponse, error) {
	insumo, err := uc.insumoRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(insumo)
}

// List devuelve los insumos del usuario.
func (uc *InsumoUseCase) List(userID string, page dto.PageRequest) ([]dto.InsumoResponse, error) {
	page.DefaultPage()
	insumos, err := uc.insumoRepo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsumoResponse, 0, len(insumos))
	for _, i := range insumos {
		resp, err := uc.toResponse(i)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Update cambia nombre y estado. El tipo de unidad es inmutable: cambiarlo
// invalidaría las cantidades ya guardadas en unidades mínimas.
func (uc *InsumoUseCase) Update(userID, id string, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := uc.insumoRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		insumo.Name = in.Name
	}
	if in.Active != nil {
		insumo.Active = *in.Active
	}
	insumo.UpdatedAt = time.Now()
	if err := uc.insumoRepo.Update(insumo); err != nil {
		return nil, err
	}
	return uc.toResponse(insumo)
}

// Delete elimina un insumo del catálogo.
func (uc *InsumoUseCase) Delete(userID, id string) error {
	return uc.insumoRepo.Delete(userID, id)
}

func (uc *InsumoUseCase) toResponse(i *entity.Insumo) (*dto.InsumoResponse, error) {
	cost, err := uc.loteRepo.CurrentUnitCost(i.UserID, i.ID)
	if err != nil {
		return nil, err
	}
	return &dto.InsumoResponse{
		ID:              i.ID,
		Name:            i.Name,
		UnitType:        i.UnitType,
		BaseUnit:        costing.BaseUnit(i.UnitType),
		Active:          i.Active,
		CurrentUnitCost: cost,
		CreatedAt:       i.CreatedAt,
	}, nil
}
