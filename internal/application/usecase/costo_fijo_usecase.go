package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// CostoFijoUseCase CRUD de gastos recurrentes y total mensual normalizado.
type CostoFijoUseCase struct {
	repo repository.CostoFijoRepository
}

// NewCostoFijoUseCase construye el caso de uso.
func NewCostoFijoUseCase(repo repository.CostoFijoRepository) *CostoFijoUseCase {
	return &CostoFijoUseCase{repo: repo}
}

// Create registra un costo fijo.
func (uc *CostoFijoUseCase) Create(userID string, in dto.CostoFijoRequest) (*dto.CostoFijoResponse, error) {
	if in.Name == "" || !in.Amount.IsPositive() || !entity.ValidFrequency(in.Frequency) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	costo := &entity.CostoFijo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Amount:    in.Amount,
		Frequency: in.Frequency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(costo); err != nil {
		return nil, err
	}
	return toCostoFijoResponse(costo), nil
}

// List devuelve los costos fijos del usuario.
func (uc *CostoFijoUseCase) List(userID string) ([]dto.CostoFijoResponse, error) {
	costos, err := uc.repo.List(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CostoFijoResponse, 0, len(costos))
	for _, c := range costos {
		out = append(out, *toCostoFijoResponse(c))
	}
	return out, nil
}

// Update reemplaza nombre, monto y frecuencia de un costo fijo.
func (uc *CostoFijoUseCase) Update(userID, id string, in dto.CostoFijoRequest) (*dto.CostoFijoResponse, error) {
	if in.Name == "" || !in.Amount.IsPositive() || !entity.ValidFrequency(in.Frequency) {
		return nil, domain.ErrInvalidInput
	}
	costo, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if costo == nil {
		return nil, domain.ErrNotFound
	}
	costo.Name = in.Name
	costo.Amount = in.Amount
	costo.Frequency = in.Frequency
	costo.UpdatedAt = time.Now()
	if err := uc.repo.Update(costo); err != nil {
		return nil, err
	}
	return toCostoFijoResponse(costo), nil
}

// Delete elimina un costo fijo.
func (uc *CostoFijoUseCase) Delete(userID, id string) error {
	return uc.repo.Delete(userID, id)
}

// MonthlyTotal suma el equivalente mensual de todos los costos fijos del usuario.
func (uc *CostoFijoUseCase) MonthlyTotal(userID string) (*dto.MonthlyTotalResponse, error) {
	costos, err := uc.repo.List(userID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, c := range costos {
		total = total.Add(c.MonthlyAmount())
	}
	return &dto.MonthlyTotalResponse{MonthlyTotal: total}, nil
}

func toCostoFijoResponse(c *entity.CostoFijo) *dto.CostoFijoResponse {
	return &dto.CostoFijoResponse{
		ID:            c.ID,
		Name:          c.Name,
		Amount:        c.Amount,
		Frequency:     c.Frequency,
		MonthlyAmount: c.MonthlyAmount(),
		CreatedAt:     c.CreatedAt,
	}
}
