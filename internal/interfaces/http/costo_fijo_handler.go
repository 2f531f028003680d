package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/application/usecase"
)

// CostoFijoHandler maneja los gastos recurrentes (protegido).
type CostoFijoHandler struct {
	uc *usecase.CostoFijoUseCase
}

// NewCostoFijoHandler construye el handler.
func NewCostoFijoHandler(uc *usecase.CostoFijoUseCase) *CostoFijoHandler {
	return &CostoFijoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear costo fijo
// @Tags         costos-fijos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CostoFijoRequest  true  "Nombre, monto y frecuencia (monthly|weekly|annual)"
// @Success      201   {object}  dto.CostoFijoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/costos-fijos [post]
func (h *CostoFijoHandler) Create(c *fiber.Ctx) error {
	var in dto.CostoFijoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar costos fijos con su equivalente mensual
// @Tags         costos-fijos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CostoFijoResponse
// @Router       /api/costos-fijos [get]
func (h *CostoFijoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar costo fijo
// @Tags         costos-fijos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del costo fijo"
// @Param        body  body  dto.CostoFijoRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CostoFijoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/costos-fijos/{id} [put]
func (h *CostoFijoHandler) Update(c *fiber.Ctx) error {
	var in dto.CostoFijoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar costo fijo
// @Tags         costos-fijos
// @Security     Bearer
// @Param        id  path  string  true  "ID del costo fijo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/costos-fijos/{id} [delete]
func (h *CostoFijoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MonthlyTotal godoc
// @Summary      Total mensual de costos fijos
// @Description  Normaliza a mes: semanal ×52/12, anual ÷12.
// @Tags         costos-fijos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonthlyTotalResponse
// @Router       /api/costos-fijos/monthly-total [get]
func (h *CostoFijoHandler) MonthlyTotal(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyTotal(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
