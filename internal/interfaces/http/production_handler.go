package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/application/production"
)

// ProductionHandler maneja las corridas de producción y su historial.
type ProductionHandler struct {
	uc *production.ProduceUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProduceUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Produce godoc
// @Summary      Fabricar unidades de un producto
// @Description  Consume lotes según la receta (LIFO u orden manual) en una transacción todo-o-nada y devuelve el costo real de la corrida.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProduceRequest  true  "Cantidad y orden manual opcional por insumo"
// @Success      200   {object}  dto.ProductionResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/produce [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Produce(c.UserContext(), GetUserID(c), c.Params("id"), in.Quantity, in.ManualOrder)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.ProductionRecordResponse
// @Router       /api/production-history [get]
func (h *ProductionHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(GetUserID(c), c.Query("producto_id"), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
