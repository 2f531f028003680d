package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/application/inventory"
)

// LoteHandler maneja el libro de lotes: compras, listado LIFO,
// historial de precios y eliminación de lotes intactos.
type LoteHandler struct {
	uc *inventory.LoteUseCase
}

// NewLoteHandler construye el handler.
func NewLoteHandler(uc *inventory.LoteUseCase) *LoteHandler {
	return &LoteHandler{uc: uc}
}

// RecordPurchase godoc
// @Summary      Registrar compra de un insumo (crea un lote)
// @Description  Cantidad y precio total en la unidad de compra; la conversión a unidad mínima y el precio unitario se fijan al insertar.
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.RecordPurchaseRequest  true  "Cantidad, precio total y fecha opcional"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/lotes [post]
func (h *LoteHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordPurchase(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAvailable godoc
// @Summary      Listar lotes disponibles de un insumo en orden de consumo
// @Description  Orden LIFO por defecto; ?order=id1,id2 antepone esos lotes y el resto sigue en LIFO.
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del insumo"
// @Param        order  query  string  false  "IDs de lote separados por coma, en el orden deseado"
// @Success      200    {array}  dto.LoteResponse
// @Router       /api/insumos/{id}/lotes [get]
func (h *LoteHandler) ListAvailable(c *fiber.Ctx) error {
	var order []string
	if raw := c.Query("order"); raw != "" {
		order = splitCSV(raw)
	}
	out, err := h.uc.ListAvailable(GetUserID(c), c.Params("id"), order)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PriceHistory godoc
// @Summary      Historial de precios de compra de un insumo
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {array}  dto.PriceHistoryPoint
// @Router       /api/insumos/{id}/price-history [get]
func (h *LoteHandler) PriceHistory(c *fiber.Ctx) error {
	out, err := h.uc.PriceHistory(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un lote intacto
// @Description  Solo se puede eliminar un lote sin consumos (remanente == comprado); si ya fue tocado responde 409.
// @Tags         lotes
// @Security     Bearer
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [delete]
func (h *LoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteLote(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
