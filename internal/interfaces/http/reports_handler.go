package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/costeo-api/internal/application/auth"
	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/application/sales"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/infrastructure/reports"
)

// ReportsHandler genera los reportes de ventas descargables (protegido).
type ReportsHandler struct {
	ventaUC *sales.VentaUseCase
	authUC  *auth.AuthUseCase
	excel   *reports.ExcelExporter
	pdf     *reports.PDFReportGenerator
}

// NewReportsHandler construye el handler.
func NewReportsHandler(ventaUC *sales.VentaUseCase, authUC *auth.AuthUseCase, excel *reports.ExcelExporter, pdf *reports.PDFReportGenerator) *ReportsHandler {
	return &ReportsHandler{ventaUC: ventaUC, authUC: authUC, excel: excel, pdf: pdf}
}

// VentasExcel godoc
// @Summary      Exportar ventas a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Success      200  {file}  binary
// @Router       /api/reports/ventas.xlsx [get]
func (h *ReportsHandler) VentasExcel(c *fiber.Ctx) error {
	ventas, err := h.listVentas(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.excel.ExportVentas(ventas)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.xlsx"`)
	return c.Send(data)
}

// VentasPDF godoc
// @Summary      Exportar ventas a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Success      200  {file}  binary
// @Router       /api/reports/ventas.pdf [get]
func (h *ReportsHandler) VentasPDF(c *fiber.Ctx) error {
	ventas, err := h.listVentas(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.authUC.Me(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	period := periodLabel(c)
	data, err := h.pdf.GenerateVentasReport(user.Name, period, ventas)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas.pdf"`)
	return c.Send(data)
}

func (h *ReportsHandler) listVentas(c *fiber.Ctx) ([]dto.VentaResponse, error) {
	filter, err := parseVentaFilter(c)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida, formato esperado YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return h.ventaUC.List(GetUserID(c), filter)
}

func periodLabel(c *fiber.Ctx) string {
	start, end := c.Query("start_date"), c.Query("end_date")
	switch {
	case start != "" && end != "":
		return start + " a " + end
	case start != "":
		return "desde " + start
	case end != "":
		return "hasta " + end
	}
	return "todas las ventas"
}
