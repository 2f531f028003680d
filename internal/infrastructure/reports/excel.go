// Package reports genera los reportes de ventas descargables: Excel (excelize)
// y PDF (Maroto v2). Ambos trabajan sobre los totales congelados de cada venta.
package reports

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jmcastano/costeo-api/internal/application/dto"
)

const sheetVentas = "Ventas"

// ExcelExporter genera el libro de ventas en formato xlsx.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// ExportVentas arma una hoja con una fila por venta y una fila final de totales.
func (e *ExcelExporter) ExportVentas(ventas []dto.VentaResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetVentas); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headers := []any{"Fecha", "Producto", "Cantidad", "Precio venta", "Costo unitario", "Ingreso", "Costo total", "Ganancia", "Margen %"}
	if err := f.SetSheetRow(sheetVentas, "A1", &headers); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	totalIncome, totalCost, totalProfit := decimal.Zero, decimal.Zero, decimal.Zero
	for i, v := range ventas {
		cell := fmt.Sprintf("A%d", i+2)
		rowVals := []any{
			v.SaleDate.Format("2006-01-02"),
			v.ProductoName,
			v.Quantity,
			v.PriceSold.InexactFloat64(),
			v.CostUnit.InexactFloat64(),
			v.TotalIncome.InexactFloat64(),
			v.TotalCost.InexactFloat64(),
			v.Profit.InexactFloat64(),
			v.ProfitMargin.Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetVentas, cell, &rowVals); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
		totalIncome = totalIncome.Add(v.TotalIncome)
		totalCost = totalCost.Add(v.TotalCost)
		totalProfit = totalProfit.Add(v.Profit)
	}

	totalsCell := fmt.Sprintf("A%d", len(ventas)+2)
	totalsRow := []any{
		"TOTAL", "", "", "", "",
		totalIncome.InexactFloat64(),
		totalCost.InexactFloat64(),
		totalProfit.InexactFloat64(),
		"",
	}
	if err := f.SetSheetRow(sheetVentas, totalsCell, &totalsRow); err != nil {
		return nil, fmt.Errorf("excel: totales: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
