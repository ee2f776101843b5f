// Package xlsx exporta el listado unificado de transacciones a una planilla Excel.
package xlsx

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// SheetName nombre de la hoja exportada.
const SheetName = "Transações"

var headers = []any{
	"ID", "Tipo", "Data", "Hora", "SKU", "Descrição", "Quantidade", "Unidade",
	"Custo unitário", "Custo total", "Nota fiscal", "Usuário",
}

// ExcelizeWriter implementa report.TransactionSheetGenerator.
type ExcelizeWriter struct {
	loc *time.Location
}

// NewExcelizeWriter construye el writer. loc zona en la que se muestran fecha y hora (nil = UTC).
func NewExcelizeWriter(loc *time.Location) *ExcelizeWriter {
	if loc == nil {
		loc = time.UTC
	}
	return &ExcelizeWriter{loc: loc}
}

// GenerateTransactionsXLSX una fila por transacción; cantidades y costos como números.
func (w *ExcelizeWriter) GenerateTransactionsXLSX(ctx context.Context, txs []entity.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		at := tx.OccurredAt.In(w.loc)
		qty, _ := tx.Quantity.Float64()
		unit, _ := tx.UnitCost.Float64()
		total, _ := tx.TotalCost().Round(2).Float64()
		values := []any{
			tx.FormattedID(), string(tx.Type), at.Format("02/01/2006"), at.Format(entity.TimeLayout),
			tx.SKU, tx.Description, qty, tx.UnitMeasure,
			unit, total, tx.InvoiceCode, tx.Username,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	if len(txs) > 0 {
		last := len(txs) + 1
		if err := f.SetCellStyle(SheetName, "I2", fmt.Sprintf("J%d", last), moneyStyle); err != nil {
			return nil, fmt.Errorf("xlsx: estilo moneda: %w", err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "F", "F", 36); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}
