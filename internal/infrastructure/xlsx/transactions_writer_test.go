package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/xlsx"
)

func TestExcelizeWriter_UnaFilaPorTransaccion(t *testing.T) {
	txs := []entity.Transaction{
		{ID: 10, DetailID: 3, Type: entity.TransactionEntry, SKU: "A", Description: "Parafuso", UnitMeasure: "UN",
			Quantity: decimal.NewFromInt(10), UnitCost: decimal.RequireFromString("1.5"),
			OccurredAt: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC), InvoiceCode: "NF1", Username: "ana"},
		{ID: 11, DetailID: 7, Type: entity.TransactionExit, SKU: "A", Description: "Parafuso", UnitMeasure: "UN",
			Quantity: decimal.NewFromInt(2), UnitCost: decimal.RequireFromString("1.5"),
			OccurredAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	doc, err := xlsx.NewExcelizeWriter(nil).GenerateTransactionsXLSX(context.Background(), txs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetName}, f.GetSheetList())
	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "entrada-3", rows[1][0])
	assert.Equal(t, "01/03/2024", rows[1][2])
	assert.Equal(t, "08:30:00", rows[1][3])
	assert.Equal(t, "saida-7", rows[2][0])

	total, err := f.GetCellValue(xlsx.SheetName, "J2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "15", total)
}

func TestExcelizeWriter_SinTransacciones(t *testing.T) {
	doc, err := xlsx.NewExcelizeWriter(time.UTC).GenerateTransactionsXLSX(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
