package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/report"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/pdf"
)

func TestMarotoPDFGenerator_GeneraDocumento(t *testing.T) {
	last := decimal.RequireFromString("2.10")
	r := &report.StockCostReport{
		Title:       "Custos de estoque",
		StockDate:   "2024-01-31",
		GeneratedAt: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		GeneratedBy: "ana",
		Lines: []report.StockCostLine{
			{SKU: "A", Description: "Parafuso", UnitMeasure: "UN", Quantity: decimal.NewFromInt(10), UnitCost: decimal.RequireFromString("1.5"), TotalCost: decimal.NewFromInt(15), Consumption: "3 semanas"},
			{SKU: "B", Description: "Porca", UnitMeasure: "UN", Quantity: decimal.NewFromInt(4), UnitCost: decimal.RequireFromString("2.25"), TotalCost: decimal.NewFromInt(9), LastEntryCost: &last},
		},
		Total: decimal.NewFromInt(24),
	}

	doc, err := pdf.NewMarotoPDFGenerator(nil).GenerateStockCostPDF(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestMarotoPDFGenerator_SinLineas(t *testing.T) {
	doc, err := pdf.NewMarotoPDFGenerator(time.UTC).GenerateStockCostPDF(context.Background(), &report.StockCostReport{
		Title: "Custos de estoque", GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)

	_, err = pdf.NewMarotoPDFGenerator(nil).GenerateStockCostPDF(context.Background(), nil)
	assert.Error(t, err)
}
