package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// StockCostLine fila del informe de valoración del stock.
type StockCostLine struct {
	SKU           string
	Description   string
	UnitMeasure   string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	LastEntryCost *decimal.Decimal
	Consumption   string // tiempo de consumo estimado; "N/A" sin dato
}

// StockCostReport datos del PDF de custos de estoque.
type StockCostReport struct {
	Title       string
	StockDate   string // ISO; vacío = fecha de emisión
	GeneratedAt time.Time
	GeneratedBy string
	Lines       []StockCostLine
	Total       decimal.Decimal
}

// StockCostPDFGenerator genera el PDF del informe. Lo implementa *pdf.MarotoPDFGenerator.
type StockCostPDFGenerator interface {
	GenerateStockCostPDF(ctx context.Context, r *StockCostReport) ([]byte, error)
}

// TransactionSheetGenerator genera la planilla de transacciones. Lo implementa *xlsx.ExcelizeWriter.
type TransactionSheetGenerator interface {
	GenerateTransactionsXLSX(ctx context.Context, txs []entity.Transaction) ([]byte, error)
}
