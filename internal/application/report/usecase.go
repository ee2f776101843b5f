package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

// maxPages límite de páginas recorridas por exportación.
const maxPages = 500

// TransactionLister recorre todas las páginas del listado unificado. Lo implementa
// *inventory.TransactionUseCase.
type TransactionLister interface {
	ListAll(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error)
}

// ReportUseCase exportaciones: valoración del stock en PDF y transacciones en XLSX.
type ReportUseCase struct {
	costs  repository.StockCostRepository
	stocks repository.StockRepository
	txs    TransactionLister
	pdf    StockCostPDFGenerator
	sheet  TransactionSheetGenerator
	now    func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	costs repository.StockCostRepository,
	stocks repository.StockRepository,
	txs TransactionLister,
	pdf StockCostPDFGenerator,
	sheet TransactionSheetGenerator,
) *ReportUseCase {
	return &ReportUseCase{costs: costs, stocks: stocks, txs: txs, pdf: pdf, sheet: sheet, now: time.Now}
}

// StockCostPDF genera el informe de custos de estoque a la fecha del filtro.
// Valoración y niveles de stock (tiempo de consumo) se leen en paralelo.
//
// Retorna (pdfBytes, filename, nil) si todo sale bien.
func (uc *ReportUseCase) StockCostPDF(ctx context.Context, f repository.StockCostFilter, generatedBy string) ([]byte, string, error) {
	var (
		costs       []entity.StockCost
		consumption = map[string]string{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := uc.allStockCosts(gctx, f)
		if err != nil {
			return fmt.Errorf("report: stock-costs: %w", err)
		}
		costs = rows
		return nil
	})
	g.Go(func() error {
		levels, err := uc.allStocks(gctx, repository.StockFilter{StockDate: f.StockDate, SKU: f.SKU})
		if err != nil {
			return fmt.Errorf("report: stocks: %w", err)
		}
		for _, s := range levels {
			consumption[s.SKU] = s.EstimatedConsumptionTime
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	now := uc.now()
	r := &StockCostReport{
		Title:       "Custos de estoque",
		StockDate:   f.StockDate,
		GeneratedAt: now,
		GeneratedBy: generatedBy,
		Lines:       make([]StockCostLine, 0, len(costs)),
		Total:       decimal.Zero,
	}
	for _, c := range costs {
		label, ok := consumption[c.SKU]
		if !ok {
			label = format.ConsumptionTime("")
		}
		r.Lines = append(r.Lines, StockCostLine{
			SKU:           c.SKU,
			Description:   c.Description,
			UnitMeasure:   c.UnitMeasure,
			Quantity:      c.Quantity,
			UnitCost:      c.UnitCost,
			TotalCost:     c.TotalCost,
			LastEntryCost: c.LastEntryCost,
			Consumption:   label,
		})
		r.Total = r.Total.Add(c.TotalCost)
	}

	doc, err := uc.pdf.GenerateStockCostPDF(ctx, r)
	if err != nil {
		return nil, "", err
	}
	date := f.StockDate
	if date == "" {
		date = now.Format(entity.DateLayout)
	}
	return doc, fmt.Sprintf("custos-estoque-%s.pdf", date), nil
}

// TransactionsXLSX exporta todas las transacciones que cumplen el filtro.
func (uc *ReportUseCase) TransactionsXLSX(ctx context.Context, f repository.TransactionFilter) ([]byte, string, error) {
	txs, err := uc.txs.ListAll(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("report: transacciones: %w", err)
	}
	doc, err := uc.sheet.GenerateTransactionsXLSX(ctx, txs)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("transacoes-%s.xlsx", uc.now().Format(entity.DateLayout)), nil
}

func (uc *ReportUseCase) allStockCosts(ctx context.Context, f repository.StockCostFilter) ([]entity.StockCost, error) {
	out := make([]entity.StockCost, 0)
	for f.Page = 1; f.Page <= maxPages; f.Page++ {
		page, err := uc.costs.List(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		if !page.HasNext || len(page.Results) == 0 {
			break
		}
	}
	return out, nil
}

func (uc *ReportUseCase) allStocks(ctx context.Context, f repository.StockFilter) ([]entity.StockItem, error) {
	out := make([]entity.StockItem, 0)
	for f.Page = 1; f.Page <= maxPages; f.Page++ {
		page, err := uc.stocks.List(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		if !page.HasNext || len(page.Results) == 0 {
			break
		}
	}
	return out, nil
}
