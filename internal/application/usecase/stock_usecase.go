package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

// StockUseCase consulta de niveles de stock.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// List niveles de stock con el tiempo de consumo ya normalizado.
func (uc *StockUseCase) List(ctx context.Context, f repository.StockFilter) (dto.PageResponse[dto.StockItemResponse], error) {
	page, err := uc.repo.List(ctx, f)
	if err != nil {
		return dto.PageResponse[dto.StockItemResponse]{}, err
	}
	return dto.NewPageResponse(page, ToStockItemResponse), nil
}

// ToStockItemResponse mapea un nivel de stock.
func ToStockItemResponse(s entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		CodSku:                   s.SKU,
		DescricaoItem:            s.Description,
		UnidMedida:               s.UnitMeasure,
		Active:                   s.Active,
		Quantity:                 s.Quantity,
		QuantityFormatted:        format.Integer(s.Quantity),
		EstimatedConsumptionTime: format.ConsumptionTime(s.EstimatedConsumptionTime),
	}
}

// StockCostUseCase consulta de la valoración del stock.
type StockCostUseCase struct {
	repo repository.StockCostRepository
	now  func() time.Time
}

// NewStockCostUseCase construye el caso de uso.
func NewStockCostUseCase(repo repository.StockCostRepository) *StockCostUseCase {
	return &StockCostUseCase{repo: repo, now: time.Now}
}

// List valoración a la fecha del filtro (vacía = hoy según el backend).
func (uc *StockCostUseCase) List(ctx context.Context, f repository.StockCostFilter) (*dto.StockCostListResponse, error) {
	page, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.StockCostListResponse{
		Results:    make([]dto.StockCostResponse, 0, len(page.Results)),
		Total:      page.Count,
		Page:       page.Page,
		HasNext:    page.HasNext,
		TotalValue: decimal.Zero,
	}
	for _, row := range page.Results {
		out.Results = append(out.Results, ToStockCostResponse(row))
		out.TotalValue = out.TotalValue.Add(row.TotalCost)
	}
	return out, nil
}

// LastEntryCost costo de la última entrada del SKU a hoy; nil si no hay entradas.
// Se usa para sugerir el costo en el formulario de entrada.
func (uc *StockCostUseCase) LastEntryCost(ctx context.Context, sku string) (*decimal.Decimal, error) {
	page, err := uc.repo.List(ctx, repository.StockCostFilter{
		SKU:       sku,
		StockDate: uc.now().Format(entity.DateLayout),
	})
	if err != nil {
		return nil, err
	}
	for _, row := range page.Results {
		if row.SKU == sku {
			return row.LastEntryCost, nil
		}
	}
	return nil, nil
}

// ToStockCostResponse mapea una fila de stock-costs.
func ToStockCostResponse(c entity.StockCost) dto.StockCostResponse {
	return dto.StockCostResponse{
		Sku:                c.SKU,
		Description:        c.Description,
		Quantity:           c.Quantity,
		UnityMeasure:       c.UnitMeasure,
		UnitCost:           c.UnitCost,
		TotalCost:          c.TotalCost,
		TotalCostFormatted: format.Currency(c.TotalCost),
		Active:             c.Active,
		LastEntryCost:      c.LastEntryCost,
	}
}
