package rest

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

var (
	_ repository.StockRepository     = (*StockRepository)(nil)
	_ repository.StockCostRepository = (*StockCostRepository)(nil)
)

// StockRepository lectura de stocks/.
type StockRepository struct {
	client *api.Client
}

// NewStockRepository construye el repositorio.
func NewStockRepository(c *api.Client) *StockRepository {
	return &StockRepository{client: c}
}

type stockItemWire struct {
	CodSku                   flexString      `json:"codSku"`
	DescricaoItem            string          `json:"descricaoItem"`
	UnidMedida               string          `json:"unidMedida"`
	Active                   bool            `json:"active"`
	Quantity                 decimal.Decimal `json:"quantity"`
	EstimatedConsumptionTime *string         `json:"estimatedConsumptionTime"`
}

func (r *StockRepository) List(ctx context.Context, f repository.StockFilter) (*repository.Page[entity.StockItem], error) {
	var out wirePage[stockItemWire]
	if err := r.client.Get(ctx, pathStocks, f.Query(), &out); err != nil {
		return nil, fmt.Errorf("listar stocks: %w", err)
	}
	return toPage(&out, f.Page, func(w stockItemWire) (entity.StockItem, error) {
		consumption := ""
		if w.EstimatedConsumptionTime != nil {
			consumption = *w.EstimatedConsumptionTime
		}
		return entity.StockItem{
			SKU:                      string(w.CodSku),
			Description:              w.DescricaoItem,
			UnitMeasure:              w.UnidMedida,
			Active:                   w.Active,
			Quantity:                 w.Quantity,
			EstimatedConsumptionTime: format.ConsumptionTime(consumption),
		}, nil
	})
}

// StockCostRepository lectura de stock-costs/.
type StockCostRepository struct {
	client *api.Client
}

// NewStockCostRepository construye el repositorio.
func NewStockCostRepository(c *api.Client) *StockCostRepository {
	return &StockCostRepository{client: c}
}

type stockCostWire struct {
	Sku           flexString       `json:"sku"`
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnityMeasure  string           `json:"unityMeasure"`
	UnitCost      decimal.Decimal  `json:"unitCost"`
	TotalCost     decimal.Decimal  `json:"totalCost"`
	Active        bool             `json:"active"`
	LastEntryCost *decimal.Decimal `json:"lastEntryCost"`
}

func (r *StockCostRepository) List(ctx context.Context, f repository.StockCostFilter) (*repository.Page[entity.StockCost], error) {
	var out wirePage[stockCostWire]
	if err := r.client.Get(ctx, pathStockCosts, f.Query(), &out); err != nil {
		return nil, fmt.Errorf("listar stock-costs: %w", err)
	}
	return toPage(&out, f.Page, func(w stockCostWire) (entity.StockCost, error) {
		return entity.StockCost{
			SKU:           string(w.Sku),
			Description:   w.Description,
			Quantity:      w.Quantity,
			UnitMeasure:   w.UnityMeasure,
			UnitCost:      w.UnitCost,
			TotalCost:     w.TotalCost,
			Active:        w.Active,
			LastEntryCost: w.LastEntryCost,
		}, nil
	})
}
