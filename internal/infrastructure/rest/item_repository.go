package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

var _ repository.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implementación REST de repository.ItemRepository.
type ItemRepository struct {
	client *api.Client
}

// NewItemRepository construye el repositorio.
func NewItemRepository(c *api.Client) *ItemRepository {
	return &ItemRepository{client: c}
}

type itemWire struct {
	CodSku                   flexString       `json:"codSku"`
	DescricaoItem            string           `json:"descricaoItem"`
	UnidMedida               string           `json:"unidMedida"`
	Active                   *bool            `json:"active,omitempty"`
	Quantity                 *decimal.Decimal `json:"quantity,omitempty"`
	EstimatedConsumptionTime *string          `json:"estimatedConsumptionTime,omitempty"`
}

func (w itemWire) toEntity() entity.Item {
	it := entity.Item{
		SKU:         string(w.CodSku),
		Description: w.DescricaoItem,
		UnitMeasure: w.UnidMedida,
		Active:      w.Active == nil || *w.Active,
		Quantity:    w.Quantity,
	}
	if w.EstimatedConsumptionTime != nil {
		it.EstimatedConsumptionTime = format.ConsumptionTime(*w.EstimatedConsumptionTime)
	}
	return it
}

type itemRequest struct {
	CodSku        string `json:"codSku"`
	DescricaoItem string `json:"descricaoItem"`
	UnidMedida    string `json:"unidMedida"`
	Active        bool   `json:"active"`
}

func itemBody(it *entity.Item) itemRequest {
	return itemRequest{CodSku: it.SKU, DescricaoItem: it.Description, UnidMedida: it.UnitMeasure, Active: it.Active}
}

func itemPath(sku string) string {
	return pathItems + url.PathEscape(sku) + "/"
}

func (r *ItemRepository) List(ctx context.Context, f repository.ItemFilter) (*repository.Page[entity.Item], error) {
	var out wirePage[itemWire]
	if err := r.client.Get(ctx, pathItems, f.Query(), &out); err != nil {
		return nil, fmt.Errorf("listar itens: %w", err)
	}
	return toPage(&out, f.Page, func(w itemWire) (entity.Item, error) { return w.toEntity(), nil })
}

func (r *ItemRepository) Get(ctx context.Context, sku string) (*entity.Item, error) {
	var out itemWire
	if err := r.client.Get(ctx, itemPath(sku), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener item %s: %w", sku, err)
	}
	it := out.toEntity()
	return &it, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	var out itemWire
	if err := r.client.Post(ctx, pathItems, itemBody(item), &out); err != nil {
		return nil, fmt.Errorf("crear item: %w", err)
	}
	it := out.toEntity()
	return &it, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	var out itemWire
	if err := r.client.Put(ctx, itemPath(item.SKU), itemBody(item), &out); err != nil {
		return nil, fmt.Errorf("actualizar item %s: %w", item.SKU, err)
	}
	it := out.toEntity()
	return &it, nil
}

func (r *ItemRepository) Delete(ctx context.Context, sku string) error {
	if err := r.client.Delete(ctx, itemPath(sku)); err != nil {
		return fmt.Errorf("eliminar item %s: %w", sku, err)
	}
	return nil
}

func (r *ItemRepository) Costs(ctx context.Context, sku string) (*entity.ItemCosts, error) {
	var out struct {
		CustoMedio         decimal.Decimal `json:"custoMedio"`
		CustoUltimaEntrada decimal.Decimal `json:"custoUltimaEntrada"`
	}
	if err := r.client.Get(ctx, itemPath(sku)+"custo-medio/", nil, &out); err != nil {
		return nil, fmt.Errorf("custo-medio %s: %w", sku, err)
	}
	return &entity.ItemCosts{AverageCost: out.CustoMedio, LastEntryCost: out.CustoUltimaEntrada}, nil
}
