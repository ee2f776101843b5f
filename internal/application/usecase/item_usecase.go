package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

// Origen del costo medio devuelto por AverageCost.
const (
	CostSourceItem      = "custo-medio"
	CostSourceStockCost = "stock-costs"
)

// ItemUseCase casos de uso CRUD para itens y consulta de costos.
type ItemUseCase struct {
	repo  repository.ItemRepository
	costs repository.StockCostRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, costs repository.StockCostRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, costs: costs}
}

// List listado paginado de itens.
func (uc *ItemUseCase) List(ctx context.Context, f repository.ItemFilter) (dto.PageResponse[dto.ItemResponse], error) {
	page, err := uc.repo.List(ctx, f)
	if err != nil {
		return dto.PageResponse[dto.ItemResponse]{}, err
	}
	return dto.NewPageResponse(page, toItemResponse), nil
}

// Search búsqueda libre sobre el catálogo (primera página).
func (uc *ItemUseCase) Search(ctx context.Context, term string) ([]dto.ItemResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.ItemResponse{}, nil
	}
	page, err := uc.repo.List(ctx, repository.ItemFilter{Page: 1, Search: term})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResponse(page, toItemResponse).Results, nil
}

// Get obtiene un item por SKU.
func (uc *ItemUseCase) Get(ctx context.Context, sku string) (*dto.ItemResponse, error) {
	item, err := uc.repo.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	out := toItemResponse(*item)
	return &out, nil
}

// Create da de alta un item. Sin active explícito se crea activo.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	in.CodSku = strings.TrimSpace(in.CodSku)
	in.DescricaoItem = strings.TrimSpace(in.DescricaoItem)
	in.UnidMedida = strings.TrimSpace(in.UnidMedida)
	if in.CodSku == "" || in.DescricaoItem == "" || in.UnidMedida == "" {
		return nil, fmt.Errorf("sku, descripción y unidad son obligatorios: %w", domain.ErrInvalidInput)
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	item, err := uc.repo.Create(ctx, &entity.Item{
		SKU:         in.CodSku,
		Description: in.DescricaoItem,
		UnitMeasure: in.UnidMedida,
		Active:      active,
	})
	if err != nil {
		return nil, err
	}
	out := toItemResponse(*item)
	return &out, nil
}

// Update aplica cambios parciales. El backend espera el item completo (PUT), así que
// se lee el actual y se combinan los campos.
func (uc *ItemUseCase) Update(ctx context.Context, sku string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if in.DescricaoItem != nil {
		if strings.TrimSpace(*in.DescricaoItem) == "" {
			return nil, fmt.Errorf("descripción vacía: %w", domain.ErrInvalidInput)
		}
		item.Description = strings.TrimSpace(*in.DescricaoItem)
	}
	if in.UnidMedida != nil {
		item.UnitMeasure = strings.TrimSpace(*in.UnidMedida)
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	updated, err := uc.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	out := toItemResponse(*updated)
	return &out, nil
}

// Delete elimina un item.
func (uc *ItemUseCase) Delete(ctx context.Context, sku string) error {
	return uc.repo.Delete(ctx, sku)
}

// AverageCost costo medio actual del SKU. Si custo-medio no responde se usa el costo
// unitario de stock-costs; sin datos en ninguno devuelve cero.
func (uc *ItemUseCase) AverageCost(ctx context.Context, sku string) (*dto.ItemCostResponse, error) {
	costs, err := uc.repo.Costs(ctx, sku)
	if err == nil {
		return toItemCostResponse(sku, *costs, CostSourceItem), nil
	}
	if errors.Is(err, domain.ErrSessionExpired) {
		return nil, err
	}

	page, ferr := uc.costs.List(ctx, repository.StockCostFilter{SKU: sku})
	if ferr != nil {
		return nil, fmt.Errorf("costo medio de %s: %w", sku, errors.Join(err, ferr))
	}
	var fallback entity.ItemCosts
	for _, row := range page.Results {
		if row.SKU != sku {
			continue
		}
		fallback.AverageCost = row.UnitCost
		if row.LastEntryCost != nil {
			fallback.LastEntryCost = *row.LastEntryCost
		}
		break
	}
	return toItemCostResponse(sku, fallback, CostSourceStockCost), nil
}

func toItemResponse(it entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		CodSku:                   it.SKU,
		DescricaoItem:            it.Description,
		UnidMedida:               it.UnitMeasure,
		Active:                   it.Active,
		Quantity:                 it.Quantity,
		EstimatedConsumptionTime: it.EstimatedConsumptionTime,
	}
}

func toItemCostResponse(sku string, c entity.ItemCosts, source string) *dto.ItemCostResponse {
	return &dto.ItemCostResponse{
		Sku:                    sku,
		AverageCost:            c.AverageCost,
		AverageCostFormatted:   format.Currency(c.AverageCost),
		LastEntryCost:          c.LastEntryCost,
		LastEntryCostFormatted: format.Currency(c.LastEntryCost),
		Source:                 source,
	}
}
