package repository

import (
	"context"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// ItemRepository puerto hacia el recurso itens del backend.
type ItemRepository interface {
	List(ctx context.Context, f ItemFilter) (*Page[entity.Item], error)
	Get(ctx context.Context, sku string) (*entity.Item, error)
	Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) (*entity.Item, error)
	Delete(ctx context.Context, sku string) error
	// Costs consulta itens/{sku}/custo-medio/.
	Costs(ctx context.Context, sku string) (*entity.ItemCosts, error)
}

// SupplierRepository puerto hacia el recurso fornecedores.
type SupplierRepository interface {
	List(ctx context.Context, f SupplierFilter) (*Page[entity.Supplier], error)
	Create(ctx context.Context, s *entity.Supplier) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) (*entity.Supplier, error)
	Delete(ctx context.Context, id int64) error
}

// StockRepository puerto de lectura de niveles de stock.
type StockRepository interface {
	List(ctx context.Context, f StockFilter) (*Page[entity.StockItem], error)
}

// StockCostRepository puerto de lectura de stock-costs.
type StockCostRepository interface {
	List(ctx context.Context, f StockCostFilter) (*Page[entity.StockCost], error)
}
