package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/inventory"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// UnifiedEndpoint nombre lógico del listado unificado en la caché.
const UnifiedEndpoint = "unified-transactions"

// TransactionCache caché de listados unificados (clave = endpoint?query).
type TransactionCache interface {
	Get(key string) (*repository.Page[entity.Transaction], bool)
	Set(key string, page *repository.Page[entity.Transaction])
	ClearEndpoint(endpoint string) int
}

// AverageCoster costo medio vigente de un SKU. Lo implementa *usecase.ItemUseCase.
type AverageCoster interface {
	AverageCost(ctx context.Context, sku string) (*dto.ItemCostResponse, error)
}

// CostEngine valida correcciones y recalcula los costos de las salidas posteriores.
// Hay dos implementaciones: ClientEngine reproduce el histórico en el gateway y
// BackendEngine delega en los endpoints del backend.
type CostEngine interface {
	Name() string
	// Validate simula la operación sobre el histórico del SKU de tx.
	Validate(ctx context.Context, tx entity.Transaction, op repository.StockOperationType, newQuantity *decimal.Decimal) (*Validation, error)
	// Recalculate reescribe el costo de las salidas posteriores a tx.
	Recalculate(ctx context.Context, tx entity.Transaction) (*RecalculationReport, error)
	// Delete elimina tx (detalle y cabecera) y recalcula si corresponde.
	Delete(ctx context.Context, tx entity.Transaction) (*Outcome, error)
	// Update aplica los cambios sobre tx y recalcula si corresponde.
	Update(ctx context.Context, tx entity.Transaction, changes entity.TransactionChanges) (*Outcome, error)
}

// Validation resultado de validar una operación.
type Validation struct {
	Valid          bool
	Message        string
	DependentExits []entity.Transaction
}

// FailedUpdate salida cuya escritura falló.
type FailedUpdate struct {
	Update inventory.CostUpdate
	Err    error
}

// RecalculationReport informe del recálculo. En el motor cliente la persistencia se
// detiene en el primer fallo: Updated ya se escribieron, Failed es la que falló y
// NotAttempted las que quedaron sin escribir.
type RecalculationReport struct {
	Engine       string
	Success      bool
	Message      string
	Updated      []inventory.CostUpdate
	Failed       *FailedUpdate
	NotAttempted []inventory.CostUpdate
	UpdatedCount int
}

// Outcome resultado de una corrección (delete/update).
type Outcome struct {
	Message       string
	Recalculation *RecalculationReport
}
