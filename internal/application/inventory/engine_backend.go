package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// EngineBackend nombre del motor que delega en el backend.
const EngineBackend = "backend"

// BackendEngine delega validación, corrección y recálculo en los endpoints del
// backend. Cualquier respuesta sin éxito es fatal para la operación completa.
type BackendEngine struct {
	ops repository.TransactionOperations
	log zerolog.Logger
}

// NewBackendEngine construye el motor backend.
func NewBackendEngine(ops repository.TransactionOperations, log zerolog.Logger) *BackendEngine {
	return &BackendEngine{ops: ops, log: log}
}

// Name nombre del motor.
func (e *BackendEngine) Name() string { return EngineBackend }

// Validate consulta validate-stock-operation. Eliminar una salida siempre es válido.
func (e *BackendEngine) Validate(ctx context.Context, tx entity.Transaction, op repository.StockOperationType, newQuantity *decimal.Decimal) (*Validation, error) {
	if op == repository.StockOperationDelete && tx.Type == entity.TransactionExit {
		return &Validation{Valid: true, Message: "operación válida: el stock permanece positivo"}, nil
	}
	id := tx.ID
	res, err := e.ops.ValidateStockOperation(ctx, tx.SKU, op, &id, newQuantity)
	if err != nil {
		return nil, fmt.Errorf("validar %s: %w", tx.FormattedID(), err)
	}
	return &Validation{Valid: res.Valid, Message: res.Message}, nil
}

// Recalculate llama a recalculate-costs una única vez.
func (e *BackendEngine) Recalculate(ctx context.Context, tx entity.Transaction) (*RecalculationReport, error) {
	res, err := e.ops.RecalculateCosts(ctx, tx.ID, tx.SKU)
	if err != nil {
		return nil, fmt.Errorf("recálculo de %s: %w: %w", tx.SKU, domain.ErrRecalculationFailed, err)
	}
	report := &RecalculationReport{
		Engine:       EngineBackend,
		Success:      res.Success,
		Message:      res.Message,
		UpdatedCount: res.UpdatedTransactions,
	}
	if !res.Success {
		e.log.Error().Int64("transaction_id", tx.ID).Str("sku", tx.SKU).Str("message", res.Message).Msg("recálculo rechazado por el backend")
		return report, fmt.Errorf("recálculo de %s: %s: %w", tx.SKU, res.Message, domain.ErrRecalculationFailed)
	}
	e.log.Info().Int64("transaction_id", tx.ID).Str("sku", tx.SKU).Int("updated", res.UpdatedTransactions).Msg("costos recalculados por el backend")
	return report, nil
}

// Delete valida (entradas) y elimina con transactions/{id}/. El backend recalcula.
func (e *BackendEngine) Delete(ctx context.Context, tx entity.Transaction) (*Outcome, error) {
	if tx.Type == entity.TransactionEntry {
		v, err := e.Validate(ctx, tx, repository.StockOperationDelete, nil)
		if err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, &StockError{Validation: *v}
		}
	}
	res, err := e.ops.DeleteTransaction(ctx, tx.FormattedID())
	if err != nil {
		return nil, fmt.Errorf("eliminar %s: %w", tx.FormattedID(), err)
	}
	if !res.Success {
		return nil, fmt.Errorf("eliminar %s: %s: %w", tx.FormattedID(), res.Message, domain.ErrRecalculationFailed)
	}
	return &Outcome{Message: res.Message}, nil
}

// Update valida la nueva cantidad y aplica los cambios con transactions/{id}/update/.
// El endpoint no admite cambio de SKU.
func (e *BackendEngine) Update(ctx context.Context, tx entity.Transaction, changes entity.TransactionChanges) (*Outcome, error) {
	if changes.SKU != nil && *changes.SKU != tx.SKU {
		return nil, &FormError{Message: "el cambio de SKU no está soportado por el motor backend"}
	}
	if changes.Quantity != nil && !changes.Quantity.Equal(tx.Quantity) {
		v, err := e.Validate(ctx, tx, repository.StockOperationEdit, changes.Quantity)
		if err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, &StockError{Validation: *v}
		}
	}
	res, err := e.ops.UpdateTransaction(ctx, tx.FormattedID(), repository.TransactionUpdate{
		Quantity:    changes.Quantity,
		UnitCost:    changes.UnitCost,
		InvoiceCode: changes.InvoiceCode,
		SupplierID:  changes.SupplierID,
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar %s: %w", tx.FormattedID(), err)
	}
	if !res.Success {
		return nil, fmt.Errorf("actualizar %s: %s: %w", tx.FormattedID(), res.Message, domain.ErrRecalculationFailed)
	}
	return &Outcome{Message: res.Message}, nil
}
