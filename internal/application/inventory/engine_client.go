package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/inventory"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// EngineClient nombre del motor que recalcula en el gateway.
const EngineClient = "client"

// ClientEngine valida y recalcula reproduciendo el histórico completo del SKU y
// escribe cada salida afectada con PUT transacoes/{id}/.
type ClientEngine struct {
	txs repository.TransactionRepository
	log zerolog.Logger
}

// NewClientEngine construye el motor cliente.
func NewClientEngine(txs repository.TransactionRepository, log zerolog.Logger) *ClientEngine {
	return &ClientEngine{txs: txs, log: log}
}

// Name nombre del motor.
func (e *ClientEngine) Name() string { return EngineClient }

// Validate reproduce el histórico con la operación aplicada. Eliminar una salida
// nunca deja stock negativo.
func (e *ClientEngine) Validate(ctx context.Context, tx entity.Transaction, op repository.StockOperationType, newQuantity *decimal.Decimal) (*Validation, error) {
	if op == repository.StockOperationDelete && tx.Type == entity.TransactionExit {
		return &Validation{Valid: true, Message: "operación válida: el stock permanece positivo"}, nil
	}
	history, err := e.txs.History(ctx, tx.SKU)
	if err != nil {
		return nil, fmt.Errorf("histórico de %s: %w", tx.SKU, err)
	}
	sim := inventory.StockOperation{Kind: inventory.OperationDelete, TransactionID: tx.ID}
	if op == repository.StockOperationEdit {
		sim = inventory.StockOperation{Kind: inventory.OperationEdit, TransactionID: tx.ID, NewQuantity: newQuantity}
	}
	return toValidation(inventory.SimulateStock(history, sim)), nil
}

// validateInsert simula tx como transacción nueva en el histórico de su SKU.
func (e *ClientEngine) validateInsert(ctx context.Context, tx entity.Transaction) (*Validation, error) {
	history, err := e.txs.History(ctx, tx.SKU)
	if err != nil {
		return nil, fmt.Errorf("histórico de %s: %w", tx.SKU, err)
	}
	return toValidation(inventory.SimulateStock(history, inventory.StockOperation{Kind: inventory.OperationInsert, Insert: &tx})), nil
}

// Recalculate reescribe las salidas posteriores a tx con el histórico actual.
func (e *ClientEngine) Recalculate(ctx context.Context, tx entity.Transaction) (*RecalculationReport, error) {
	history, err := e.txs.History(ctx, tx.SKU)
	if err != nil {
		return nil, fmt.Errorf("histórico de %s: %w", tx.SKU, err)
	}
	report := e.persist(ctx, inventory.RecomputeExitCosts(history, inventory.PivotOf(tx)))
	if !report.Success {
		return report, fmt.Errorf("recálculo de %s: %w", tx.SKU, domain.ErrRecalculationFailed)
	}
	return report, nil
}

// Delete bloquea la eliminación si dejaría stock negativo; si no, borra detalle y
// cabecera y, para entradas, recalcula las salidas posteriores.
func (e *ClientEngine) Delete(ctx context.Context, tx entity.Transaction) (*Outcome, error) {
	if tx.Type == entity.TransactionEntry {
		v, err := e.Validate(ctx, tx, repository.StockOperationDelete, nil)
		if err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, &StockError{Validation: *v}
		}
	}

	if err := e.txs.DeleteDetail(ctx, tx.Type, tx.DetailID); err != nil {
		return nil, fmt.Errorf("eliminar %s: %w", tx.FormattedID(), err)
	}
	if err := e.txs.DeleteRecord(ctx, tx.ID); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("eliminar transacción %d: %w", tx.ID, err)
	}
	out := &Outcome{Message: fmt.Sprintf("transacción %s eliminada", tx.FormattedID())}
	if tx.Type == entity.TransactionExit {
		return out, nil
	}

	report, err := e.Recalculate(ctx, tx)
	out.Recalculation = report
	return out, err
}

// Update valida y aplica los cambios y recalcula el SKU afectado. Un cambio de SKU se
// valida como eliminación en el SKU de origen e inserción en el de destino, y se
// recalculan ambos. Una salida movida toma el costo medio del destino en su posición.
func (e *ClientEngine) Update(ctx context.Context, tx entity.Transaction, changes entity.TransactionChanges) (*Outcome, error) {
	if err := e.validateUpdate(ctx, tx, changes); err != nil {
		return nil, err
	}

	rec, err := e.txs.GetRecord(ctx, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("transacción %d: %w", tx.ID, err)
	}
	updated := changes.Apply(*rec)
	if updated.SKU != tx.SKU && tx.Type == entity.TransactionExit && changes.UnitCost == nil {
		cost, err := e.costAt(ctx, updated.SKU, tx)
		if err != nil {
			return nil, err
		}
		updated.UnitCost = cost
	}
	if _, err := e.txs.UpdateRecord(ctx, &updated); err != nil {
		return nil, fmt.Errorf("actualizar transacción %d: %w", tx.ID, err)
	}
	out := &Outcome{Message: fmt.Sprintf("transacción %s actualizada", tx.FormattedID())}

	report, err := e.Recalculate(ctx, tx)
	out.Recalculation = report
	if err != nil {
		return out, err
	}
	if updated.SKU != tx.SKU {
		moved := tx
		moved.SKU = updated.SKU
		target, err := e.Recalculate(ctx, moved)
		out.Recalculation = mergeReports(report, target)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// costAt costo medio de sku en la posición de tx, sin contar tx.
func (e *ClientEngine) costAt(ctx context.Context, sku string, tx entity.Transaction) (decimal.Decimal, error) {
	history, err := e.txs.History(ctx, sku)
	if err != nil {
		return decimal.Zero, fmt.Errorf("histórico de %s: %w", sku, err)
	}
	others := make([]entity.Transaction, 0, len(history))
	for _, h := range history {
		if h.ID != tx.ID {
			others = append(others, h)
		}
	}
	return inventory.AverageCostBefore(others, inventory.PivotOf(tx)), nil
}

func (e *ClientEngine) validateUpdate(ctx context.Context, tx entity.Transaction, changes entity.TransactionChanges) error {
	if changes.SKU != nil && *changes.SKU != tx.SKU {
		v, err := e.Validate(ctx, tx, repository.StockOperationDelete, nil)
		if err != nil {
			return err
		}
		if !v.Valid {
			return &StockError{Validation: *v}
		}
		moved := tx
		moved.SKU = *changes.SKU
		if changes.Quantity != nil {
			moved.Quantity = *changes.Quantity
		}
		v, err = e.validateInsert(ctx, moved)
		if err != nil {
			return err
		}
		if !v.Valid {
			return &StockError{Validation: *v}
		}
		return nil
	}
	if changes.Quantity != nil && !changes.Quantity.Equal(tx.Quantity) {
		v, err := e.Validate(ctx, tx, repository.StockOperationEdit, changes.Quantity)
		if err != nil {
			return err
		}
		if !v.Valid {
			return &StockError{Validation: *v}
		}
	}
	return nil
}

// persist escribe cada salida en orden y se detiene en el primer fallo.
func (e *ClientEngine) persist(ctx context.Context, updates []inventory.CostUpdate) *RecalculationReport {
	report := &RecalculationReport{Engine: EngineClient, Updated: []inventory.CostUpdate{}}
	for i, u := range updates {
		if err := e.writeCost(ctx, u); err != nil {
			e.log.Error().Err(err).Int64("transaction_id", u.TransactionID).Str("sku", u.SKU).Msg("recálculo interrumpido")
			report.Failed = &FailedUpdate{Update: u, Err: err}
			report.NotAttempted = append([]inventory.CostUpdate{}, updates[i+1:]...)
			report.UpdatedCount = len(report.Updated)
			report.Message = fmt.Sprintf("recálculo interrumpido en la transacción %d: %d de %d salidas actualizadas", u.TransactionID, len(report.Updated), len(updates))
			return report
		}
		e.log.Info().
			Int64("transaction_id", u.TransactionID).
			Str("sku", u.SKU).
			Str("previous_cost", u.PreviousCost.String()).
			Str("new_cost", u.NewCost.String()).
			Msg("costo de salida recalculado")
		report.Updated = append(report.Updated, u)
	}
	report.Success = true
	report.UpdatedCount = len(report.Updated)
	report.Message = fmt.Sprintf("%d salidas recalculadas", report.UpdatedCount)
	return report
}

// writeCost relee la cabecera y reescribe sólo el costo unitario.
func (e *ClientEngine) writeCost(ctx context.Context, u inventory.CostUpdate) error {
	rec, err := e.txs.GetRecord(ctx, u.TransactionID)
	if err != nil {
		return err
	}
	rec.UnitCost = u.NewCost
	_, err = e.txs.UpdateRecord(ctx, rec)
	return err
}

func toValidation(c inventory.StockCheck) *Validation {
	return &Validation{Valid: c.Valid, Message: c.Message(), DependentExits: c.DependentExits}
}

func mergeReports(a, b *RecalculationReport) *RecalculationReport {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &RecalculationReport{
		Engine:       a.Engine,
		Success:      a.Success && b.Success,
		Message:      b.Message,
		Updated:      append(append([]inventory.CostUpdate{}, a.Updated...), b.Updated...),
		Failed:       b.Failed,
		NotAttempted: b.NotAttempted,
		UpdatedCount: a.UpdatedCount + b.UpdatedCount,
	}
}
