package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/inventory"
)

// Mensajes del formulario de transacción.
const (
	msgMissingProduct  = "seleccione un producto"
	msgInvalidQuantity = "la cantidad debe ser mayor que cero"
	msgInvalidCost     = "el costo unitario debe ser mayor que cero"
	msgMissingSupplier = "seleccione un fornecedor"
	msgMissingInvoice  = "informe el número de la nota fiscal"
	msgNoInventoryUser = "no fue posible asociar su cuenta a un usuario del sistema"
)

// Create registra una entrada o una salida: cabecera (transacoes) y luego detalle
// (entradas/saidas) a nombre del usuario de inventário de la sesión. Si el detalle
// falla la cabecera se elimina. Las salidas toman el costo medio vigente y se validan
// contra el stock disponible. Si la transacción queda antes de otras ya registradas se
// recalculan las salidas posteriores.
func (uc *TransactionUseCase) Create(ctx context.Context, in dto.CreateTransactionRequest) (*dto.MutationResponse, error) {
	in.Sku = strings.TrimSpace(in.Sku)
	in.CodNf = strings.TrimSpace(in.CodNf)
	if msg := validateForm(in); msg != "" {
		return nil, &FormError{Message: msg}
	}
	occurredAt, err := uc.occurredAt(in.Date, in.Time)
	if err != nil {
		return nil, &FormError{Message: err.Error()}
	}

	kind := entity.TransactionEntry
	if !in.IsEntry {
		kind = entity.TransactionExit
	}
	candidate := entity.Transaction{
		ID:          math.MaxInt64, // aún sin id: va después de cualquier otra en el mismo instante
		Type:        kind,
		SKU:         in.Sku,
		Quantity:    in.Quantity,
		OccurredAt:  occurredAt,
		SupplierID:  in.SupplierID,
		InvoiceCode: in.CodNf,
	}
	if in.UnitCost != nil {
		candidate.UnitCost = *in.UnitCost
	}

	var (
		user    *entity.InventoryUser
		history []entity.Transaction
		average *dto.ItemCostResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := uc.users.InventoryUser(gctx)
		if err != nil {
			return fmt.Errorf("usuario de inventário: %w", err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		h, err := uc.txs.History(gctx, in.Sku)
		if err != nil {
			return fmt.Errorf("histórico de %s: %w", in.Sku, err)
		}
		history = h
		return nil
	})
	if kind == entity.TransactionExit {
		g.Go(func() error {
			c, err := uc.costs.AverageCost(gctx, in.Sku)
			if err != nil {
				return fmt.Errorf("costo medio de %s: %w", in.Sku, err)
			}
			average = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if user == nil || user.ID == 0 {
		return nil, &FormError{Message: msgNoInventoryUser}
	}

	retroactive := hasLater(history, inventory.PivotOf(candidate))
	if kind == entity.TransactionExit {
		check := inventory.SimulateStock(history, inventory.StockOperation{Kind: inventory.OperationInsert, Insert: &candidate})
		if !check.Valid {
			return nil, fmt.Errorf("%s: %w", check.Message(), domain.ErrInsufficientStock)
		}
		candidate.UnitCost = exitCost(history, candidate, average, retroactive)
		if !candidate.UnitCost.GreaterThan(decimal.Zero) {
			return nil, &FormError{Message: msgInvalidCost}
		}
	}

	created, err := uc.persistNew(ctx, candidate, user.ID)
	if err != nil {
		return nil, err
	}
	uc.invalidate()
	uc.log.Info().
		Str("id", created.FormattedID()).
		Str("sku", created.SKU).
		Str("quantity", created.Quantity.String()).
		Str("unit_cost", created.UnitCost.String()).
		Msg("transacción registrada")

	out := &Outcome{Message: fmt.Sprintf("transacción %s registrada", created.FormattedID())}
	if retroactive {
		report, rerr := uc.engine.Recalculate(ctx, *created)
		out.Recalculation = report
		if rerr != nil {
			return toMutationResponse(out, created, rerr), rerr
		}
	}
	return toMutationResponse(out, created, nil), nil
}

// persistNew crea cabecera y detalle; si el detalle falla elimina la cabecera.
func (uc *TransactionUseCase) persistNew(ctx context.Context, tx entity.Transaction, userID int64) (*entity.Transaction, error) {
	rec, err := uc.txs.CreateRecord(ctx, &entity.TransactionRecord{
		SKU:         tx.SKU,
		Quantity:    tx.Quantity,
		UnitCost:    tx.UnitCost,
		InvoiceCode: tx.InvoiceCode,
		SupplierID:  tx.SupplierID,
	})
	if err != nil {
		return nil, fmt.Errorf("crear transacción: %w", err)
	}
	detail, err := uc.txs.CreateDetail(ctx, &entity.TransactionDetail{
		Type:          tx.Type,
		TransactionID: rec.ID,
		UserID:        userID,
		OccurredAt:    tx.OccurredAt,
	})
	if err != nil {
		if derr := uc.txs.DeleteRecord(ctx, rec.ID); derr != nil {
			uc.log.Error().Err(derr).Int64("transaction_id", rec.ID).Msg("no se pudo revertir la cabecera huérfana")
			return nil, fmt.Errorf("crear %s: %w", tx.Type, errors.Join(err, derr))
		}
		return nil, fmt.Errorf("crear %s: %w", tx.Type, err)
	}
	tx.ID = rec.ID
	tx.DetailID = detail.ID
	tx.UnitCost = rec.UnitCost
	tx.OccurredAt = detail.OccurredAt
	return &tx, nil
}

// occurredAt instante del formulario; sin fecha es ahora.
func (uc *TransactionUseCase) occurredAt(date, clock string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return uc.now().In(uc.loc).Truncate(time.Second), nil
	}
	return entity.ParseOccurredAt(date, clock, uc.loc)
}

// exitCost costo medio al momento de la salida. Para salidas retroactivas se toma la
// posición del histórico en ese punto; si no, el costo medio actual del backend.
func exitCost(history []entity.Transaction, exit entity.Transaction, current *dto.ItemCostResponse, retroactive bool) decimal.Decimal {
	if !retroactive && current != nil && current.AverageCost.GreaterThan(decimal.Zero) {
		return current.AverageCost
	}
	return inventory.AverageCostBefore(history, inventory.PivotOf(exit))
}

func hasLater(history []entity.Transaction, pivot inventory.Pivot) bool {
	for _, tx := range history {
		if pivot.Before(inventory.PivotOf(tx)) {
			return true
		}
	}
	return false
}

func validateForm(in dto.CreateTransactionRequest) string {
	if in.Sku == "" {
		return msgMissingProduct
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return msgInvalidQuantity
	}
	if in.IsEntry {
		if in.UnitCost == nil || !in.UnitCost.GreaterThan(decimal.Zero) {
			return msgInvalidCost
		}
		if in.SupplierID == nil || *in.SupplierID <= 0 {
			return msgMissingSupplier
		}
		if in.CodNf == "" {
			return msgMissingInvoice
		}
	}
	return ""
}

func validateChanges(c entity.TransactionChanges) string {
	if c.Quantity != nil && !c.Quantity.GreaterThan(decimal.Zero) {
		return msgInvalidQuantity
	}
	if c.UnitCost != nil && !c.UnitCost.GreaterThan(decimal.Zero) {
		return msgInvalidCost
	}
	if c.SKU != nil && strings.TrimSpace(*c.SKU) == "" {
		return msgMissingProduct
	}
	if c.SupplierID != nil && *c.SupplierID <= 0 {
		return msgMissingSupplier
	}
	return ""
}
