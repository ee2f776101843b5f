package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// OperationKind tipo de operación a simular sobre el histórico.
type OperationKind string

// Operaciones soportadas.
const (
	OperationDelete OperationKind = "delete" // la transacción objetivo se omite
	OperationEdit   OperationKind = "edit"   // se sustituye la cantidad de la objetivo
	OperationInsert OperationKind = "insert" // se agrega una transacción nueva
)

// StockOperation operación propuesta. Para delete/edit se usa TransactionID;
// para edit NewQuantity; para insert Insert.
type StockOperation struct {
	Kind          OperationKind
	TransactionID int64
	NewQuantity   *decimal.Decimal
	Insert        *entity.Transaction
}

// StockCheck resultado de la simulación.
type StockCheck struct {
	Valid          bool
	FinalStock     decimal.Decimal
	FailedAt       *entity.Transaction // transacción tras la cual el stock quedó negativo
	StockAtFailure decimal.Decimal
	DependentExits []entity.Transaction // salidas entre la operación y el fallo que hay que corregir
}

// StockWouldRemainPositive indica si el stock se mantiene >= 0 en todo el histórico
// tras aplicar la operación.
func StockWouldRemainPositive(history []entity.Transaction, op StockOperation) bool {
	return SimulateStock(history, op).Valid
}

// SimulateStock reproduce el histórico en orden canónico aplicando la operación
// (entradas suman, salidas restan) y se detiene en el primer punto con stock negativo.
// No modifica el histórico.
func SimulateStock(history []entity.Transaction, op StockOperation) StockCheck {
	txs := Chronological(withOperation(history, op))

	var start *Pivot
	for i := range txs {
		if matchesTarget(txs[i], op) {
			p := PivotOf(txs[i])
			start = &p
			break
		}
	}
	if op.Kind == OperationDelete {
		for _, tx := range history {
			if tx.ID == op.TransactionID {
				p := PivotOf(tx)
				start = &p
				break
			}
		}
	}

	level := decimal.Zero
	var dependent []entity.Transaction
	for _, tx := range txs {
		qty := tx.Quantity
		if op.Kind == OperationEdit && tx.ID == op.TransactionID && op.NewQuantity != nil {
			qty = *op.NewQuantity
		}
		if tx.Type == entity.TransactionEntry {
			level = level.Add(qty)
		} else {
			level = level.Sub(qty)
			if start != nil && !PivotOf(tx).Before(*start) {
				dependent = append(dependent, tx)
			}
		}
		if level.LessThan(decimal.Zero) {
			failed := tx
			return StockCheck{
				Valid:          false,
				FinalStock:     level,
				FailedAt:       &failed,
				StockAtFailure: level,
				DependentExits: dependent,
			}
		}
	}
	return StockCheck{Valid: true, FinalStock: level}
}

// withOperation aplica delete/insert sobre una copia; edit se resuelve durante la reproducción.
func withOperation(history []entity.Transaction, op StockOperation) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(history)+1)
	for _, tx := range history {
		if op.Kind == OperationDelete && tx.ID == op.TransactionID {
			continue
		}
		out = append(out, tx)
	}
	if op.Kind == OperationInsert && op.Insert != nil {
		out = append(out, *op.Insert)
	}
	return out
}

func matchesTarget(tx entity.Transaction, op StockOperation) bool {
	switch op.Kind {
	case OperationEdit:
		return tx.ID == op.TransactionID
	case OperationInsert:
		return op.Insert != nil && tx.ID == op.Insert.ID && tx.OccurredAt.Equal(op.Insert.OccurredAt)
	}
	return false
}

// Message texto para el usuario explicando qué salidas hay que eliminar o ajustar antes.
func (c StockCheck) Message() string {
	if c.Valid {
		return "operación válida: el stock permanece positivo"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "la operación dejaría el stock negativo (%s)", c.StockAtFailure.String())
	if c.FailedAt != nil {
		fmt.Fprintf(&b, " después de la transacción %d", c.FailedAt.ID)
	}
	if len(c.DependentExits) > 0 {
		ids := make([]string, 0, len(c.DependentExits))
		for _, tx := range c.DependentExits {
			ids = append(ids, fmt.Sprintf("%s (%s un.)", tx.FormattedID(), tx.Quantity.String()))
		}
		fmt.Fprintf(&b, "; elimine o ajuste primero las salidas: %s", strings.Join(ids, ", "))
	}
	return b.String()
}
