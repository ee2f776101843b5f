package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// Orden canónico de reproducción: instante del detalle (fecha + hora) y, a igualdad,
// id_transacao. Validación y recálculo usan siempre este mismo orden.

// Pivot posición de una transacción en el orden canónico. Sirve también para
// transacciones ya eliminadas, que no aparecen en el histórico.
type Pivot struct {
	OccurredAt    time.Time
	TransactionID int64
}

// PivotOf pivote de una transacción.
func PivotOf(tx entity.Transaction) Pivot {
	return Pivot{OccurredAt: tx.OccurredAt, TransactionID: tx.ID}
}

// Before indica si a va antes que b en el orden canónico.
func (a Pivot) Before(b Pivot) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.Before(b.OccurredAt)
	}
	return a.TransactionID < b.TransactionID
}

// Chronological devuelve una copia del histórico en el orden canónico.
func Chronological(history []entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return PivotOf(out[i]).Before(PivotOf(out[j]))
	})
	return out
}
