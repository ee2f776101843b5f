package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// CostUpdate salida cuyo costo unitario debe reescribirse al costo medio de su momento.
type CostUpdate struct {
	TransactionID int64
	DetailID      int64
	SKU           string
	Quantity      decimal.Decimal
	PreviousCost  decimal.Decimal
	NewCost       decimal.Decimal
}

// Changed indica si el nuevo costo difiere del registrado.
func (u CostUpdate) Changed() bool {
	return !u.PreviousCost.Equal(u.NewCost)
}

// RecomputeExitCosts recalcula el costo de cada salida posterior al pivote.
//
// El histórico (ya con la modificación aplicada: entrada eliminada o cantidad/costo
// editados) se reproduce en orden canónico. Hasta el pivote inclusive se acumulan
// entradas y salidas con sus costos registrados. Después del pivote cada entrada suma
// a su costo y cada salida toma el costo medio vigente, que también se usa para
// avanzar el valor de salidas. Devuelve una actualización por cada salida posterior.
func RecomputeExitCosts(history []entity.Transaction, pivot Pivot) []CostUpdate {
	var pos Position
	updates := make([]CostUpdate, 0)
	for _, tx := range Chronological(history) {
		if !pivot.Before(PivotOf(tx)) {
			pos = pos.Apply(tx)
			continue
		}
		if tx.Type == entity.TransactionEntry {
			pos = pos.AddEntry(tx.Quantity, tx.UnitCost)
			continue
		}
		avg := pos.AverageCost()
		updates = append(updates, CostUpdate{
			TransactionID: tx.ID,
			DetailID:      tx.DetailID,
			SKU:           tx.SKU,
			Quantity:      tx.Quantity,
			PreviousCost:  tx.UnitCost,
			NewCost:       avg,
		})
		pos = pos.AddExit(tx.Quantity, avg)
	}
	return updates
}
