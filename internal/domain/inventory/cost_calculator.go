package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// CostScale decimales con los que se registra el costo unitario de una salida.
const CostScale = 2

// Position acumulados de un SKU en un punto del histórico.
// El stock es EntryQty - ExitQty; el valor en stock es EntryValue - ExitValue.
type Position struct {
	EntryQty   decimal.Decimal
	EntryValue decimal.Decimal
	ExitQty    decimal.Decimal
	ExitValue  decimal.Decimal
}

// Level nivel de stock de la posición.
func (p Position) Level() decimal.Decimal {
	return p.EntryQty.Sub(p.ExitQty)
}

// AverageCost costo medio ponderado del stock en mano, redondeado a CostScale (half-up).
// CostoMedio = (ValorEntradas - ValorSalidas) / (CantEntradas - CantSalidas); 0 sin stock.
func (p Position) AverageCost() decimal.Decimal {
	level := p.Level()
	if level.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return p.EntryValue.Sub(p.ExitValue).Div(level).Round(CostScale)
}

// AddEntry acumula una entrada a su propio costo.
func (p Position) AddEntry(qty, unitCost decimal.Decimal) Position {
	p.EntryQty = p.EntryQty.Add(qty)
	p.EntryValue = p.EntryValue.Add(qty.Mul(unitCost))
	return p
}

// AddExit acumula una salida al costo indicado.
func (p Position) AddExit(qty, unitCost decimal.Decimal) Position {
	p.ExitQty = p.ExitQty.Add(qty)
	p.ExitValue = p.ExitValue.Add(qty.Mul(unitCost))
	return p
}

// Apply acumula una transacción con su costo registrado.
func (p Position) Apply(tx entity.Transaction) Position {
	if tx.Type == entity.TransactionEntry {
		return p.AddEntry(tx.Quantity, tx.UnitCost)
	}
	return p.AddExit(tx.Quantity, tx.UnitCost)
}

// AverageCostBefore costo medio del histórico justo antes del pivote.
func AverageCostBefore(history []entity.Transaction, pivot Pivot) decimal.Decimal {
	var p Position
	for _, tx := range Chronological(history) {
		if !PivotOf(tx).Before(pivot) {
			break
		}
		p = p.Apply(tx)
	}
	return p.AverageCost()
}
