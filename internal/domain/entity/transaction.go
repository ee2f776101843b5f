package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de transacción de estoque.
type TransactionType string

// Tipos de transacción (valores del backend).
const (
	TransactionEntry TransactionType = "entrada" // aumenta el stock, trae costo propio
	TransactionExit  TransactionType = "saida"   // reduce el stock al costo medio vigente
)

// Valid indica si el tipo es conocido.
func (t TransactionType) Valid() bool {
	return t == TransactionEntry || t == TransactionExit
}

// Transaction es la vista unificada de una entrada o salida con su cabecera (transacao).
// ID es el id_transacao; DetailID el cod_entrada / cod_pedido del detalle.
type Transaction struct {
	ID          int64
	DetailID    int64
	Type        TransactionType
	SKU         string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	OccurredAt  time.Time // fecha + hora del detalle
	SupplierID  *int64
	InvoiceCode string
	Description string
	UnitMeasure string
	Username    string
}

// TotalCost cantidad * costo unitario.
func (t Transaction) TotalCost() decimal.Decimal {
	return t.Quantity.Mul(t.UnitCost)
}

// FormattedID identificador compuesto usado por el backend ("entrada-12", "saida-7").
func (t Transaction) FormattedID() string {
	return FormatTransactionID(t.Type, t.DetailID)
}

// FormatTransactionID compone "tipo-id".
func FormatTransactionID(t TransactionType, detailID int64) string {
	return fmt.Sprintf("%s-%d", t, detailID)
}

// ParseTransactionID separa "entrada-12" en tipo e id de detalle.
func ParseTransactionID(s string) (TransactionType, int64, error) {
	kind, idStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return "", 0, fmt.Errorf("id de transacción inválido %q", s)
	}
	t := TransactionType(kind)
	if !t.Valid() {
		return "", 0, fmt.Errorf("tipo de transacción desconocido %q", kind)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("id de transacción inválido %q", s)
	}
	return t, id, nil
}

// TransactionRecord cabecera persistida de una transacción (recurso transacoes).
type TransactionRecord struct {
	ID          int64
	SKU         string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	InvoiceCode string
	SupplierID  *int64
}

// TransactionDetail detalle de entrada o salida vinculado a una cabecera.
type TransactionDetail struct {
	ID            int64
	Type          TransactionType
	TransactionID int64
	UserID        int64
	OccurredAt    time.Time
}

// TransactionChanges cambios solicitados sobre una transacción existente.
// Los campos nil no se modifican.
type TransactionChanges struct {
	Quantity    *decimal.Decimal
	UnitCost    *decimal.Decimal
	InvoiceCode *string
	SupplierID  *int64
	SKU         *string
}

// Empty indica que no hay nada que modificar.
func (c TransactionChanges) Empty() bool {
	return c.Quantity == nil && c.UnitCost == nil && c.InvoiceCode == nil && c.SupplierID == nil && c.SKU == nil
}

// Apply devuelve una copia del registro con los cambios aplicados.
func (c TransactionChanges) Apply(rec TransactionRecord) TransactionRecord {
	if c.Quantity != nil {
		rec.Quantity = *c.Quantity
	}
	if c.UnitCost != nil {
		rec.UnitCost = *c.UnitCost
	}
	if c.InvoiceCode != nil {
		rec.InvoiceCode = *c.InvoiceCode
	}
	if c.SupplierID != nil {
		id := *c.SupplierID
		rec.SupplierID = &id
	}
	if c.SKU != nil {
		rec.SKU = *c.SKU
	}
	return rec
}
