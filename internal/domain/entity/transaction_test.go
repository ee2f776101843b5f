package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

func TestParseTransactionID(t *testing.T) {
	kind, id, err := entity.ParseTransactionID("entrada-12")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionEntry, kind)
	assert.Equal(t, int64(12), id)

	kind, id, err = entity.ParseTransactionID(" saida-7 ")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionExit, kind)
	assert.Equal(t, int64(7), id)

	for _, bad := range []string{"", "12", "devolucao-3", "entrada-", "entrada-x", "saida-0"} {
		_, _, err := entity.ParseTransactionID(bad)
		assert.Error(t, err, "%q debe rechazarse", bad)
	}
}

func TestTransaction_FormattedIDYTotal(t *testing.T) {
	tx := entity.Transaction{
		Type: entity.TransactionExit, DetailID: 44,
		Quantity: decimal.RequireFromString("3"), UnitCost: decimal.RequireFromString("2.50"),
	}
	assert.Equal(t, "saida-44", tx.FormattedID())
	assert.Equal(t, "7.5", tx.TotalCost().String())
}

func TestTransactionChanges_Apply(t *testing.T) {
	supplier := int64(9)
	rec := entity.TransactionRecord{ID: 1, SKU: "A", Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(5)}

	assert.True(t, entity.TransactionChanges{}.Empty())
	assert.Equal(t, rec, entity.TransactionChanges{}.Apply(rec))

	qty := decimal.NewFromInt(4)
	sku := "B"
	nf := "NF-1"
	changes := entity.TransactionChanges{Quantity: &qty, SKU: &sku, InvoiceCode: &nf, SupplierID: &supplier}
	assert.False(t, changes.Empty())

	got := changes.Apply(rec)
	assert.Equal(t, "B", got.SKU)
	assert.True(t, got.Quantity.Equal(qty))
	assert.True(t, got.UnitCost.Equal(decimal.NewFromInt(5)), "el costo no cambia")
	assert.Equal(t, "NF-1", got.InvoiceCode)
	require.NotNil(t, got.SupplierID)
	assert.Equal(t, int64(9), *got.SupplierID)
	assert.Equal(t, "A", rec.SKU, "el registro original no se modifica")
}

func TestNormalizeDate(t *testing.T) {
	iso, err := entity.NormalizeDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", iso)

	iso, err = entity.NormalizeDate("05/03/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", iso, "DD/MM/YYYY se convierte a ISO")

	for _, bad := range []string{"", "2024/03/05", "03-05-2024", "31/02/2024"} {
		_, err := entity.NormalizeDate(bad)
		assert.Error(t, err, "%q debe rechazarse", bad)
	}
}

func TestParseOccurredAt(t *testing.T) {
	at, err := entity.ParseOccurredAt("2024-03-05", "14:30:15.250000", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 15, 250_000_000, time.UTC), at)

	at, err = entity.ParseOccurredAt("05/03/2024", "09:10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 9, 10, 0, 0, time.UTC), at)

	at, err = entity.ParseOccurredAt("2024-03-05", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), at)

	_, err = entity.ParseOccurredAt("2024-03-05", "25h", time.UTC)
	assert.Error(t, err)
}
