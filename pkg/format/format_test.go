package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteger_AgrupaMiles(t *testing.T) {
	assert.Equal(t, "250.000", Integer(decimal.NewFromInt(250000)))
	assert.Equal(t, "15", Integer(decimal.RequireFromString("14.6")))
	assert.Equal(t, Placeholder, IntegerPtr(nil))
}

func TestDecimal_DosDecimales(t *testing.T) {
	assert.Equal(t, "2.500,00", Decimal(decimal.NewFromInt(2500)))
	assert.Equal(t, "16,67", Decimal(decimal.RequireFromString("16.666")))
	assert.Equal(t, "R$ 15,00", Currency(decimal.NewFromInt(15)))
}

func TestParse_IdaYVuelta(t *testing.T) {
	d, err := ParseDecimal("2.500,75")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.Equal(decimal.RequireFromString("2500.75")))

	i, err := ParseInteger("250.000")
	require.NoError(t, err)
	require.NotNil(t, i)
	assert.Equal(t, int64(250000), i.IntPart())

	empty, err := ParseDecimal(Placeholder)
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = ParseDecimal("abc")
	assert.Error(t, err)
}

func TestConsumptionTime(t *testing.T) {
	cases := map[string]string{
		"":             "N/A",
		"1 dias":       "1 dia",
		"3 semana":     "3 semanas",
		"1 meses":      "1 mês",
		"2 ano":        "2 anos",
		"Sem estoque":  "Sem estoque",
		"Menos de 1 dia": "Menos de 1 dia",
	}
	for in, want := range cases {
		assert.Equal(t, want, ConsumptionTime(in), "entrada %q", in)
	}
}
