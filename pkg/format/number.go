// Package format formatea y parsea números en el padrão brasileiro (pt-BR):
// punto como separador de miles y coma decimal ("2.500,00").
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder devuelto para valores ausentes.
const Placeholder = "-"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Integer formatea sin decimales con agrupación de miles (250000 → "250.000").
func Integer(v decimal.Decimal) string {
	return printer.Sprintf("%d", v.Round(0).IntPart())
}

// IntegerPtr igual que Integer pero devuelve Placeholder para nil.
func IntegerPtr(v *decimal.Decimal) string {
	if v == nil {
		return Placeholder
	}
	return Integer(*v)
}

// Decimal formatea con dos decimales fijos (2500 → "2.500,00").
func Decimal(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// Currency formatea en reales (2500 → "R$ 2.500,00").
func Currency(v decimal.Decimal) string {
	return "R$ " + Decimal(v)
}

// ParseInteger convierte "250.000" en 250000. Cadena vacía o Placeholder → nil.
func ParseInteger(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == Placeholder {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ".", ""))
	if err != nil {
		return nil, fmt.Errorf("format: entero inválido %q: %w", s, err)
	}
	d = d.Truncate(0)
	return &d, nil
}

// ParseDecimal convierte "2.500,00" en 2500.00. Cadena vacía o Placeholder → nil.
func ParseDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" || s == Placeholder {
		return nil, nil
	}
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil, fmt.Errorf("format: decimal inválido %q: %w", s, err)
	}
	return &d, nil
}
