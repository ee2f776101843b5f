package inventory

import (
	"errors"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
)

// StockError operación bloqueada porque dejaría el stock negativo. Lleva el detalle
// de la validación para que el usuario sepa qué salidas corregir.
type StockError struct {
	Validation Validation
}

func (e *StockError) Error() string { return e.Validation.Message }

// Unwrap permite errors.Is(err, domain.ErrStockWouldGoNegative).
func (e *StockError) Unwrap() error { return domain.ErrStockWouldGoNegative }

// FormError error de validación del formulario de transacción.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *FormError) Unwrap() error { return domain.ErrInvalidInput }

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
