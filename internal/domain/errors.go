package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrStockWouldGoNegative = errors.New("la operación dejaría el stock negativo")
	ErrSessionExpired       = errors.New("sesión expirada")
	ErrRecalculationFailed  = errors.New("recálculo de costos fallido")
	ErrUpstream             = errors.New("error del backend")
)
