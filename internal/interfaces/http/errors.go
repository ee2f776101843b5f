package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/inventory"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

func errorBody(code, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: code, Message: msg}
}

// errorStatus mapea un error de dominio a código HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrStockWouldGoNegative):
		return fiber.StatusConflict, "STOCK_WOULD_GO_NEGATIVE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrRecalculationFailed):
		return fiber.StatusBadGateway, "RECALCULATION_FAILED"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "UPSTREAM"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "TIMEOUT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// errorMessage mensaje para el cliente: formularios y validaciones tal cual, errores
// del backend con su detail.
func errorMessage(err error) string {
	var formErr *inventory.FormError
	if errors.As(err, &formErr) {
		return formErr.Message
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.Detail != "" {
		return httpErr.Detail
	}
	return err.Error()
}

// writeError responde con dto.ErrorResponse según el error.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	body := dto.ErrorResponse{Code: code, Message: errorMessage(err)}

	var stockErr *inventory.StockError
	if errors.As(err, &stockErr) {
		for _, tx := range stockErr.Validation.DependentExits {
			body.DependentExits = append(body.DependentExits, tx.FormattedID())
		}
	}
	return c.Status(status).JSON(body)
}

// writeMutation responde a una mutación de transacción. Si la mutación se aplicó pero
// el recálculo falló se devuelve 502 con el informe completo.
func writeMutation(c *fiber.Ctx, status int, resp *dto.MutationResponse, err error) error {
	if err != nil {
		if resp != nil && errors.Is(err, domain.ErrRecalculationFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(resp)
		}
		return writeError(c, err)
	}
	return c.Status(status).JSON(resp)
}
