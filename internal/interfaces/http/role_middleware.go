package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
)

// RequireRole devuelve un middleware Fiber que sólo deja pasar a los roles indicados.
// Debe usarse DESPUÉS de SessionMiddleware (necesita el usuario de la sesión).
//
// Comportamiento:
//   - 403 MISSING_ROLE → la sesión no tiene usuario cargado.
//   - 403 FORBIDDEN    → el rol del usuario no está entre los permitidos.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "la sesión no tiene un usuario con rol asignado",
			})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "acceso restringido a: " + strings.Join(roles, ", "),
		})
	}
}
