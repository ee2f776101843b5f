package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// queryBool parámetro booleano opcional; ausente o inválido → nil.
func queryBool(c *fiber.Ctx, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryPage número de página (>= 1).
func queryPage(c *fiber.Ctx) int {
	if p := c.QueryInt("page", 1); p > 0 {
		return p
	}
	return 1
}

// paramID id numérico de la ruta; 0 si no es válido.
func paramID(c *fiber.Ctx, key string) int64 {
	id, err := strconv.ParseInt(c.Params(key), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_BODY", "cuerpo inválido"))
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_ID", "id inválido"))
}
