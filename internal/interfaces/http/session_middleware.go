package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

// SessionHeader cabecera con el id de sesión del gateway.
const SessionHeader = "X-Session-ID"

// Locals keys para la sesión en Fiber.
const (
	LocalSessionID = "session_id"
	LocalWorkspace = "workspace"
)

// SessionMiddleware resuelve X-Session-ID y carga el workspace en c.Locals.
// Con requireAuth la sesión además debe tener tokens (un refresh fallido la deja vacía).
func SessionMiddleware(registry *SessionRegistry, requireAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(SessionHeader))
		if id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: SessionHeader + " requerido"})
		}
		ws, ok := registry.Get(id)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inexistente o expirada"})
		}
		if requireAuth && !ws.Session.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión expirada, inicie sesión nuevamente"})
		}
		c.Locals(LocalSessionID, id)
		c.Locals(LocalWorkspace, ws)
		return c.Next()
	}
}

// GetSessionID devuelve el id de sesión del contexto (después de SessionMiddleware).
func GetSessionID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionID).(string)
	return s
}

// GetWorkspace devuelve el workspace del contexto (después de SessionMiddleware).
func GetWorkspace(c *fiber.Ctx) *Workspace {
	ws, _ := c.Locals(LocalWorkspace).(*Workspace)
	return ws
}

// GetUser usuario de la sesión; nil sin login.
func GetUser(c *fiber.Ctx) *entity.User {
	ws := GetWorkspace(c)
	if ws == nil {
		return nil
	}
	return ws.Session.User()
}

// GetRole rol derivado del usuario de la sesión ("" sin usuario).
func GetRole(c *fiber.Ctx) string {
	return GetUser(c).Role()
}

func currentUsername(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.Username
	}
	return ""
}
