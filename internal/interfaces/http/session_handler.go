package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/usecase"
)

// SessionHandler login, logout, sesión actual, preferencias y navegación.
type SessionHandler struct {
	registry    *SessionRegistry
	preferences *usecase.PreferencesUseCase
	navigation  *usecase.NavigationService
}

// NewSessionHandler construye el handler de sesión.
func NewSessionHandler(registry *SessionRegistry, preferences *usecase.PreferencesUseCase, navigation *usecase.NavigationService) *SessionHandler {
	return &SessionHandler{registry: registry, preferences: preferences, navigation: navigation}
}

// Open godoc
// @Summary      Abrir sesión anónima (preferencias antes del login)
// @Tags         session
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Router       /api/session [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	id, ws := h.registry.Create()
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		SessionID:   id,
		Preferences: usecase.ToPreferencesDTO(ws.Session.Preferences()),
	})
}

// Login godoc
// @Summary      Iniciar sesión contra el backend
// @Description  Reutiliza la sesión de X-Session-ID si existe (conserva preferencias); si no, abre una nueva.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y contraseña son requeridos"})
	}

	id := strings.TrimSpace(c.Get(SessionHeader))
	ws, ok := h.registry.Get(id)
	created := false
	if !ok {
		id, ws = h.registry.Create()
		created = true
	}

	user, err := ws.Auth.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		if created {
			h.registry.Delete(id)
		}
		status, code := errorStatus(err)
		if status == fiber.StatusBadRequest || status == fiber.StatusUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "usuario o contraseña incorrectos"})
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: errorMessage(err)})
	}

	access, refresh := ws.Auth.TokenExpiry()
	return c.JSON(dto.SessionResponse{
		SessionID:      id,
		User:           usecase.ToUserResponse(user),
		Role:           user.Role(),
		AccessExpires:  access,
		RefreshExpires: refresh,
		Preferences:    usecase.ToPreferencesDTO(ws.Session.Preferences()),
	})
}

// Logout godoc
// @Summary      Cerrar sesión (las preferencias se conservan)
// @Tags         session
// @Security     Session
// @Success      204
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	GetWorkspace(c).Auth.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Sesión actual
// @Tags         session
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session/me [get]
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	user := ws.Session.User()
	access, refresh := ws.Auth.TokenExpiry()
	return c.JSON(dto.SessionResponse{
		SessionID:      GetSessionID(c),
		User:           usecase.ToUserResponse(user),
		Role:           user.Role(),
		AccessExpires:  access,
		RefreshExpires: refresh,
		Preferences:    usecase.ToPreferencesDTO(ws.Session.Preferences()),
	})
}

// Refresh godoc
// @Summary      Renovar el token de acceso del backend
// @Tags         session
// @Security     Session
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	if err := GetWorkspace(c).Auth.Refresh(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPreferences godoc
// @Summary      Preferencias de accesibilidad
// @Tags         session
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.PreferencesResponse
// @Router       /api/session/preferences [get]
func (h *SessionHandler) GetPreferences(c *fiber.Ctx) error {
	return c.JSON(h.preferences.Get(GetWorkspace(c).Session))
}

// UpdatePreferences godoc
// @Summary      Actualizar preferencias de accesibilidad
// @Tags         session
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreferencesDTO  true  "fontSize, highContrast, reducedMotion"
// @Success      200   {object}  dto.PreferencesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/preferences [put]
func (h *SessionHandler) UpdatePreferences(c *fiber.Ctx) error {
	var in dto.PreferencesDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.preferences.Update(GetWorkspace(c).Session, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResetPreferences godoc
// @Summary      Restablecer preferencias
// @Tags         session
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.PreferencesResponse
// @Router       /api/session/preferences [delete]
func (h *SessionHandler) ResetPreferences(c *fiber.Ctx) error {
	return c.JSON(h.preferences.Reset(GetWorkspace(c).Session))
}

// Navigation godoc
// @Summary      Menú visible para el rol de la sesión
// @Tags         session
// @Security     Session
// @Produce      json
// @Success      200  {array}  dto.NavigationEntry
// @Router       /api/navigation [get]
func (h *SessionHandler) Navigation(c *fiber.Ctx) error {
	return c.JSON(h.navigation.Menu(GetUser(c)))
}
