package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	apphttp "github.com/jhoicas/stockcontrol-gateway/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func bareFactory(s *entity.Session) *apphttp.Workspace {
	return &apphttp.Workspace{Session: s}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para resolver X-Session-ID
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(registry *apphttp.SessionRegistry, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.SessionMiddleware(registry, true),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// sessionFor abre una sesión autenticada con el usuario indicado (nil = sin usuario).
func sessionFor(registry *apphttp.SessionRegistry, u *entity.User) string {
	id, ws := registry.Create()
	ws.Session.SetTokens("access", "refresh")
	ws.Session.SetUser(u)
	return id
}

func doRequest(t *testing.T, app *fiber.App, sessionID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if sessionID != "" {
		req.Header.Set(apphttp.SessionHeader, sessionID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

var (
	master   = &entity.User{ID: 1, Username: "root", IsMaster: true}
	staff    = &entity.User{ID: 2, Username: "ana", IsStaff: true}
	operator = &entity.User{ID: 3, Username: "op"}
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_MasterAccedeRutaMaster(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	app := buildTestApp(registry, entity.RoleMaster)
	resp := doRequest(t, app, sessionFor(registry, master))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"master debe poder acceder a ruta restringida a master")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleMaster, body["role"])
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_StaffAccedeRutaStaffOMaster(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	app := buildTestApp(registry, entity.RoleStaff, entity.RoleMaster)
	resp := doRequest(t, app, sessionFor(registry, staff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_OperadorBloqueadoEnRutaStaff(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	app := buildTestApp(registry, entity.RoleStaff, entity.RoleMaster)
	resp := doRequest(t, app, sessionFor(registry, operator))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"operator no debe poder registrar transacciones")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 2b: staff bloqueado en administración de usuarios → HTTP 403.
func TestRequireRole_StaffBloqueadoEnRutaMaster(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	app := buildTestApp(registry, entity.RoleMaster)
	resp := doRequest(t, app, sessionFor(registry, staff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 3: sesión autenticada sin usuario cargado → HTTP 403 MISSING_ROLE.
func TestRequireRole_SesionSinUsuario(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	app := buildTestApp(registry, entity.RoleMaster)
	resp := doRequest(t, app, sessionFor(registry, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: Sin header X-Session-ID → HTTP 401 MISSING_SESSION.
func TestSessionMiddleware_SinHeader(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	resp := doRequest(t, buildTestApp(registry, entity.RoleMaster), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_SESSION")
}

// Caso 5: id desconocido o malformado → HTTP 401 INVALID_SESSION.
func TestSessionMiddleware_SesionDesconocida(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	app := buildTestApp(registry, entity.RoleMaster)

	for _, id := range []string{"no-es-uuid", "6f1c1c4e-8a3a-4a43-9a9e-0c4f7a1f2b11"} {
		resp := doRequest(t, app, id)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(body), "INVALID_SESSION")
	}
}

// Caso 6: el refresh falló y limpió la sesión → HTTP 401 SESSION_EXPIRED.
func TestSessionMiddleware_SesionLimpiada(t *testing.T) {
	registry := apphttp.NewSessionRegistry(bareFactory, time.Hour)
	id := sessionFor(registry, staff)
	ws, ok := registry.Get(id)
	require.True(t, ok)
	ws.Session.Clear()

	resp := doRequest(t, buildTestApp(registry, entity.RoleStaff), id)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_EXPIRED")
}
