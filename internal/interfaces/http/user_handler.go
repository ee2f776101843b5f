package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// UserHandler administración de usuarios del backend (sólo master).
type UserHandler struct{}

// NewUserHandler construye el handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Session
// @Produce      json
// @Param        page      query  int     false  "Página"
// @Param        username  query  string  false  "Usuario"
// @Param        email     query  string  false  "Email"
// @Param        isActive  query  bool    false  "Activos"
// @Param        ordering  query  string  false  "Orden"
// @Success      200  {object}  dto.PageResponse[dto.UserResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Users.List(c.UserContext(), repository.UserFilter{
		Page:     queryPage(c),
		Username: c.Query("username"),
		Email:    c.Query("email"),
		IsActive: queryBool(c, "isActive"),
		Ordering: c.Query("ordering"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Session
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return invalidID(c)
	}
	out, err := GetWorkspace(c).Users.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar usuario
// @Tags         users
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, password2"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Users.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar usuario (parcial)
// @Tags         users
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return invalidID(c)
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Users.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePermissions godoc
// @Summary      Reemplazar permisos del usuario
// @Tags         users
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID"
// @Param        body  body  dto.UpdatePermissionsRequest  true  "permissionsList"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/users/{id}/permissions [put]
func (h *UserHandler) UpdatePermissions(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return invalidID(c)
	}
	var in dto.UpdatePermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Users.UpdatePermissions(c.UserContext(), id, in.PermissionsList)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Session
// @Param        id  path  int  true  "ID"
// @Success      204
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return invalidID(c)
	}
	if err := GetWorkspace(c).Users.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InventoryUser godoc
// @Summary      Usuario de inventário de la sesión
// @Tags         users
// @Security     Session
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/session/inventory-user [get]
func (h *UserHandler) InventoryUser(c *fiber.Ctx) error {
	u, err := GetWorkspace(c).Users.InventoryUser(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": u.ID, "name": u.Name})
}
