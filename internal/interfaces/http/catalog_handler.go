package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// CatalogHandler itens y fornecedores (protegido).
type CatalogHandler struct {
	defaultPageSize int
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(defaultPageSize int) *CatalogHandler {
	return &CatalogHandler{defaultPageSize: defaultPageSize}
}

// ── Itens ─────────────────────────────────────────────────────────────────────

// ListItems godoc
// @Summary      Listar itens
// @Tags         items
// @Security     Session
// @Produce      json
// @Param        page           query  int     false  "Página"
// @Param        codSku         query  string  false  "SKU"
// @Param        descricaoItem  query  string  false  "Descripción"
// @Param        active         query  bool    false  "Activos"
// @Param        search         query  string  false  "Búsqueda libre"
// @Success      200  {object}  dto.PageResponse[dto.ItemResponse]
// @Router       /api/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Items.List(c.UserContext(), repository.ItemFilter{
		Page:        queryPage(c),
		PageSize:    c.QueryInt("page_size", h.defaultPageSize),
		SKU:         c.Query("codSku"),
		Description: c.Query("descricaoItem"),
		Active:      queryBool(c, "active"),
		Search:      c.Query("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SearchItems godoc
// @Summary      Buscar itens (autocompletado)
// @Tags         items
// @Security     Session
// @Produce      json
// @Param        q  query  string  true  "Término"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/search [get]
func (h *CatalogHandler) SearchItems(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Items.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Obtener item por SKU
// @Tags         items
// @Security     Session
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{sku} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Items.Get(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ItemCost godoc
// @Summary      Costo medio y última entrada del SKU
// @Tags         items
// @Security     Session
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ItemCostResponse
// @Router       /api/items/{sku}/cost [get]
func (h *CatalogHandler) ItemCost(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Items.AverageCost(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear item
// @Tags         items
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "codSku, descricaoItem, unidMedida"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Items.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar item
// @Tags         items
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        sku   path  string                 true  "SKU"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{sku} [put]
func (h *CatalogHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Items.Update(c.UserContext(), c.Params("sku"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar item
// @Tags         items
// @Security     Session
// @Param        sku  path  string  true  "SKU"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{sku} [delete]
func (h *CatalogHandler) DeleteItem(c *fiber.Ctx) error {
	if err := GetWorkspace(c).Items.Delete(c.UserContext(), c.Params("sku")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Fornecedores ──────────────────────────────────────────────────────────────

// ListSuppliers godoc
// @Summary      Listar fornecedores
// @Tags         suppliers
// @Security     Session
// @Produce      json
// @Param        page            query  int     false  "Página"
// @Param        nomeFornecedor  query  string  false  "Nombre"
// @Param        active          query  bool    false  "Activos"
// @Success      200  {object}  dto.PageResponse[dto.SupplierResponse]
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Suppliers.List(c.UserContext(), repository.SupplierFilter{
		Page:   queryPage(c),
		Name:   c.Query("nomeFornecedor"),
		Active: queryBool(c, "active"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SearchSuppliers godoc
// @Summary      Buscar fornecedores por nombre
// @Tags         suppliers
// @Security     Session
// @Produce      json
// @Param        q  query  string  true  "Término"
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers/search [get]
func (h *CatalogHandler) SearchSuppliers(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Suppliers.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear fornecedor
// @Tags         suppliers
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "nomeFornecedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Suppliers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar fornecedor
// @Tags         suppliers
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "codFornecedor"
// @Param        body  body  dto.SupplierRequest  true  "nomeFornecedor, active"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return invalidID(c)
	}
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Suppliers.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Eliminar fornecedor
// @Tags         suppliers
// @Security     Session
// @Param        id  path  int  true  "codFornecedor"
// @Success      204
// @Router       /api/suppliers/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return invalidID(c)
	}
	if err := GetWorkspace(c).Suppliers.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
