package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// TransactionHandler entradas y salidas de estoque (protegido).
type TransactionHandler struct {
	defaultPageSize int
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(defaultPageSize int) *TransactionHandler {
	return &TransactionHandler{defaultPageSize: defaultPageSize}
}

func transactionFilter(c *fiber.Ctx, pageSize int) repository.TransactionFilter {
	return repository.TransactionFilter{
		Page:        queryPage(c),
		PageSize:    c.QueryInt("page_size", pageSize),
		DateFrom:    c.Query("dateFrom"),
		DateTo:      c.Query("dateTo"),
		InvoiceCode: c.Query("notaFiscal"),
		SKU:         c.Query("sku"),
		Description: c.Query("description"),
		Ordering:    c.Query("ordering"),
	}
}

// List godoc
// @Summary      Listado unificado de entradas y salidas
// @Tags         transactions
// @Security     Session
// @Produce      json
// @Param        page         query  int     false  "Página"
// @Param        dateFrom     query  string  false  "Desde (ISO)"
// @Param        dateTo       query  string  false  "Hasta (ISO)"
// @Param        notaFiscal   query  string  false  "Nota fiscal"
// @Param        sku          query  string  false  "SKU"
// @Param        description  query  string  false  "Descripción"
// @Success      200  {object}  dto.PageResponse[dto.TransactionResponse]
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Transactions.ListUnified(c.UserContext(), transactionFilter(c, h.defaultPageSize))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico completo de un SKU en orden cronológico
// @Tags         transactions
// @Security     Session
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/history/{sku} [get]
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Transactions.History(c.UserContext(), c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar entrada o salida
// @Description  Las salidas toman el costo medio vigente y se validan contra el stock disponible.
// @Tags         transactions
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "isEntry, sku, quantity, unitCost, supplierId, codNf"
// @Success      201   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.MutationResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Transactions.Create(c.UserContext(), in)
	return writeMutation(c, fiber.StatusCreated, out, err)
}

// Update godoc
// @Summary      Corregir transacción
// @Tags         transactions
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "tipo-id (entrada-12)"
// @Param        body  body  dto.UpdateTransactionRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.MutationResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Transactions.Update(c.UserContext(), c.Params("id"), in)
	return writeMutation(c, fiber.StatusOK, out, err)
}

// Delete godoc
// @Summary      Eliminar transacción
// @Description  Bloqueada (409) si alguna salida posterior quedaría con stock negativo.
// @Tags         transactions
// @Security     Session
// @Produce      json
// @Param        id  path  string  true  "tipo-id (saida-7)"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.MutationResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Transactions.Delete(c.UserContext(), c.Params("id"))
	return writeMutation(c, fiber.StatusOK, out, err)
}

// Validate godoc
// @Summary      Validar eliminación o edición sin aplicarla
// @Tags         transactions
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateOperationRequest  true  "operationType, transactionId, newQuantity"
// @Success      200   {object}  dto.ValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/validate [post]
func (h *TransactionHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := GetWorkspace(c).Transactions.ValidateOperation(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recalculate godoc
// @Summary      Recalcular costos de las salidas posteriores
// @Tags         transactions
// @Security     Session
// @Produce      json
// @Param        id  path  string  true  "tipo-id"
// @Success      200  {object}  dto.RecalculationResponse
// @Failure      502  {object}  dto.RecalculationResponse
// @Router       /api/transactions/{id}/recalculate [post]
func (h *TransactionHandler) Recalculate(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Transactions.RecalculateCosts(c.UserContext(), c.Params("id"))
	if err != nil {
		if out != nil {
			return c.Status(fiber.StatusBadGateway).JSON(out)
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar transacciones a XLSX
// @Tags         transactions
// @Security     Session
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/transactions/export.xlsx [get]
func (h *TransactionHandler) Export(c *fiber.Ctx) error {
	f := transactionFilter(c, 0)
	f.Page = 0
	doc, filename, err := GetWorkspace(c).Reports.TransactionsXLSX(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
