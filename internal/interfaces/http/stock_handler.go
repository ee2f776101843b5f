package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// StockHandler niveles de stock, valoración y su informe PDF (protegido).
type StockHandler struct {
	defaultPageSize int
}

// NewStockHandler construye el handler.
func NewStockHandler(defaultPageSize int) *StockHandler {
	return &StockHandler{defaultPageSize: defaultPageSize}
}

// ListStocks godoc
// @Summary      Niveles de stock a una fecha
// @Tags         stocks
// @Security     Session
// @Produce      json
// @Param        page                 query  int     false  "Página"
// @Param        page_size            query  int     false  "Tamaño de página"
// @Param        codSku               query  string  false  "SKU"
// @Param        descricaoItem        query  string  false  "Descripción"
// @Param        stockDate            query  string  false  "Fecha ISO"
// @Param        showOnlyStockItems   query  bool    false  "Sólo con stock"
// @Param        showOnlyActiveItems  query  bool    false  "Sólo activos"
// @Param        ordering             query  string  false  "Orden"
// @Success      200  {object}  dto.PageResponse[dto.StockItemResponse]
// @Router       /api/stocks [get]
func (h *StockHandler) ListStocks(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).Stocks.List(c.UserContext(), repository.StockFilter{
		Page:                queryPage(c),
		PageSize:            c.QueryInt("page_size", h.defaultPageSize),
		SKU:                 c.Query("codSku"),
		Description:         c.Query("descricaoItem"),
		StockDate:           c.Query("stockDate"),
		ShowOnlyStockItems:  queryBool(c, "showOnlyStockItems"),
		ShowOnlyActiveItems: queryBool(c, "showOnlyActiveItems"),
		Ordering:            c.Query("ordering"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStockCosts godoc
// @Summary      Valoración del stock al costo medio
// @Tags         stock-costs
// @Security     Session
// @Produce      json
// @Param        stockDate    query  string  false  "Fecha ISO"
// @Param        sku          query  string  false  "SKU"
// @Param        description  query  string  false  "Descripción"
// @Param        active       query  bool    false  "Activos"
// @Success      200  {object}  dto.StockCostListResponse
// @Router       /api/stock-costs [get]
func (h *StockHandler) ListStockCosts(c *fiber.Ctx) error {
	out, err := GetWorkspace(c).StockCosts.List(c.UserContext(), stockCostFilter(c, h.defaultPageSize))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LastEntryCost godoc
// @Summary      Costo de la última entrada del SKU (sugerencia del formulario)
// @Tags         stock-costs
// @Security     Session
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock-costs/{sku}/last-entry [get]
func (h *StockHandler) LastEntryCost(c *fiber.Ctx) error {
	sku := c.Params("sku")
	cost, err := GetWorkspace(c).StockCosts.LastEntryCost(c.UserContext(), sku)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"sku": sku, "lastEntryCost": cost})
}

// StockCostReport godoc
// @Summary      Informe PDF de custos de estoque
// @Tags         stock-costs
// @Security     Session
// @Produce      application/pdf
// @Param        stockDate  query  string  false  "Fecha ISO"
// @Success      200  {file}  binary
// @Router       /api/stock-costs/report.pdf [get]
func (h *StockHandler) StockCostReport(c *fiber.Ctx) error {
	f := stockCostFilter(c, 0)
	f.Page = 0
	doc, filename, err := GetWorkspace(c).Reports.StockCostPDF(c.UserContext(), f, currentUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}

func stockCostFilter(c *fiber.Ctx, pageSize int) repository.StockCostFilter {
	return repository.StockCostFilter{
		Page:        queryPage(c),
		PageSize:    c.QueryInt("page_size", pageSize),
		StockDate:   c.Query("stockDate"),
		SKU:         c.Query("sku"),
		Description: c.Query("description"),
		Active:      queryBool(c, "active"),
		Ordering:    c.Query("ordering"),
	}
}
