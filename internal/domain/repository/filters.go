package repository

import (
	"net/url"
	"strconv"
)

// ItemFilter filtros del listado de itens.
type ItemFilter struct {
	Page        int
	PageSize    int
	SKU         string
	Description string
	Active      *bool
	Search      string // búsqueda libre (?search=)
}

// Query parámetros de consulta en el formato del backend.
func (f ItemFilter) Query() url.Values {
	q := url.Values{}
	setPage(q, f.Page, f.PageSize)
	setString(q, "search", f.Search)
	setString(q, "codSku", f.SKU)
	setString(q, "descricaoItem", f.Description)
	setBool(q, "active", f.Active)
	return q
}

// SupplierFilter filtros del listado de fornecedores.
type SupplierFilter struct {
	Page   int
	Name   string
	Active *bool
}

// Query parámetros de consulta.
func (f SupplierFilter) Query() url.Values {
	q := url.Values{}
	setPage(q, f.Page, 0)
	setString(q, "nomeFornecedor", f.Name)
	setBool(q, "active", f.Active)
	return q
}

// UserFilter filtros del listado de users.
type UserFilter struct {
	Page     int
	Username string
	Email    string
	IsActive *bool
	Ordering string
}

// Query parámetros de consulta.
func (f UserFilter) Query() url.Values {
	q := url.Values{}
	setPage(q, f.Page, 0)
	setString(q, "username", f.Username)
	setString(q, "email", f.Email)
	setBool(q, "isActive", f.IsActive)
	setString(q, "ordering", f.Ordering)
	return q
}

// StockFilter filtros del listado de stocks.
type StockFilter struct {
	Page                int
	PageSize            int
	SKU                 string
	Description         string
	StockDate           string // ISO
	ShowOnlyStockItems  *bool
	ShowOnlyActiveItems *bool
	Ordering            string
}

// Query parámetros de consulta.
func (f StockFilter) Query() url.Values {
	q := url.Values{}
	setPage(q, f.Page, f.PageSize)
	setString(q, "codSku", f.SKU)
	setString(q, "descricaoItem", f.Description)
	setString(q, "stockDate", f.StockDate)
	setBool(q, "showOnlyStockItems", f.ShowOnlyStockItems)
	setBool(q, "showOnlyActiveItems", f.ShowOnlyActiveItems)
	setString(q, "ordering", f.Ordering)
	return q
}

// StockCostFilter filtros de stock-costs.
type StockCostFilter struct {
	Page        int
	PageSize    int
	StockDate   string
	SKU         string
	Description string
	Active      *bool
	Ordering    string
}

// Query parámetros de consulta.
func (f StockCostFilter) Query() url.Values {
	q := url.Values{}
	setPage(q, f.Page, f.PageSize)
	setString(q, "stockDate", f.StockDate)
	setString(q, "sku", f.SKU)
	setString(q, "description", f.Description)
	setBool(q, "active", f.Active)
	setString(q, "ordering", f.Ordering)
	return q
}

// TransactionFilter filtros de unified-transactions.
type TransactionFilter struct {
	Page        int
	PageSize    int
	DateFrom    string // ISO
	DateTo      string // ISO
	InvoiceCode string
	SKU         string
	Description string
	Ordering    string
}

// Query parámetros de consulta.
func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	setPage(q, f.Page, f.PageSize)
	setString(q, "dateFrom", f.DateFrom)
	setString(q, "dateTo", f.DateTo)
	setString(q, "notaFiscal", f.InvoiceCode)
	setString(q, "sku", f.SKU)
	setString(q, "description", f.Description)
	setString(q, "ordering", f.Ordering)
	return q
}

func setPage(q url.Values, page, size int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("page_size", strconv.Itoa(size))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}
