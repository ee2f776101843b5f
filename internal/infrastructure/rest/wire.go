package rest

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// Rutas del backend (relativas a la URL base).
const (
	pathItems          = "/api/v1/itens/"
	pathSuppliers      = "/api/v1/fornecedores/"
	pathUsers          = "/api/v1/users/"
	pathRegister       = "/api/v1/register/"
	pathCurrentUser    = "/api/v1/current-user-info/"
	pathInventoryUser  = "/api/v1/current-user-inventory-info/"
	pathStocks         = "/api/v1/stocks/"
	pathStockCosts     = "/api/v1/stock-costs/"
	pathTransactions   = "/api/v1/transacoes/"
	pathEntries        = "/api/v1/entradas/"
	pathExits          = "/api/v1/saidas/"
	pathUnified        = "/api/v1/unified-transactions/"
	pathRecalculate    = "/api/v1/recalculate-costs/"
	pathValidateStock  = "/api/v1/validate-stock-operation/"
	pathTransactionOps = "/api/v1/transactions/"
)

// flexString acepta string o número JSON (cod_sku llega de ambas formas).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// pageLink next/previous: URL (DRF), booleano (stock-costs) o null.
type pageLink bool

func (p *pageLink) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")), bytes.Equal(b, []byte(`""`)):
		*p = false
	case bytes.Equal(b, []byte("true")):
		*p = true
	default:
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = pageLink(strings.TrimSpace(s) != "")
	}
	return nil
}

// wirePage envoltorio paginado del backend.
type wirePage[W any] struct {
	Results  []W      `json:"results"`
	Count    *int     `json:"count"`
	Total    *int     `json:"total"`
	Page     int      `json:"page"`
	Next     pageLink `json:"next"`
	Previous pageLink `json:"previous"`
}

func (p wirePage[W]) hasCount() bool {
	return p.Count != nil || p.Total != nil
}

func (p wirePage[W]) count() int {
	switch {
	case p.Count != nil:
		return *p.Count
	case p.Total != nil:
		return *p.Total
	default:
		return len(p.Results)
	}
}

// toPage convierte la página del backend aplicando fn a cada resultado.
// page es el número pedido; 0 equivale a 1.
func toPage[W, T any](p *wirePage[W], page int, fn func(W) (T, error)) (*repository.Page[T], error) {
	if page <= 0 {
		page = 1
	}
	out := make([]T, 0, len(p.Results))
	for _, w := range p.Results {
		v, err := fn(w)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if p.Page > 0 {
		page = p.Page
	}
	return &repository.Page[T]{
		Results:     out,
		Count:       p.count(),
		Page:        page,
		HasNext:     bool(p.Next),
		HasPrevious: bool(p.Previous),
	}, nil
}
