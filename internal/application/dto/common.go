package dto

import "github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"

// PageResponse listado paginado (envoltorio results/count del backend).
type PageResponse[T any] struct {
	Results     []T  `json:"results"`
	Count       int  `json:"count"`
	Page        int  `json:"page"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// NewPageResponse convierte una página de dominio aplicando fn a cada resultado.
func NewPageResponse[T, U any](p *repository.Page[T], fn func(T) U) PageResponse[U] {
	if p == nil {
		return PageResponse[U]{Results: []U{}}
	}
	out := make([]U, 0, len(p.Results))
	for _, r := range p.Results {
		out = append(out, fn(r))
	}
	return PageResponse[U]{Results: out, Count: p.Count, Page: p.Page, HasNext: p.HasNext, HasPrevious: p.HasPrevious}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	DependentExits []string `json:"dependentExits,omitempty"` // salidas que quedarían en negativo
}
