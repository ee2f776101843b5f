package repository

// Page página de un listado paginado del backend (envoltorio DRF results/count/next/previous).
type Page[T any] struct {
	Results     []T
	Count       int
	Page        int
	HasNext     bool
	HasPrevious bool
}

// MapPage convierte los resultados de una página conservando la paginación.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	if p == nil {
		return &Page[U]{Results: []U{}}
	}
	out := make([]U, 0, len(p.Results))
	for _, r := range p.Results {
		out = append(out, fn(r))
	}
	return &Page[U]{Results: out, Count: p.Count, Page: p.Page, HasNext: p.HasNext, HasPrevious: p.HasPrevious}
}
