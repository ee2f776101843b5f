package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

const (
	// maxParallelPages páginas pedidas en paralelo al recorrer un listado completo.
	maxParallelPages = 4
	// maxSequentialPages tope del recorrido sin count.
	maxSequentialPages = 1000
)

// fetchAll recorre todas las páginas de un listado. Pide la primera para conocer
// count y tamaño de página y luego el resto en paralelo, conservando el orden.
// Sin count ni total sigue next página a página.
func fetchAll[W any](ctx context.Context, c *api.Client, path string, query url.Values) ([]W, error) {
	first, err := fetchPage[W](ctx, c, path, query, 1)
	if err != nil {
		return nil, err
	}
	if !bool(first.Next) || len(first.Results) == 0 {
		return first.Results, nil
	}
	if !first.hasCount() {
		return fetchSequential(ctx, c, path, query, first)
	}

	size := len(first.Results)
	total := first.count()
	pages := (total + size - 1) / size
	if pages <= 1 {
		return first.Results, nil
	}

	rest := make([][]W, pages-1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPages)
	for p := 2; p <= pages; p++ {
		p := p
		g.Go(func() error {
			page, err := fetchPage[W](gctx, c, path, query, p)
			if err != nil {
				return fmt.Errorf("página %d: %w", p, err)
			}
			rest[p-2] = page.Results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]W, 0, total)
	all = append(all, first.Results...)
	for _, r := range rest {
		all = append(all, r...)
	}
	return all, nil
}

func fetchSequential[W any](ctx context.Context, c *api.Client, path string, query url.Values, first *wirePage[W]) ([]W, error) {
	all := append([]W(nil), first.Results...)
	page := first
	for p := 2; bool(page.Next) && len(page.Results) > 0; p++ {
		if p > maxSequentialPages {
			return nil, fmt.Errorf("listado %s: más de %d páginas", path, maxSequentialPages)
		}
		next, err := fetchPage[W](ctx, c, path, query, p)
		if err != nil {
			return nil, fmt.Errorf("página %d: %w", p, err)
		}
		all = append(all, next.Results...)
		page = next
	}
	return all, nil
}

func fetchPage[W any](ctx context.Context, c *api.Client, path string, query url.Values, page int) (*wirePage[W], error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	var out wirePage[W]
	if err := c.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
