// Package pdf genera el informe de custos de estoque en PDF.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de estoque │ Emitido en / por        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descrição | Qtd | Un | Custo | Total | Consumo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor total do estoque                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/report"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.StockCostPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	loc *time.Location
}

// NewMarotoPDFGenerator construye el generador. loc zona de la fecha de emisión (nil = UTC).
func NewMarotoPDFGenerator(loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{loc: loc}
}

// GenerateStockCostPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockCostPDF(_ context.Context, r *report.StockCostReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(nonEmpty(r.GeneratedBy, "stockcontrol"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r, g.loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(r.Lines) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum item em estoque na data informada.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, rw := range tableDetailRows(r.Lines) {
		m.AddRows(rw)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha de estoque (izq) y emisión (der).
func headerRow(r *report.StockCostReport, loc *time.Location) core.Row {
	generated := r.GeneratedAt.In(loc)
	stockDate := generated.Format("02/01/2006")
	if r.StockDate != "" {
		if d, err := time.Parse(entity.DateLayout, r.StockDate); err == nil {
			stockDate = d.Format("02/01/2006")
		}
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Posição em "+stockDate, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido em "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por "+nonEmpty(r.GeneratedBy, format.Placeholder), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 1, align.Left),
		h("Descrição", 3, align.Left),
		h("Qtd.", 1, align.Right),
		h("Un.", 1, align.Center),
		h("Custo médio", 2, align.Right),
		h("Total", 2, align.Right),
		h("Consumo est.", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por SKU, alternando fondo.
func tableDetailRows(lines []report.StockCostLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		rw := row.New(7).Add(
			col.New(1).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(l.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(format.Integer(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(l.UnitMeasure, format.Placeholder), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(format.Currency(l.UnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(format.Currency(l.TotalCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(l.Consumption, "N/A"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		)
		if i%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rw)
	}
	return result
}

// totalsRow: valor total del stock alineado a la derecha.
func totalsRow(r *report.StockCostReport) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d itens", len(r.Lines)), props.Text{
			Size: 8, Color: colorGray, Top: 3,
		})),
		col.New(3).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(format.Currency(r.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
