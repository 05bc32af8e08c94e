// Package pdf implementa la generación del reporte PDF del catálogo de libros.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del portal │ Fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Título | Autor | ISBN | Reseñas | Rating prom.      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de libros listados                          │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCatalogReport implementa usecase.CatalogReportGenerator usando Maroto v2.
type MarotoCatalogReport struct {
	appName string
}

// NewMarotoCatalogReport construye el generador.
func NewMarotoCatalogReport(appName string) *MarotoCatalogReport {
	return &MarotoCatalogReport{appName: appName}
}

// GenerateCatalogReport genera el PDF y devuelve sus bytes.
func (g *MarotoCatalogReport) GenerateCatalogReport(
	_ context.Context,
	items []*entity.BookWithStats,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte del catálogo", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableBookRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del portal (izq) y fecha de generación (der).
func headerRow(appName string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Catálogo de libros", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DEL CATÁLOGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del catálogo.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Título", 4, align.Left),
		h("Autor", 3, align.Left),
		h("ISBN", 2, align.Left),
		h("Reseñas", 1, align.Center),
		h("Rating prom.", 2, align.Right),
	)
}

// tableBookRows: una fila por libro, con sus agregados de feedback aprobado.
func tableBookRows(items []*entity.BookWithStats) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, b := range items {
		rating := "—"
		if b.FeedbackCount > 0 {
			rating = b.AverageRating.StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				b.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				b.Author,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				b.ISBN,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", b.FeedbackCount),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				rating,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// summaryRow: total de libros listados.
func summaryRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de libros: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		}),
	))
}
