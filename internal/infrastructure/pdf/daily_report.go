// Package pdf genera la versión imprimible del desglose diario de ventas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio │ Período + zona horaria        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Ventas | Ganancia | Fiados                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES del período                                        │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appreporting "github.com/jhoicas/Inventario-pos/internal/application/reporting"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// DailyReportGenerator implementa reporting.DailyReportPDFGenerator con Maroto v2.
type DailyReportGenerator struct {
	printer *message.Printer
}

var _ appreporting.DailyReportPDFGenerator = (*DailyReportGenerator)(nil)

// NewDailyReportGenerator construye el generador; los montos se formatean en es-419 (1,234.50).
func NewDailyReportGenerator() *DailyReportGenerator {
	return &DailyReportGenerator{printer: message.NewPrinter(language.LatinAmericanSpanish)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *DailyReportGenerator) Generate(_ context.Context, r appreporting.DailyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ventas por día", true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.dayRows(r.Days)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(r.Days))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *DailyReportGenerator) headerRow(r appreporting.DailyReport) core.Row {
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.BusinessName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Reporte de ventas por día", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%s al %s", r.From, r.To), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Zona horaria: "+r.TimeZone, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
			text.New("Generado: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Ventas", 3, align.Right),
		h("Ganancia", 3, align.Right),
		h("Fiados", 3, align.Right),
	)
}

func (g *DailyReportGenerator) dayRows(days []inventory.DailyBucket) []core.Row {
	if len(days) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en el período", props.Text{Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(days))
	for i, d := range days {
		r := row.New(7).Add(
			col.New(3).Add(text.New(d.Date, props.Text{Top: 1})),
			col.New(3).Add(text.New(g.money(d.Sales), props.Text{Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(d.Profit), props.Text{Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(d.Fiados), props.Text{Align: align.Right, Top: 1})),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

func (g *DailyReportGenerator) totalsRow(days []inventory.DailyBucket) core.Row {
	sales, profit, fiados := decimal.Zero, decimal.Zero, decimal.Zero
	for _, d := range days {
		sales = sales.Add(d.Sales)
		profit = profit.Add(d.Profit)
		fiados = fiados.Add(d.Fiados)
	}
	bold := props.Text{Style: fontstyle.Bold, Align: align.Right, Top: 2}
	return row.New(9).Add(
		col.New(3).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Top: 2})),
		col.New(3).Add(text.New(g.money(sales), bold)),
		col.New(3).Add(text.New(g.money(profit), bold)),
		col.New(3).Add(text.New(g.money(fiados), bold)),
	)
}

func (g *DailyReportGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
