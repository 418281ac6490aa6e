// Package pdf genera el roster imprimible de un horario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante + ID    │  Horario + rango de fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Horario | Rol | Turno | Asignado | Horas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: turnos / sin asignar / horas                       │
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

	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.SchedulePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.SchedulePDFGenerator usando Maroto v2.
// Las horas se muestran en la zona de referencia loc.
type MarotoPDFGenerator struct {
	loc *time.Location
}

// NewMarotoPDFGenerator construye el generador; loc nil equivale a UTC.
func NewMarotoPDFGenerator(loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{loc: loc}
}

// GenerateSchedulePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSchedulePDF(
	_ context.Context,
	restaurant *entity.Restaurant,
	schedule *entity.Schedule,
	lines []ports.RosterLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Horario "+schedule.Name, true).
		WithAuthor(restaurant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(restaurant, schedule))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(restaurant *entity.Restaurant, schedule *entity.Schedule) core.Row {
	rango := fmt.Sprintf("%s al %s",
		schedule.StartDate.Format("02/01/2006"),
		schedule.EndDate.Format("02/01/2006"),
	)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(restaurant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Restaurante #%d", restaurant.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HORARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(schedule.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(rango, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Fecha", 2, align.Left),
		h("Horario", 2, align.Center),
		h("Rol", 2, align.Left),
		h("Turno", 2, align.Left),
		h("Asignado", 3, align.Left),
		h("Horas", 1, align.Right),
	)
}

func (g *MarotoPDFGenerator) tableRows(lines []ports.RosterLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range lines {
		sh := l.Shift
		horario := fmt.Sprintf("%s - %s",
			sh.StartTime.In(g.loc).Format("15:04"),
			sh.EndTime.In(g.loc).Format("15:04"),
		)
		result = append(result, row.New(7).Add(
			cell(sh.Date.Format("Mon 02/01"), 2, align.Left),
			cell(horario, 2, align.Center),
			cell(sh.Role, 2, align.Left),
			cell(nonEmpty(sh.Name, "-"), 2, align.Left),
			cell(nonEmpty(l.AssigneeName, "Sin asignar"), 3, align.Left),
			cell(hours(sh).StringFixed(2), 1, align.Right),
		))
	}
	return result
}

func totalsRow(lines []ports.RosterLine) core.Row {
	total := decimal.Zero
	unassigned := 0
	for _, l := range lines {
		total = total.Add(hours(l.Shift))
		if l.Shift.AssignedToID == nil {
			unassigned++
		}
	}
	resumen := fmt.Sprintf("Turnos: %d   |   Sin asignar: %d   |   Horas totales: %s",
		len(lines), unassigned, total.StringFixed(2))
	return row.New(10).Add(
		col.New(12).Add(text.New(resumen, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3, Color: colorPrimary,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func hours(sh *entity.Shift) decimal.Decimal {
	return decimal.NewFromInt(int64(sh.EndTime.Sub(sh.StartTime).Minutes())).Div(decimal.NewFromInt(60))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
