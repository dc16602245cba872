// Package pdf rend le tableau croisé hebdomadaire en PDF A4 paysage :
// une ligne par jour de semaine (Lundi → Dimanche), une colonne par
// semaine, puis la colonne Moyenne et la ligne TOTAL.
package pdf

import (
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

	"github.com/matrix-dsi/matrix-api/internal/domain/report"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxWeekColumns borne le nombre de colonnes semaine du rendu : au-delà,
// seules les plus récentes sont gardées (la grille Maroto fait 12
// colonnes, le libellé du jour en consomme 3).
const maxWeekColumns = 8

// PivotExporter rend un report.PivotTable en PDF via Maroto v2.
type PivotExporter struct{}

// NewPivotExporter construit l'exporteur.
func NewPivotExporter() *PivotExporter { return &PivotExporter{} }

// Export génère le document et renvoie ses octets.
func (e *PivotExporter) Export(p report.PivotTable, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	p = capWeeks(p)

	m.AddRows(titleRow(title, p.Metric))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(p.Weeks))
	for d := range p.Rows {
		m.AddRows(valueRow(p.Rows[d], len(p.Weeks), false))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(valueRow(p.Total, len(p.Weeks), true))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: génération du document: %w", err)
	}
	return doc.GetBytes(), nil
}

// capWeeks tronque le tableau aux maxWeekColumns premières colonnes (les
// colonnes arrivent déjà triées, plus récentes d'abord en ordre
// décroissant). Les moyennes ne sont pas recalculées : elles restent
// celles de toutes les semaines observées.
func capWeeks(p report.PivotTable) report.PivotTable {
	if len(p.Weeks) <= maxWeekColumns {
		return p
	}
	p.Weeks = p.Weeks[:maxWeekColumns]
	for d := range p.Rows {
		p.Rows[d].Cells = p.Rows[d].Cells[:maxWeekColumns]
	}
	p.Total.Cells = p.Total.Cells[:maxWeekColumns]
	return p
}

func metricLabel(m report.Metric) string {
	switch m {
	case report.MetricSalesInclTax:
		return "CA TTC"
	case report.MetricBasket:
		return "Panier moyen"
	default:
		return "Tickets"
	}
}

func titleRow(title string, m report.Metric) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Métrique : "+metricLabel(m), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Édité le "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// columnWidths répartit la grille de 12 : 3 pour le jour, le reste pour
// les semaines et la Moyenne.
func columnWidths(weeks int) (label, value int) {
	value = 9 / (weeks + 1)
	if value < 1 {
		value = 1
	}
	label = 12 - value*(weeks+1)
	return label, value
}

func headerRow(weeks []int) core.Row {
	labelW, valueW := columnWidths(len(weeks))
	h := func(s string, w int) core.Col {
		return col.New(w).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		}))
	}
	cols := []core.Col{col.New(labelW).Add(text.New("Jour", props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
	}))}
	for _, w := range weeks {
		cols = append(cols, h(fmt.Sprintf("S%d", w), valueW))
	}
	cols = append(cols, h(report.AverageLabel, valueW))
	return row.New(8).Add(cols...)
}

func valueRow(r report.PivotRow, weeks int, bold bool) core.Row {
	labelW, valueW := columnWidths(weeks)
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	cell := func(s string, w int) core.Col {
		return col.New(w).Add(text.New(s, props.Text{
			Style: style, Size: 8, Align: align.Right, Top: 1, Right: 1,
		}))
	}
	cols := []core.Col{col.New(labelW).Add(text.New(r.Label, props.Text{
		Style: style, Size: 8, Top: 1, Left: 1,
	}))}
	for _, v := range r.Cells {
		cols = append(cols, cell(v.StringFixed(2), valueW))
	}
	cols = append(cols, cell(r.Average.StringFixed(2), valueW))
	return row.New(7).Add(cols...)
}
