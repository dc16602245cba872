package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
)

// Metric métrique portée par une cellule du tableau croisé.
type Metric int

const (
	// MetricTickets nombre de lignes de vente. Faute d'identifiant de
	// ticket dans les exports caisse, chaque ligne compte pour un ticket :
	// c'est une approximation assumée, pas un vrai comptage par reçu.
	MetricTickets Metric = iota
	// MetricSalesInclTax somme du CA TTC.
	MetricSalesInclTax
	// MetricBasket panier moyen = CA TTC / tickets (même approximation que
	// MetricTickets), 0 quand la cellule est vide.
	MetricBasket
)

// ParseMetric convertit la valeur exposée par l'API ("tickets", "ca_ttc",
// "panier"). Valeur inconnue ou vide : tickets.
func ParseMetric(s string) Metric {
	switch s {
	case "ca_ttc":
		return MetricSalesInclTax
	case "panier":
		return MetricBasket
	default:
		return MetricTickets
	}
}

func (m Metric) String() string {
	switch m {
	case MetricSalesInclTax:
		return "ca_ttc"
	case MetricBasket:
		return "panier"
	default:
		return "tickets"
	}
}

// WeekOrder sens de tri des colonnes semaine.
type WeekOrder int

const (
	WeekDescending WeekOrder = iota // semaine la plus récente d'abord
	WeekAscending
)

// PivotRow ligne du tableau croisé : un jour de semaine (ou TOTAL), une
// cellule par semaine observée, puis la colonne Moyenne.
type PivotRow struct {
	Label   string
	Cells   []decimal.Decimal // alignées sur PivotTable.Weeks
	Average decimal.Decimal
}

// PivotTable tableau croisé hebdomadaire : 7 lignes fixes Lundi → Dimanche
// plus la ligne TOTAL ; colonnes = numéros de semaine ISO observés plus la
// colonne Moyenne.
//
// Invariants :
//   - Moyenne d'une ligne = moyenne arithmétique de ses cellules semaine
//     (cellules absentes comptées à zéro) ;
//   - cellule semaine de TOTAL = somme de la colonne ;
//   - Moyenne de TOTAL = moyenne des sommes hebdomadaires, PAS le grand
//     total divisé par 7.
type PivotTable struct {
	Metric Metric
	Weeks  []int
	Rows   [7]PivotRow
	Total  PivotRow
}

type pivotCell struct {
	tickets int64
	sales   decimal.Decimal
}

func (c pivotCell) value(m Metric) decimal.Decimal {
	switch m {
	case MetricSalesInclTax:
		return c.sales
	case MetricBasket:
		if c.tickets == 0 {
			return decimal.Zero
		}
		return c.sales.Div(decimal.NewFromInt(c.tickets))
	default:
		return decimal.NewFromInt(c.tickets)
	}
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// BuildWeeklyPivot construit le tableau croisé (jour de semaine × semaine
// ISO) pour la métrique donnée. Les lignes sans date sont ignorées.
func BuildWeeklyPivot(rows []entity.LedgerRow, m Metric, order WeekOrder) PivotTable {
	type key struct {
		weekday int
		week    int
	}
	cells := make(map[key]pivotCell)
	weekSet := make(map[int]struct{})
	for _, r := range rows {
		if r.PeriodDate == nil {
			continue
		}
		_, week := r.PeriodDate.ISOWeek()
		k := key{weekday: weekdayIndex(*r.PeriodDate), week: week}
		c := cells[k]
		c.tickets++
		c.sales = c.sales.Add(r.SalesInclTax.Decimal)
		cells[k] = c
		weekSet[week] = struct{}{}
	}

	weeks := make([]int, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	if order == WeekDescending {
		for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
			weeks[i], weeks[j] = weeks[j], weeks[i]
		}
	}

	p := PivotTable{Metric: m, Weeks: weeks}
	colSums := make([]decimal.Decimal, len(weeks))
	for d := 0; d < 7; d++ {
		row := PivotRow{Label: WeekdayLabels[d], Cells: make([]decimal.Decimal, len(weeks))}
		var rowSum decimal.Decimal
		for i, w := range weeks {
			v := cells[key{weekday: d, week: w}].value(m)
			row.Cells[i] = v
			rowSum = rowSum.Add(v)
			colSums[i] = colSums[i].Add(v)
		}
		row.Average = mean(rowSum, len(weeks))
		p.Rows[d] = row
	}

	// Ligne TOTAL : somme par colonne ; sa Moyenne est la moyenne des
	// sommes hebdomadaires (cas classiquement faux quand on divise le grand
	// total par 7).
	var totalSum decimal.Decimal
	for _, s := range colSums {
		totalSum = totalSum.Add(s)
	}
	p.Total = PivotRow{
		Label:   TotalLabel,
		Cells:   colSums,
		Average: mean(totalSum, len(weeks)),
	}
	return p
}
