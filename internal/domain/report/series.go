package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
)

// DefaultComparisonWeeks nombre de semaines comparées par défaut.
const DefaultComparisonWeeks = 3

// WeekSeries série hebdomadaire ordonnée Lundi → Dimanche. Week vaut 0 pour
// la série Moyenne.
type WeekSeries struct {
	Label  string
	Week   int
	Points [7]decimal.Decimal
}

// LastWeeksComparison renvoie une série par semaine parmi les n numéros de
// semaine ISO les plus récents présents dans les lignes (toutes si moins de
// n), plus la série Moyenne calculée sur TOUTES les semaines observées —
// pas seulement les n retenues. Semaines en ordre croissant, Moyenne en
// dernier. n <= 0 retombe sur DefaultComparisonWeeks.
func LastWeeksComparison(rows []entity.LedgerRow, n int, m Metric) []WeekSeries {
	if n <= 0 {
		n = DefaultComparisonWeeks
	}

	// Réutilise le pivot en ordre croissant : cellules déjà alignées
	// (jour de semaine × semaine), zéros compris.
	p := BuildWeeklyPivot(rows, m, WeekAscending)
	if len(p.Weeks) == 0 {
		return nil
	}

	selected := p.Weeks
	if len(selected) > n {
		selected = selected[len(selected)-n:]
	}

	out := make([]WeekSeries, 0, len(selected)+1)
	for _, w := range selected {
		i := sort.SearchInts(p.Weeks, w)
		s := WeekSeries{Label: fmt.Sprintf("Semaine %d", w), Week: w}
		for d := 0; d < 7; d++ {
			s.Points[d] = p.Rows[d].Cells[i]
		}
		out = append(out, s)
	}

	avg := WeekSeries{Label: AverageLabel}
	for d := 0; d < 7; d++ {
		avg.Points[d] = p.Rows[d].Average
	}
	return append(out, avg)
}
