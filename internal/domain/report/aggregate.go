// Package report contient le moteur d'agrégation du grand livre de ventes :
// bucketisation calendaire (jour / semaine ISO / mois), totaux multi-axes
// (magasin, famille, article), tableau croisé hebdomadaire et séries de
// comparaison. Fonctions pures sur des lignes déjà matérialisées ; aucune
// synchronisation nécessaire.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
)

// Granularity granularité calendaire d'agrégation.
type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityWeek
	GranularityMonth
)

// ParseGranularity convertit la valeur exposée par l'API ("jour", "semaine",
// "mois"). Valeur inconnue ou vide : jour.
func ParseGranularity(s string) Granularity {
	switch s {
	case "semaine":
		return GranularityWeek
	case "mois":
		return GranularityMonth
	default:
		return GranularityDay
	}
}

// Libellés fixes des jours de semaine, ordre Lundi → Dimanche.
var WeekdayLabels = [7]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// Libellés des lignes/colonnes dérivées du tableau croisé.
const (
	TotalLabel   = "TOTAL"
	AverageLabel = "Moyenne"
)

var monthShortFR = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// Bucket agrégat d'une unité calendaire, éventuellement par magasin.
type Bucket struct {
	Store         string // vide pour un agrégat tous magasins
	Start         time.Time
	Label         string
	SalesInclTax  decimal.Decimal
	SalesExclTax  decimal.Decimal
	MarginExclTax decimal.Decimal
	Quantity      int64
}

// weekdayIndex renvoie l'index Lundi=0 … Dimanche=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// bucketStart aligne une date sur le début de son unité calendaire.
func bucketStart(t time.Time, g Granularity) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case GranularityWeek:
		return d.AddDate(0, 0, -weekdayIndex(d))
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// bucketLabel libellé d'affichage d'un début d'unité calendaire.
func bucketLabel(start time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("du %s au %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	case GranularityMonth:
		return fmt.Sprintf("%s %d", monthShortFR[start.Month()-1], start.Year())
	default:
		return start.Format("2006-01-02")
	}
}

// Aggregate regroupe les lignes par unité calendaire (et par magasin si
// byStore), en sommant CA TTC, CA HT, marge HT et quantité. Le résultat est
// trié par (magasin, début d'unité). Les lignes sans date ne peuvent pas
// être bucketisées et sont hors périmètre (la requête de plage ne les
// sélectionne jamais).
func Aggregate(rows []entity.LedgerRow, g Granularity, byStore bool) []Bucket {
	type key struct {
		store string
		start int64
	}
	acc := make(map[key]*Bucket)
	for _, r := range rows {
		if r.PeriodDate == nil {
			continue
		}
		start := bucketStart(*r.PeriodDate, g)
		k := key{start: start.Unix()}
		if byStore {
			k.store = r.StoreName
		}
		b, ok := acc[k]
		if !ok {
			b = &Bucket{Store: k.store, Start: start, Label: bucketLabel(start, g)}
			acc[k] = b
		}
		b.SalesInclTax = b.SalesInclTax.Add(r.SalesInclTax.Decimal)
		b.SalesExclTax = b.SalesExclTax.Add(r.SalesExclTax.Decimal)
		b.MarginExclTax = b.MarginExclTax.Add(r.MarginExclTax.Decimal)
		if r.Quantity != nil {
			b.Quantity += *r.Quantity
		}
	}

	out := make([]Bucket, 0, len(acc))
	for _, b := range acc {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Store != out[j].Store {
			return out[i].Store < out[j].Store
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// MarginPercent calcule marge/CA HT en pourcentage, 0 si le dénominateur est
// nul (jamais de division par zéro).
func MarginPercent(margin, salesExclTax decimal.Decimal) decimal.Decimal {
	if salesExclTax.IsZero() {
		return decimal.Zero
	}
	return margin.Div(salesExclTax).Mul(decimal.NewFromInt(100))
}

// Totals indicateurs globaux d'une plage (cartes KPI du dashboard).
type Totals struct {
	SalesInclTax  decimal.Decimal
	SalesExclTax  decimal.Decimal
	MarginExclTax decimal.Decimal
	MarginPct     decimal.Decimal
	Quantity      int64
	RowCount      int
}

// ComputeTotals somme les métriques sur toutes les lignes. MarginPct est
// recalculé au niveau agrégé (somme des marges / somme des CA HT), pas
// moyenné depuis les pourcentages ligne à ligne.
func ComputeTotals(rows []entity.LedgerRow) Totals {
	var t Totals
	for _, r := range rows {
		t.SalesInclTax = t.SalesInclTax.Add(r.SalesInclTax.Decimal)
		t.SalesExclTax = t.SalesExclTax.Add(r.SalesExclTax.Decimal)
		t.MarginExclTax = t.MarginExclTax.Add(r.MarginExclTax.Decimal)
		if r.Quantity != nil {
			t.Quantity += *r.Quantity
		}
		t.RowCount++
	}
	t.MarginPct = MarginPercent(t.MarginExclTax, t.SalesExclTax)
	return t
}

// FilterByStore renvoie les lignes du magasin donné (copie, sans mutation).
func FilterByStore(rows []entity.LedgerRow, store string) []entity.LedgerRow {
	var out []entity.LedgerRow
	for _, r := range rows {
		if r.StoreName == store {
			out = append(out, r)
		}
	}
	return out
}

// ArticleRank article classé par CA TTC décroissant.
type ArticleRank struct {
	CodeArticle  string
	Label        string
	Article      string // "Libellé [code]" pour affichage direct
	Quantity     int64
	SalesInclTax decimal.Decimal
}

// TopArticles agrège par (code, libellé) et renvoie les n premiers articles
// par CA TTC décroissant. Égalité départagée par code article pour un ordre
// stable.
func TopArticles(rows []entity.LedgerRow, n int) []ArticleRank {
	type key struct{ code, label string }
	acc := make(map[key]*ArticleRank)
	for _, r := range rows {
		k := key{code: r.CodeArticle, label: r.Label}
		a, ok := acc[k]
		if !ok {
			a = &ArticleRank{
				CodeArticle: r.CodeArticle,
				Label:       r.Label,
				Article:     fmt.Sprintf("%s [%s]", r.Label, r.CodeArticle),
			}
			acc[k] = a
		}
		a.SalesInclTax = a.SalesInclTax.Add(r.SalesInclTax.Decimal)
		if r.Quantity != nil {
			a.Quantity += *r.Quantity
		}
	}

	out := make([]ArticleRank, 0, len(acc))
	for _, a := range acc {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SalesInclTax.Equal(out[j].SalesInclTax) {
			return out[i].SalesInclTax.GreaterThan(out[j].SalesInclTax)
		}
		return out[i].CodeArticle < out[j].CodeArticle
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FamilyShare part d'une famille dans le CA TTC de la plage.
type FamilyShare struct {
	Family       string
	SalesInclTax decimal.Decimal
	SharePct     decimal.Decimal
}

// FamilyShares répartit le CA TTC par famille, part en pourcentage du total
// (0 partout si le total est nul). Tri par CA décroissant, famille en cas
// d'égalité.
func FamilyShares(rows []entity.LedgerRow) []FamilyShare {
	acc := make(map[string]decimal.Decimal)
	for _, r := range rows {
		acc[r.Family] = acc[r.Family].Add(r.SalesInclTax.Decimal)
	}

	var total decimal.Decimal
	for _, v := range acc {
		total = total.Add(v)
	}

	out := make([]FamilyShare, 0, len(acc))
	for fam, v := range acc {
		share := decimal.Zero
		if !total.IsZero() {
			share = v.Div(total).Mul(decimal.NewFromInt(100))
		}
		out = append(out, FamilyShare{Family: fam, SalesInclTax: v, SharePct: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SalesInclTax.Equal(out[j].SalesInclTax) {
			return out[i].SalesInclTax.GreaterThan(out[j].SalesInclTax)
		}
		return out[i].Family < out[j].Family
	})
	return out
}
