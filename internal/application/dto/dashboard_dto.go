package dto

import "github.com/shopspring/decimal"

// RangeRequest paramètres communs des endpoints du dashboard.
type RangeRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`   // YYYY-MM-DD
	Store     string `query:"store"`      // vide = tous les magasins
}

// SummaryDTO cartes KPI de la plage sélectionnée.
type SummaryDTO struct {
	SalesInclTax  decimal.Decimal `json:"ca_ttc"`
	SalesExclTax  decimal.Decimal `json:"ca_ht"`
	MarginExclTax decimal.Decimal `json:"marge_ht"`
	MarginPct     decimal.Decimal `json:"marge_pct"` // somme(marge)/somme(CA HT)*100, 0 si CA HT nul
	Quantity      int64           `json:"qte"`
	RowCount      int             `json:"lignes"`
}

// BucketDTO point d'une courbe d'agrégats calendaires.
type BucketDTO struct {
	Store         string          `json:"magasin,omitempty"`
	Label         string          `json:"bucket_label"`
	Start         string          `json:"bucket_start"` // YYYY-MM-DD
	SalesInclTax  decimal.Decimal `json:"ca_ttc"`
	SalesExclTax  decimal.Decimal `json:"ca_ht"`
	MarginExclTax decimal.Decimal `json:"marge_ht"`
	Quantity      int64           `json:"qte"`
}

// ComparisonSeriesDTO série d'agrégats nommée (un magasin ou "Tous les
// magasins") pour la courbe comparative.
type ComparisonSeriesDTO struct {
	Name    string      `json:"magasin"`
	Buckets []BucketDTO `json:"points"`
}

// PivotRowDTO ligne du tableau croisé hebdomadaire.
type PivotRowDTO struct {
	Label   string            `json:"jour"`
	Cells   []decimal.Decimal `json:"semaines"` // alignées sur PivotDTO.Weeks
	Average decimal.Decimal   `json:"moyenne"`
}

// PivotDTO tableau croisé (jour de semaine × semaine ISO) avec la ligne
// TOTAL et la colonne Moyenne.
type PivotDTO struct {
	Metric string        `json:"metrique"` // tickets | ca_ttc | panier
	Weeks  []int         `json:"numeros_semaine"`
	Rows   []PivotRowDTO `json:"lignes"`
	Total  PivotRowDTO   `json:"total"`
}

// WeekSeriesDTO série de comparaison hebdomadaire (Lundi → Dimanche).
type WeekSeriesDTO struct {
	Label  string            `json:"serie"`
	Week   int               `json:"semaine"` // 0 pour la Moyenne
	Points []decimal.Decimal `json:"points"`
}

// TopArticleDTO article du classement par CA TTC.
type TopArticleDTO struct {
	CodeArticle  string          `json:"code_article"`
	Label        string          `json:"libelle"`
	Article      string          `json:"article"` // "Libellé [code]"
	Quantity     int64           `json:"qte"`
	SalesInclTax decimal.Decimal `json:"ca_ttc"`
}

// FamilyShareDTO part d'une famille dans le CA TTC.
type FamilyShareDTO struct {
	Family       string          `json:"famille"`
	SalesInclTax decimal.Decimal `json:"ca_ttc"`
	SharePct     decimal.Decimal `json:"part_pct"`
}

// FiltersDTO bornes de dates et magasins disponibles pour initialiser les
// filtres du dashboard.
type FiltersDTO struct {
	DateMin string   `json:"date_min,omitempty"` // vide si le grand livre est vide
	DateMax string   `json:"date_max,omitempty"`
	Stores  []string `json:"magasins"`
}

// LedgerRowDTO ligne détaillée renvoyée au tableau de détail.
type LedgerRowDTO struct {
	StoreName     string              `json:"store_name"`
	PeriodDate    string              `json:"period_date"`
	CodeArticle   string              `json:"code_article"`
	Label         string              `json:"libelle"`
	Family        string              `json:"famille"`
	Quantity      *int64              `json:"qte"`
	SalesExclTax  decimal.NullDecimal `json:"ventes_ht"`
	SalesInclTax  decimal.NullDecimal `json:"ventes_ttc"`
	MarginExclTax decimal.NullDecimal `json:"marge_ht"`
	MarginPct     decimal.NullDecimal `json:"marge_pct"`
}
