// Package analytics expose les cas d'usage du dashboard : il matérialise
// la plage demandée via le service de lecture paginée puis délègue les
// calculs au moteur d'agrégation, et traduit le résultat en DTO.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/application/query"
	"github.com/matrix-dsi/matrix-api/internal/domain"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/report"
	"github.com/matrix-dsi/matrix-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// DefaultTopArticles taille par défaut du classement d'articles.
const DefaultTopArticles = 15

// PivotExporter port de rendu du tableau croisé (implémenté par
// pdf.PivotExporter).
type PivotExporter interface {
	Export(p report.PivotTable, title string) ([]byte, error)
}

// DashboardUseCase cas d'usage de consultation du dashboard.
type DashboardUseCase struct {
	ledger   *query.LedgerQuery
	exporter PivotExporter
	log      *logger.Logger
}

// NewDashboardUseCase construit le cas d'usage. exporter peut être nil si
// l'export PDF n'est pas exposé.
func NewDashboardUseCase(ledger *query.LedgerQuery, exporter PivotExporter, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{ledger: ledger, exporter: exporter, log: log}
}

// Range plage résolue depuis une RangeRequest.
type Range struct {
	Start time.Time
	End   time.Time
	Store string
}

// ResolveRange valide les paramètres communs du dashboard. Les deux dates
// sont obligatoires, au format YYYY-MM-DD, début <= fin.
func ResolveRange(req dto.RangeRequest) (Range, error) {
	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("%w: start_date %q (attendu YYYY-MM-DD)", domain.ErrInvalidInput, req.StartDate)
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("%w: end_date %q (attendu YYYY-MM-DD)", domain.ErrInvalidInput, req.EndDate)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: end_date antérieure à start_date", domain.ErrInvalidInput)
	}
	return Range{Start: start, End: end, Store: req.Store}, nil
}

// fetch matérialise la plage, filtrée sur le magasin demandé.
func (uc *DashboardUseCase) fetch(ctx context.Context, r Range) ([]entity.LedgerRow, error) {
	rows, err := uc.ledger.FetchRange(ctx, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	if r.Store != "" {
		rows = report.FilterByStore(rows, r.Store)
	}
	return rows, nil
}

// Summary calcule les cartes KPI de la plage.
func (uc *DashboardUseCase) Summary(ctx context.Context, r Range) (*dto.SummaryDTO, error) {
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	t := report.ComputeTotals(rows)
	return &dto.SummaryDTO{
		SalesInclTax:  t.SalesInclTax,
		SalesExclTax:  t.SalesExclTax,
		MarginExclTax: t.MarginExclTax,
		MarginPct:     t.MarginPct,
		Quantity:      t.Quantity,
		RowCount:      t.RowCount,
	}, nil
}

// Aggregates calcule la courbe d'agrégats calendaires tous magasins
// confondus (granularité "jour", "semaine" ou "mois").
func (uc *DashboardUseCase) Aggregates(ctx context.Context, r Range, granularity string) ([]dto.BucketDTO, error) {
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	buckets := report.Aggregate(rows, report.ParseGranularity(granularity), false)
	return bucketsToDTO(buckets), nil
}

// StoreComparison calcule une série d'agrégats par magasin, pour la courbe
// comparative. Le filtre magasin de la plage est ignoré : comparer un seul
// magasin n'aurait pas de sens.
func (uc *DashboardUseCase) StoreComparison(ctx context.Context, r Range, granularity string) ([]dto.ComparisonSeriesDTO, error) {
	r.Store = ""
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	buckets := report.Aggregate(rows, report.ParseGranularity(granularity), true)

	var out []dto.ComparisonSeriesDTO
	for _, b := range buckets {
		if len(out) == 0 || out[len(out)-1].Name != b.Store {
			out = append(out, dto.ComparisonSeriesDTO{Name: b.Store})
		}
		s := &out[len(out)-1]
		s.Buckets = append(s.Buckets, bucketToDTO(b))
	}
	return out, nil
}

// WeeklyPivot construit le tableau croisé jour × semaine pour la métrique
// demandée ("tickets", "ca_ttc" ou "panier"), semaines décroissantes.
func (uc *DashboardUseCase) WeeklyPivot(ctx context.Context, r Range, metric string) (*dto.PivotDTO, error) {
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	p := report.BuildWeeklyPivot(rows, report.ParseMetric(metric), report.WeekDescending)
	return pivotToDTO(p), nil
}

// WeeklyPivotPDF rend le tableau croisé de la plage en PDF.
func (uc *DashboardUseCase) WeeklyPivotPDF(ctx context.Context, r Range, metric string) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("%w: export PDF non configuré", domain.ErrInvalidInput)
	}
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	p := report.BuildWeeklyPivot(rows, report.ParseMetric(metric), report.WeekDescending)
	title := fmt.Sprintf("Activité hebdomadaire du %s au %s",
		r.Start.Format("02/01/2006"), r.End.Format("02/01/2006"))
	return uc.exporter.Export(p, title)
}

// WeeklySeries construit la comparaison des n dernières semaines plus la
// série Moyenne.
func (uc *DashboardUseCase) WeeklySeries(ctx context.Context, r Range, metric string, weeks int) ([]dto.WeekSeriesDTO, error) {
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	series := report.LastWeeksComparison(rows, weeks, report.ParseMetric(metric))
	out := make([]dto.WeekSeriesDTO, 0, len(series))
	for _, s := range series {
		out = append(out, dto.WeekSeriesDTO{Label: s.Label, Week: s.Week, Points: s.Points[:]})
	}
	return out, nil
}

// TopArticles renvoie le classement des n premiers articles par CA TTC.
func (uc *DashboardUseCase) TopArticles(ctx context.Context, r Range, n int) ([]dto.TopArticleDTO, error) {
	if n <= 0 {
		n = DefaultTopArticles
	}
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	ranks := report.TopArticles(rows, n)
	out := make([]dto.TopArticleDTO, 0, len(ranks))
	for _, a := range ranks {
		out = append(out, dto.TopArticleDTO{
			CodeArticle:  a.CodeArticle,
			Label:        a.Label,
			Article:      a.Article,
			Quantity:     a.Quantity,
			SalesInclTax: a.SalesInclTax,
		})
	}
	return out, nil
}

// FamilyShares répartit le CA TTC de la plage par famille d'articles.
func (uc *DashboardUseCase) FamilyShares(ctx context.Context, r Range) ([]dto.FamilyShareDTO, error) {
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	shares := report.FamilyShares(rows)
	out := make([]dto.FamilyShareDTO, 0, len(shares))
	for _, s := range shares {
		out = append(out, dto.FamilyShareDTO{Family: s.Family, SalesInclTax: s.SalesInclTax, SharePct: s.SharePct})
	}
	return out, nil
}

// Filters renvoie les bornes de dates et la liste des magasins, pour
// initialiser les filtres côté client.
func (uc *DashboardUseCase) Filters(ctx context.Context) (*dto.FiltersDTO, error) {
	min, max, err := uc.ledger.DateBounds(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := uc.ledger.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	f := &dto.FiltersDTO{Stores: stores}
	if f.Stores == nil {
		f.Stores = []string{}
	}
	if min != nil {
		f.DateMin = min.Format(dateLayout)
	}
	if max != nil {
		f.DateMax = max.Format(dateLayout)
	}
	return f, nil
}

// Detail renvoie les lignes brutes de la plage pour le tableau de détail.
func (uc *DashboardUseCase) Detail(ctx context.Context, r Range) ([]dto.LedgerRowDTO, error) {
	rows, err := uc.fetch(ctx, r)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerRowDTO, 0, len(rows))
	for _, row := range rows {
		d := dto.LedgerRowDTO{
			StoreName:     row.StoreName,
			CodeArticle:   row.CodeArticle,
			Label:         row.Label,
			Family:        row.Family,
			Quantity:      row.Quantity,
			SalesExclTax:  row.SalesExclTax,
			SalesInclTax:  row.SalesInclTax,
			MarginExclTax: row.MarginExclTax,
			MarginPct:     row.MarginPct,
		}
		if row.PeriodDate != nil {
			d.PeriodDate = row.PeriodDate.Format(dateLayout)
		}
		out = append(out, d)
	}
	return out, nil
}

func bucketToDTO(b report.Bucket) dto.BucketDTO {
	return dto.BucketDTO{
		Store:         b.Store,
		Label:         b.Label,
		Start:         b.Start.Format(dateLayout),
		SalesInclTax:  b.SalesInclTax,
		SalesExclTax:  b.SalesExclTax,
		MarginExclTax: b.MarginExclTax,
		Quantity:      b.Quantity,
	}
}

func bucketsToDTO(buckets []report.Bucket) []dto.BucketDTO {
	out := make([]dto.BucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, bucketToDTO(b))
	}
	return out
}

func pivotToDTO(p report.PivotTable) *dto.PivotDTO {
	out := &dto.PivotDTO{
		Metric: p.Metric.String(),
		Weeks:  p.Weeks,
		Rows:   make([]dto.PivotRowDTO, 0, len(p.Rows)),
		Total:  pivotRowToDTO(p.Total),
	}
	for _, row := range p.Rows {
		out.Rows = append(out.Rows, pivotRowToDTO(row))
	}
	return out
}

func pivotRowToDTO(row report.PivotRow) dto.PivotRowDTO {
	return dto.PivotRowDTO{Label: row.Label, Cells: row.Cells, Average: row.Average}
}
