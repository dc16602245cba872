package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/matrix-dsi/matrix-api/internal/application/analytics"
	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/application/query"
	"github.com/matrix-dsi/matrix-api/internal/domain"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/repository"
	"github.com/matrix-dsi/matrix-api/pkg/logger"
)

type memLedger struct {
	rows   []entity.LedgerRow
	stores []string
	min    *time.Time
	max    *time.Time
}

func (m *memLedger) FetchPage(_ context.Context, _ repository.RangeQuery, limit, offset int) ([]entity.LedgerRow, error) {
	if offset >= len(m.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.rows[offset:end], nil
}

func (m *memLedger) ListStorePage(_ context.Context, limit, offset int) ([]string, error) {
	if offset >= len(m.stores) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.stores) {
		end = len(m.stores)
	}
	return m.stores[offset:end], nil
}

func (m *memLedger) UpsertBatch(context.Context, []entity.LedgerRow) error { return nil }
func (m *memLedger) InsertBatch(context.Context, []entity.LedgerRow) error { return nil }
func (m *memLedger) DateBounds(context.Context) (*time.Time, *time.Time, error) {
	return m.min, m.max, nil
}

var _ repository.LedgerRepository = (*memLedger)(nil)

func ligne(dateStr, store, code, famille string, qte int64, ttc string) entity.LedgerRow {
	d, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	v, _ := decimal.NewFromString(ttc)
	return entity.LedgerRow{
		StoreName:    store,
		PeriodDate:   &d,
		CodeArticle:  code,
		Label:        "Article " + code,
		Family:       famille,
		Quantity:     &qte,
		SalesInclTax: decimal.NewNullDecimal(v),
	}
}

func newUseCase(ledger *memLedger) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(query.NewLedgerQuery(ledger, 1000), nil, logger.Nop())
}

func plage(start, end, store string) analytics.Range {
	r, _ := analytics.ResolveRange(dto.RangeRequest{StartDate: start, EndDate: end, Store: store})
	return r
}

func TestResolveRange(t *testing.T) {
	r, err := analytics.ResolveRange(dto.RangeRequest{StartDate: "2024-03-01", EndDate: "2024-03-31", Store: "Paris 11"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, "Paris 11", r.Store)

	_, err = analytics.ResolveRange(dto.RangeRequest{StartDate: "01/03/2024", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = analytics.ResolveRange(dto.RangeRequest{StartDate: "2024-03-31", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fin antérieure au début")
}

func TestSummary_FiltreMagasin(t *testing.T) {
	uc := newUseCase(&memLedger{rows: []entity.LedgerRow{
		ligne("2024-03-14", "Paris 11", "A1", "Bouquets", 2, "25.50"),
		ligne("2024-03-14", "Lyon", "A2", "Roses", 1, "10.00"),
	}})

	s, err := uc.Summary(context.Background(), plage("2024-03-01", "2024-03-31", "Paris 11"))
	require.NoError(t, err)
	assert.Equal(t, "25.5", s.SalesInclTax.String())
	assert.Equal(t, int64(2), s.Quantity)
	assert.Equal(t, 1, s.RowCount)
}

func TestStoreComparison_IgnoreLeFiltreMagasin(t *testing.T) {
	uc := newUseCase(&memLedger{rows: []entity.LedgerRow{
		ligne("2024-03-14", "Lyon", "A2", "Roses", 1, "10.00"),
		ligne("2024-03-14", "Paris 11", "A1", "Bouquets", 2, "25.50"),
		ligne("2024-03-15", "Paris 11", "A1", "Bouquets", 1, "12.00"),
	}})

	series, err := uc.StoreComparison(context.Background(), plage("2024-03-01", "2024-03-31", "Paris 11"), "jour")
	require.NoError(t, err)

	require.Len(t, series, 2, "les deux magasins apparaissent malgré le filtre")
	assert.Equal(t, "Lyon", series[0].Name)
	assert.Equal(t, "Paris 11", series[1].Name)
	assert.Len(t, series[1].Buckets, 2)
}

func TestWeeklyPivot_Metrique(t *testing.T) {
	uc := newUseCase(&memLedger{rows: []entity.LedgerRow{
		ligne("2024-03-14", "Paris 11", "A1", "Bouquets", 2, "25.50"),
	}})

	p, err := uc.WeeklyPivot(context.Background(), plage("2024-03-01", "2024-03-31", ""), "ca_ttc")
	require.NoError(t, err)
	assert.Equal(t, "ca_ttc", p.Metric)
	require.Len(t, p.Rows, 7)
	assert.Equal(t, "Lundi", p.Rows[0].Label)
	assert.Equal(t, "TOTAL", p.Total.Label)
}

func TestFilters_LivreVide(t *testing.T) {
	uc := newUseCase(&memLedger{})
	f, err := uc.Filters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.DateMin)
	assert.Empty(t, f.DateMax)
	assert.NotNil(t, f.Stores)
	assert.Empty(t, f.Stores)
}

func TestFilters_Bornes(t *testing.T) {
	min := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	max := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	uc := newUseCase(&memLedger{min: &min, max: &max, stores: []string{"Lyon", "Paris 11"}})

	f, err := uc.Filters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", f.DateMin)
	assert.Equal(t, "2024-03-31", f.DateMax)
	assert.Equal(t, []string{"Lyon", "Paris 11"}, f.Stores)
}

func TestDetail_DateFormatee(t *testing.T) {
	rows := []entity.LedgerRow{ligne("2024-03-14", "Paris 11", "A1", "Bouquets", 2, "25.50")}
	rows = append(rows, entity.LedgerRow{StoreName: "Paris 11", CodeArticle: "A2"}) // sans date
	uc := newUseCase(&memLedger{rows: rows})

	got, err := uc.Detail(context.Background(), plage("2024-03-01", "2024-03-31", ""))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-14", got[0].PeriodDate)
	assert.Empty(t, got[1].PeriodDate)
}
