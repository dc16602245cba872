package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
)

// ligne construit une LedgerRow de test datée (format 2006-01-02), avec CA
// TTC, CA HT et marge HT donnés en centièmes exacts.
func ligne(t *testing.T, date, store, code, label, famille string, qte int64, ttc, ht, marge float64) entity.LedgerRow {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err, "date de test invalide")
	return entity.LedgerRow{
		StoreName:     store,
		PeriodDate:    &d,
		CodeArticle:   code,
		Label:         label,
		Family:        famille,
		Quantity:      &qte,
		SalesInclTax:  decimal.NewNullDecimal(decimal.NewFromFloat(ttc)),
		SalesExclTax:  decimal.NewNullDecimal(decimal.NewFromFloat(ht)),
		MarginExclTax: decimal.NewNullDecimal(decimal.NewFromFloat(marge)),
		SourceFile:    "test.csv",
	}
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
