package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/report"
)

func TestLastWeeksComparison_SelectionEtMoyenneGlobale(t *testing.T) {
	// Quatre lundis consécutifs (semaines ISO 1 à 4 de 2024) : la sélection
	// retient les 3 dernières semaines mais la Moyenne porte sur les 4.
	rows := []entity.LedgerRow{
		ligne(t, "2024-01-01", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 10, 8.33, 4),
		ligne(t, "2024-01-08", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 20, 16.67, 8),
		ligne(t, "2024-01-15", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 30, 25, 12),
		ligne(t, "2024-01-22", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 40, 33.33, 16),
	}

	series := report.LastWeeksComparison(rows, 3, report.MetricSalesInclTax)
	require.Len(t, series, 4, "3 semaines sélectionnées + la série Moyenne")

	assert.Equal(t, 2, series[0].Week)
	assert.Equal(t, 3, series[1].Week)
	assert.Equal(t, 4, series[2].Week)
	assert.Equal(t, "Semaine 4", series[2].Label)
	assert.True(t, dec(40).Equal(series[2].Points[0]))

	moyenne := series[3]
	assert.Equal(t, report.AverageLabel, moyenne.Label)
	assert.Equal(t, 0, moyenne.Week)
	// (10+20+30+40)/4 : moyenne sur TOUTES les semaines observées.
	assert.True(t, dec(25).Equal(moyenne.Points[0]), "Moyenne Lundi: attendu 25, obtenu %s", moyenne.Points[0])
	assert.True(t, moyenne.Points[1].IsZero(), "Mardi sans données: 0")
}

func TestLastWeeksComparison_MoinsDeSemainesQueDemande(t *testing.T) {
	rows := []entity.LedgerRow{
		ligne(t, "2024-01-01", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 10, 8.33, 4),
		ligne(t, "2024-01-08", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 20, 16.67, 8),
	}

	series := report.LastWeeksComparison(rows, 3, report.MetricSalesInclTax)
	require.Len(t, series, 3, "2 semaines disponibles + Moyenne")
}

func TestLastWeeksComparison_NParDefaut(t *testing.T) {
	rows := []entity.LedgerRow{
		ligne(t, "2024-01-01", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 10, 8.33, 4),
	}

	series := report.LastWeeksComparison(rows, 0, report.MetricSalesInclTax)
	require.Len(t, series, 2)
	assert.Equal(t, "Semaine 1", series[0].Label)
}

func TestLastWeeksComparison_SansDonnees(t *testing.T) {
	assert.Nil(t, report.LastWeeksComparison(nil, 3, report.MetricSalesInclTax))
}
