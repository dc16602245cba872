package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/report"
)

// Jeu de données de référence : semaines ISO 1 et 2 de 2024
// (le 01/01/2024 est un lundi).
//
//	Lundi : 10 puis 20 — Mardi : 5 puis 15
func pivotFixture(t *testing.T) []entity.LedgerRow {
	t.Helper()
	return []entity.LedgerRow{
		ligne(t, "2024-01-01", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 10, 8.33, 4),
		ligne(t, "2024-01-08", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 20, 16.67, 8),
		ligne(t, "2024-01-02", "Paris 11", "A2", "Rose", "Roses", 1, 5, 4.17, 2),
		ligne(t, "2024-01-09", "Paris 11", "A2", "Rose", "Roses", 1, 15, 12.50, 6),
	}
}

func TestBuildWeeklyPivot_MoyennesEtTotal(t *testing.T) {
	p := report.BuildWeeklyPivot(pivotFixture(t), report.MetricSalesInclTax, report.WeekAscending)

	require.Equal(t, []int{1, 2}, p.Weeks)

	lundi := p.Rows[0]
	require.Equal(t, "Lundi", lundi.Label)
	assert.True(t, dec(10).Equal(lundi.Cells[0]))
	assert.True(t, dec(20).Equal(lundi.Cells[1]))
	assert.True(t, dec(15).Equal(lundi.Average), "Moyenne Lundi: attendu 15, obtenu %s", lundi.Average)

	mardi := p.Rows[1]
	assert.True(t, dec(10).Equal(mardi.Average), "Moyenne Mardi: attendu 10, obtenu %s", mardi.Average)

	// TOTAL = sommes par colonne [15, 35] ; sa Moyenne est la moyenne des
	// sommes hebdomadaires (25), surtout pas le grand total divisé par 7.
	require.Equal(t, report.TotalLabel, p.Total.Label)
	assert.True(t, dec(15).Equal(p.Total.Cells[0]))
	assert.True(t, dec(35).Equal(p.Total.Cells[1]))
	assert.True(t, dec(25).Equal(p.Total.Average), "Moyenne TOTAL: attendu 25, obtenu %s", p.Total.Average)
}

func TestBuildWeeklyPivot_OrdreColonnesDescendant(t *testing.T) {
	p := report.BuildWeeklyPivot(pivotFixture(t), report.MetricSalesInclTax, report.WeekDescending)

	require.Equal(t, []int{2, 1}, p.Weeks)
	assert.True(t, dec(20).Equal(p.Rows[0].Cells[0]), "la colonne la plus récente vient en premier")
}

func TestBuildWeeklyPivot_CelluleAbsenteCompteZero(t *testing.T) {
	// Lundi n'a de données qu'en semaine 1 : la cellule semaine 2 vaut 0 et
	// pèse dans la moyenne de la ligne.
	rows := []entity.LedgerRow{
		ligne(t, "2024-01-01", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 10, 8.33, 4),
		ligne(t, "2024-01-09", "Paris 11", "A2", "Rose", "Roses", 1, 6, 5, 2),
	}

	p := report.BuildWeeklyPivot(rows, report.MetricSalesInclTax, report.WeekAscending)
	lundi := p.Rows[0]
	assert.True(t, lundi.Cells[1].IsZero())
	assert.True(t, dec(5).Equal(lundi.Average))
}

func TestBuildWeeklyPivot_MetriquesTicketsEtPanier(t *testing.T) {
	rows := []entity.LedgerRow{
		ligne(t, "2024-01-01", "Paris 11", "A1", "Bouquet", "Bouquets", 1, 30, 25, 10),
		ligne(t, "2024-01-01", "Paris 11", "A2", "Rose", "Roses", 1, 10, 8.33, 3),
	}

	tickets := report.BuildWeeklyPivot(rows, report.MetricTickets, report.WeekAscending)
	assert.True(t, dec(2).Equal(tickets.Rows[0].Cells[0]), "2 lignes = 2 tickets (approximation ligne = ticket)")

	panier := report.BuildWeeklyPivot(rows, report.MetricBasket, report.WeekAscending)
	assert.True(t, dec(20).Equal(panier.Rows[0].Cells[0]), "panier moyen = 40 TTC / 2 tickets")
	// Cellule sans ticket : panier 0, jamais de division par zéro.
	assert.True(t, panier.Rows[1].Cells[0].IsZero())
}

func TestBuildWeeklyPivot_Vide(t *testing.T) {
	p := report.BuildWeeklyPivot(nil, report.MetricSalesInclTax, report.WeekDescending)

	assert.Empty(t, p.Weeks)
	for _, row := range p.Rows {
		assert.Empty(t, row.Cells)
		assert.True(t, row.Average.IsZero())
	}
	assert.True(t, p.Total.Average.IsZero())
}
