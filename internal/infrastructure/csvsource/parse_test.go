package csvsource_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/matrix-dsi/matrix-api/internal/infrastructure/csvsource"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"format français complet", "1 234,56 €", "1234.56", true},
		{"virgule décimale simple", "12,5", "12.5", true},
		{"point décimal accepté", "12.5", "12.5", true},
		{"négatif", "-3,20", "-3.2", true},
		{"espace insécable en milliers", "1 234,56", "1234.56", true},
		{"entier", "42", "42", true},
		{"vide", "", "", false},
		{"espaces seulement", "   ", "", false},
		{"texte non numérique", "abc", "", false},
		{"euro seul", "€", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := csvsource.ParseDecimal(tt.in)
			if !tt.valid {
				assert.False(t, got.Valid, "attendu NULL, obtenu %s", got.Decimal)
				return
			}
			require.True(t, got.Valid)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(got.Decimal), "attendu %s, obtenu %s", want, got.Decimal)
		})
	}
}

func TestParseInt(t *testing.T) {
	n := csvsource.ParseInt("1 200")
	require.NotNil(t, n)
	assert.Equal(t, int64(1200), *n)

	assert.Nil(t, csvsource.ParseInt(""))
	assert.Nil(t, csvsource.ParseInt("abc"))
	assert.Nil(t, csvsource.ParseInt("12,5"), "un décimal n'est pas un entier valide")
}

func TestParseDate(t *testing.T) {
	d := csvsource.ParseDate("14/03/2024")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), *d)

	// Aller-retour : la date parsée reformatée redonne la chaîne source.
	assert.Equal(t, "14/03/2024", d.Format("02/01/2006"))

	assert.Nil(t, csvsource.ParseDate(""))
	assert.Nil(t, csvsource.ParseDate("2024-03-14"), "seul jj/mm/aaaa est accepté")
	assert.Nil(t, csvsource.ParseDate("32/01/2024"))
	assert.Nil(t, csvsource.ParseDate("14/03/24"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Paris 11", csvsource.CleanText(`  "Paris 11" `))
	assert.Equal(t, "", csvsource.CleanText(`""`))
}
