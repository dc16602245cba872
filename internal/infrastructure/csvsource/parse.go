package csvsource

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout seul format de date accepté dans les exports : jj/mm/aaaa.
const dateLayout = "02/01/2006"

var decimalCleaner = strings.NewReplacer(
	"€", "",
	" ", "", // séparateur de milliers
	" ", "", // espace insécable (fréquent après décodage Latin-1)
	",", ".", // virgule décimale française
)

// ParseDecimal interprète un montant au format français : symbole euro et
// séparateurs de milliers retirés, virgule décimale convertie en point.
// Chaîne vide → NULL ; texte numérique malformé → NULL en silence, jamais
// de rejet (les trous de montants sont courants dans les exports).
func ParseDecimal(s string) decimal.NullDecimal {
	v := decimalCleaner.Replace(strings.TrimSpace(s))
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseInt même politique de tolérance que ParseDecimal pour les entiers
// (séparateurs de milliers en espace retirés).
func ParseInt(s string) *int64 {
	v := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	v = strings.ReplaceAll(v, " ", "")
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseDate interprète une date jj/mm/aaaa. Vide ou malformée → nil ; la
// ligne reste produite mais le pipeline la compte comme date invalide
// (politique volontairement plus visible que celle des montants).
func ParseDate(s string) *time.Time {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// CleanText normalise un champ texte : espaces et guillemets d'encadrement
// retirés (les exports entourent parfois les libellés de '"').
func CleanText(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
