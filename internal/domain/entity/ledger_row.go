package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow représente une ligne de vente ingérée depuis un export caisse.
//
// Clé naturelle d'upsert : (StoreName, PeriodDate, CodeArticle, SourceFile).
// Ré-ingérer le même fichier remplace les lignes existantes au lieu de les
// dupliquer.
//
// PeriodDate est nil quand la date source n'était pas au format jj/mm/aaaa ;
// la ligne est conservée mais comptée comme "date invalide" dans le rapport
// d'ingestion. Les montants absents ou illisibles sont NULL (NullDecimal
// invalide), jamais zéro : un trou de donnée n'est pas un zéro de vente.
type LedgerRow struct {
	StoreName     string
	PeriodDate    *time.Time
	CodeArticle   string
	Label         string // libellé article lisible
	Family        string // famille produit, fournie ou dérivée du libellé
	Quantity      *int64
	SalesExclTax  decimal.NullDecimal // ventes HT
	SalesInclTax  decimal.NullDecimal // ventes TTC
	MarginExclTax decimal.NullDecimal // marge HT
	MarginPct     decimal.NullDecimal
	SourceFile    string // provenance (nom du fichier), pour audit
}

// HasDate indique si la ligne porte une date de période exploitable.
func (r LedgerRow) HasDate() bool { return r.PeriodDate != nil }
