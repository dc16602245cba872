// Package query lit le grand livre page par page avec un ordre stable,
// afin de ramener des plages complètes sans dépendre d'une limite côté
// serveur.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/repository"
)

// DefaultPageSize taille de page par défaut.
const DefaultPageSize = 1000

// LedgerQuery service de lecture paginée du grand livre.
type LedgerQuery struct {
	ledger   repository.LedgerRepository
	pageSize int
}

// NewLedgerQuery construit le service ; pageSize <= 0 prend la valeur
// par défaut.
func NewLedgerQuery(ledger repository.LedgerRepository, pageSize int) *LedgerQuery {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &LedgerQuery{ledger: ledger, pageSize: pageSize}
}

// FetchRange ramène toutes les lignes de la plage [start, end] incluse,
// en itérant page par page jusqu'à une page vide. L'ordre stable
// (date, magasin, code article) garantit l'absence de doublons et de
// trous entre pages sur des données au repos.
func (q *LedgerQuery) FetchRange(ctx context.Context, start, end time.Time) ([]entity.LedgerRow, error) {
	rq := repository.RangeQuery{Start: start, End: end}
	var all []entity.LedgerRow
	for offset := 0; ; offset += q.pageSize {
		page, err := q.ledger.FetchPage(ctx, rq, q.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("lecture du grand livre (offset %d): %w", offset, err)
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		if len(page) < q.pageSize {
			break
		}
	}
	return all, nil
}

// ListStores ramène la liste complète des magasins distincts.
func (q *LedgerQuery) ListStores(ctx context.Context) ([]string, error) {
	var all []string
	for offset := 0; ; offset += q.pageSize {
		page, err := q.ledger.ListStorePage(ctx, q.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("liste des magasins (offset %d): %w", offset, err)
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		if len(page) < q.pageSize {
			break
		}
	}
	return all, nil
}

// DateBounds renvoie les dates extrêmes du grand livre, nil/nil sur un
// livre vide.
func (q *LedgerQuery) DateBounds(ctx context.Context) (min, max *time.Time, err error) {
	return q.ledger.DateBounds(ctx)
}
