package repository

import (
	"context"
	"time"

	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
)

// RangeQuery borne une requête sur la période [Start, End] (dates incluses).
type RangeQuery struct {
	Start time.Time
	End   time.Time
}

// LedgerRepository définit le port de persistance du grand livre de ventes.
//
// FetchPage et ListStorePage renvoient des pages triées de façon STABLE
// (period_date, store_name, code_article pour les lignes ; store_name pour
// les magasins) : la pagination par offset perdrait des lignes sans cet
// ordre. La boucle de pagination complète vit dans application/query.
type LedgerRepository interface {
	// UpsertBatch écrit un lot avec déduplication sur la clé naturelle
	// (store_name, period_date, code_article, source_file).
	UpsertBatch(ctx context.Context, rows []entity.LedgerRow) error
	// InsertBatch écrit un lot sans déduplication (mode insert-only).
	InsertBatch(ctx context.Context, rows []entity.LedgerRow) error
	// FetchPage renvoie une page de lignes de la période, triée.
	// Une période sans données renvoie une page vide, pas une erreur.
	FetchPage(ctx context.Context, q RangeQuery, limit, offset int) ([]entity.LedgerRow, error)
	// ListStorePage renvoie une page de noms de magasins distincts, triée.
	ListStorePage(ctx context.Context, limit, offset int) ([]string, error)
	// DateBounds renvoie les dates min et max présentes (nil, nil si vide).
	DateBounds(ctx context.Context) (min, max *time.Time, err error)
}
