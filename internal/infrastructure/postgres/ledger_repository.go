package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matrix-dsi/matrix-api/internal/domain"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// ledgerColumns colonnes persistées, dans l'ordre des placeholders.
const ledgerColumns = "store_name, period_date, code_article, libelle_article, famille, qte, ventes_ht, ventes_ttc, marge_ht, marge_pct, source_file"

const ledgerColumnCount = 11

// Cible du ON CONFLICT : doit reproduire exactement l'expression de
// l'index unique (les dates NULL sont repliées sur une sentinelle, sinon
// deux lignes sans date ne seraient jamais en conflit).
const conflictTarget = "(store_name, COALESCE(period_date, DATE '0001-01-01'), code_article, source_file)"

// LedgerRepo implémentation du port LedgerRepository sur PostgreSQL. Le
// nom de la table vient de la configuration (TABLE_NAME).
type LedgerRepo struct {
	pool  *pgxpool.Pool
	table string
}

// NewLedgerRepository construit l'adaptateur du grand livre.
func NewLedgerRepository(pool *pgxpool.Pool, table string) *LedgerRepo {
	return &LedgerRepo{pool: pool, table: quoteIdent(table)}
}

// UpsertBatch écrit le lot en une seule requête multi-lignes ; les lignes
// déjà présentes sur la clé naturelle (magasin, date, code article,
// fichier source) sont mises à jour. Ré-ingérer un fichier inchangé ne
// crée donc aucun doublon.
func (r *LedgerRepo) UpsertBatch(ctx context.Context, rows []entity.LedgerRow) error {
	if len(rows) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES %s
		ON CONFLICT %s DO UPDATE SET
			libelle_article = EXCLUDED.libelle_article,
			famille         = EXCLUDED.famille,
			qte             = EXCLUDED.qte,
			ventes_ht       = EXCLUDED.ventes_ht,
			ventes_ttc      = EXCLUDED.ventes_ttc,
			marge_ht        = EXCLUDED.marge_ht,
			marge_pct       = EXCLUDED.marge_pct`,
		r.table, ledgerColumns, valuesPlaceholders(len(rows)), conflictTarget)

	if _, err := r.pool.Exec(ctx, query, ledgerArgs(rows)...); err != nil {
		return fmt.Errorf("upsert grand livre: %w", err)
	}
	return nil
}

// InsertBatch écrit le lot sans gestion de conflit (mode insert-only).
func (r *LedgerRepo) InsertBatch(ctx context.Context, rows []entity.LedgerRow) error {
	if len(rows) == 0 {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", r.table, ledgerColumns, valuesPlaceholders(len(rows)))
	if _, err := r.pool.Exec(ctx, query, ledgerArgs(rows)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
		}
		return fmt.Errorf("insert grand livre: %w", err)
	}
	return nil
}

// FetchPage lit une page de la plage [start, end] avec un ordre stable
// (date, magasin, code article) : la pagination par offset reste cohérente
// tant que les données sont au repos. Les lignes sans date sont hors
// plage par construction du BETWEEN.
func (r *LedgerRepo) FetchPage(ctx context.Context, q repository.RangeQuery, limit, offset int) ([]entity.LedgerRow, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE period_date BETWEEN $1 AND $2
		ORDER BY period_date, store_name, code_article
		LIMIT $3 OFFSET $4`, ledgerColumns, r.table)

	rows, err := r.pool.Query(ctx, query, q.Start, q.End, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("lecture grand livre: %w", err)
	}
	defer rows.Close()

	var out []entity.LedgerRow
	for rows.Next() {
		var lr entity.LedgerRow
		if err := rows.Scan(
			&lr.StoreName, &lr.PeriodDate, &lr.CodeArticle, &lr.Label, &lr.Family,
			&lr.Quantity, &lr.SalesExclTax, &lr.SalesInclTax, &lr.MarginExclTax, &lr.MarginPct,
			&lr.SourceFile,
		); err != nil {
			return nil, fmt.Errorf("scan ligne grand livre: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

// ListStorePage liste une page de magasins distincts, magasins vides
// exclus, ordre alphabétique.
func (r *LedgerRepo) ListStorePage(ctx context.Context, limit, offset int) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT store_name
		FROM %s
		WHERE store_name <> ''
		ORDER BY store_name
		LIMIT $1 OFFSET $2`, r.table)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("liste des magasins: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan magasin: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DateBounds renvoie les dates extrêmes du grand livre (NULL ignorés),
// nil/nil si la table est vide.
func (r *LedgerRepo) DateBounds(ctx context.Context) (min, max *time.Time, err error) {
	query := fmt.Sprintf("SELECT MIN(period_date), MAX(period_date) FROM %s", r.table)
	if err := r.pool.QueryRow(ctx, query).Scan(&min, &max); err != nil {
		return nil, nil, fmt.Errorf("bornes de dates: %w", err)
	}
	return min, max, nil
}

// valuesPlaceholders génère "($1,...,$11),($12,...)" pour n lignes.
func valuesPlaceholders(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for c := 0; c < ledgerColumnCount; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "$%d", i*ledgerColumnCount+c+1)
		}
		b.WriteByte(')')
	}
	return b.String()
}

func ledgerArgs(rows []entity.LedgerRow) []any {
	args := make([]any, 0, len(rows)*ledgerColumnCount)
	for _, r := range rows {
		args = append(args,
			r.StoreName, r.PeriodDate, r.CodeArticle, r.Label, r.Family,
			r.Quantity, r.SalesExclTax, r.SalesInclTax, r.MarginExclTax, r.MarginPct,
			r.SourceFile,
		)
	}
	return args
}
