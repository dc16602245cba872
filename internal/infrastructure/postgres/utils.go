package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation détecte une violation de contrainte unique (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// quoteIdent protège un nom de table venu de la configuration. Les
// placeholders ne couvrent pas les identifiants.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
