package ingest

import "github.com/matrix-dsi/matrix-api/internal/infrastructure/csvsource"

// SourceReader port de lecture des exports caisse (implémenté par
// csvsource.Reader ; remplacé par un fake dans les tests du pipeline).
type SourceReader interface {
	ReadFile(path string) (*csvsource.SourceFile, error)
}
