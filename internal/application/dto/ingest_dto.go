package dto

import "time"

// Statuts d'issue par fichier.
const (
	IngestStatusOK    = "ok"
	IngestStatusEmpty = "vide"
	IngestStatusError = "erreur"
)

// FileReport issue de l'ingestion d'un fichier. L'échec d'un fichier
// n'interrompt jamais les suivants.
type FileReport struct {
	File         string `json:"file"`
	Status       string `json:"status"`
	RowCount     int    `json:"rows"`
	InvalidDates int    `json:"invalid_dates"` // lignes conservées mais sans date jj/mm/aaaa
	Batches      int    `json:"batches"`
	Message      string `json:"message,omitempty"`
}

// IngestReport rapport d'une passe d'ingestion complète.
type IngestReport struct {
	RunID    string        `json:"run_id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Files    []FileReport  `json:"files"`
}

// Failed indique si au moins un fichier de la passe a échoué.
func (r IngestReport) Failed() bool {
	for _, f := range r.Files {
		if f.Status == IngestStatusError {
			return true
		}
	}
	return false
}
