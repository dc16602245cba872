// Package ingest orchestre l'ingestion des exports caisse : lecture
// tolérante, normalisation vers LedgerRow et écriture par lots dans le
// grand livre, avec un rapport d'issue par fichier.
package ingest

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/internal/domain/family"
	"github.com/matrix-dsi/matrix-api/internal/domain/repository"
	"github.com/matrix-dsi/matrix-api/internal/infrastructure/csvsource"
	"github.com/matrix-dsi/matrix-api/pkg/logger"
)

// DefaultBatchSize taille de lot d'écriture par défaut.
const DefaultBatchSize = 500

// Options réglages du pipeline.
type Options struct {
	BatchSize int  // <= 0 : DefaultBatchSize
	Upsert    bool // false : insert-only (doublons possibles en ré-ingestion)
}

// Pipeline cas d'usage d'ingestion. Le traitement est séquentiel fichier
// par fichier et sans état partagé entre fichiers.
type Pipeline struct {
	reader     SourceReader
	ledger     repository.LedgerRepository
	classifier *family.Classifier
	log        *logger.Logger
	opts       Options
}

// NewPipeline construit le pipeline.
func NewPipeline(reader SourceReader, ledger repository.LedgerRepository, classifier *family.Classifier, log *logger.Logger, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Pipeline{reader: reader, ledger: ledger, classifier: classifier, log: log, opts: opts}
}

// Ingest traite chaque fichier : lecture, normalisation, écriture par lots
// (upsert par défaut). L'échec d'un fichier — illisible ou erreur
// d'écriture — est journalisé et consigné dans le rapport, puis le
// traitement continue avec le fichier suivant. Ré-ingérer un fichier
// inchangé en mode upsert ne crée aucun doublon (clé naturelle).
func (p *Pipeline) Ingest(ctx context.Context, paths []string) *dto.IngestReport {
	report := &dto.IngestReport{
		RunID:   uuid.New().String(),
		Started: time.Now(),
	}
	for _, path := range paths {
		report.Files = append(report.Files, p.processFile(ctx, path))
	}
	report.Duration = time.Since(report.Started)
	return report
}

func (p *Pipeline) processFile(ctx context.Context, path string) dto.FileReport {
	fr := dto.FileReport{File: path}

	src, err := p.reader.ReadFile(path)
	if err != nil {
		p.log.Error().Err(err).Str("file", path).Msg("fichier illisible")
		fr.Status = dto.IngestStatusError
		fr.Message = err.Error()
		return fr
	}
	if len(src.Records) == 0 {
		p.log.Info().Str("file", path).Str("delimiter", string(src.Delimiter)).
			Strs("headers", src.Headers).Msg("fichier vide ou en-têtes non reconnues")
		fr.Status = dto.IngestStatusEmpty
		return fr
	}

	p.log.Debug().Str("file", path).Str("delimiter", string(src.Delimiter)).
		Strs("headers", src.Headers).Int("rows", len(src.Records)).Msg("fichier lu")

	sourceFile := filepath.Base(path)
	rows := make([]entity.LedgerRow, 0, len(src.Records))
	for _, rec := range src.Records {
		row := p.rowFromRecord(rec, sourceFile)
		if !row.HasDate() {
			fr.InvalidDates++
		}
		rows = append(rows, row)
	}
	fr.RowCount = len(rows)
	if fr.InvalidDates > 0 {
		p.log.Warn().Str("file", path).Int("invalid_dates", fr.InvalidDates).
			Msg("lignes sans date jj/mm/aaaa")
	}

	if err := p.writeBatches(ctx, rows, &fr); err != nil {
		p.log.Error().Err(err).Str("file", path).Msg("écriture du grand livre")
		fr.Status = dto.IngestStatusError
		fr.Message = err.Error()
		return fr
	}

	fr.Status = dto.IngestStatusOK
	p.log.Info().Str("file", path).Int("rows", fr.RowCount).Int("batches", fr.Batches).Msg("fichier importé")
	return fr
}

// rowFromRecord normalise un record brut : résolution tolérante des
// colonnes puis parsing localisé. Montants malformés → NULL en silence ;
// date malformée → ligne conservée, comptée par l'appelant. La famille
// vient de la colonne dédiée quand elle existe, sinon du classificateur.
func (p *Pipeline) rowFromRecord(rec csvsource.Record, sourceFile string) entity.LedgerRow {
	label := csvsource.CleanText(csvsource.Resolve(rec, csvsource.FieldLabel))
	fam := csvsource.CleanText(csvsource.Resolve(rec, csvsource.FieldFamily))
	if fam == "" {
		fam = p.classifier.Classify(label)
	}
	return entity.LedgerRow{
		StoreName:     csvsource.CleanText(csvsource.Resolve(rec, csvsource.FieldStoreName)),
		PeriodDate:    csvsource.ParseDate(csvsource.Resolve(rec, csvsource.FieldPeriodDate)),
		CodeArticle:   csvsource.CleanText(csvsource.Resolve(rec, csvsource.FieldCodeArticle)),
		Label:         label,
		Family:        fam,
		Quantity:      csvsource.ParseInt(csvsource.Resolve(rec, csvsource.FieldQuantity)),
		SalesExclTax:  csvsource.ParseDecimal(csvsource.Resolve(rec, csvsource.FieldSalesExclTax)),
		SalesInclTax:  csvsource.ParseDecimal(csvsource.Resolve(rec, csvsource.FieldSalesInclTax)),
		MarginExclTax: csvsource.ParseDecimal(csvsource.Resolve(rec, csvsource.FieldMarginExcl)),
		MarginPct:     csvsource.ParseDecimal(csvsource.Resolve(rec, csvsource.FieldMarginPct)),
		SourceFile:    sourceFile,
	}
}

// writeBatches écrit rows par tranches de BatchSize, en upsert ou insert
// selon la configuration.
func (p *Pipeline) writeBatches(ctx context.Context, rows []entity.LedgerRow, fr *dto.FileReport) error {
	for i := 0; i < len(rows); i += p.opts.BatchSize {
		end := i + p.opts.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[i:end]
		var err error
		if p.opts.Upsert {
			err = p.ledger.UpsertBatch(ctx, chunk)
		} else {
			err = p.ledger.InsertBatch(ctx, chunk)
		}
		if err != nil {
			return err
		}
		fr.Batches++
	}
	return nil
}
