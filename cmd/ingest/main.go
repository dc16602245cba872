// Commande d'ingestion des exports caisse : collecte les fichiers du
// motif CSV_GLOB (ou des chemins passés en argument), les normalise et
// les écrit dans le grand livre. Sort avec un code non nul si au moins
// un fichier a échoué.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/application/ingest"
	"github.com/matrix-dsi/matrix-api/internal/domain/family"
	"github.com/matrix-dsi/matrix-api/internal/infrastructure/csvsource"
	"github.com/matrix-dsi/matrix-api/internal/infrastructure/postgres"
	"github.com/matrix-dsi/matrix-api/pkg/config"
	"github.com/matrix-dsi/matrix-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "debug",
	})

	paths := os.Args[1:]
	if len(paths) == 0 {
		paths, err = filepath.Glob(cfg.Ingest.CSVGlob)
		if err != nil {
			log.Fatal().Err(err).Str("glob", cfg.Ingest.CSVGlob).Msg("motif CSV invalide")
		}
		sort.Strings(paths)
	}
	if len(paths) == 0 {
		log.Warn().Str("glob", cfg.Ingest.CSVGlob).Msg("aucun fichier trouvé avec ce motif")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	pipeline := ingest.NewPipeline(
		csvsource.NewReader(),
		postgres.NewLedgerRepository(pool, cfg.Ingest.TableName),
		family.Default(),
		log,
		ingest.Options{BatchSize: cfg.Ingest.BatchSize, Upsert: cfg.Ingest.Upsert},
	)

	report := pipeline.Ingest(ctx, paths)

	for _, fr := range report.Files {
		ev := log.Info()
		if fr.Status == dto.IngestStatusError {
			ev = log.Error()
		}
		ev.Str("file", fr.File).
			Str("status", fr.Status).
			Int("rows", fr.RowCount).
			Int("invalid_dates", fr.InvalidDates).
			Int("batches", fr.Batches).
			Msg("résultat fichier")
	}
	log.Info().
		Str("run_id", report.RunID).
		Dur("duration", report.Duration).
		Int("files", len(report.Files)).
		Msg("ingestion terminée")

	if report.Failed() {
		os.Exit(1)
	}
}
