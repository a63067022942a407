package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"homelibrary/internal/app"
	"homelibrary/internal/identity"
	"homelibrary/internal/logging"
	"homelibrary/internal/metrics"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	logging.SetGlobalLogger(logger)

	reg := prometheus.NewRegistry()
	engine := relations.NewEngine(
		identity.UUID{},
		relations.DefaultRegistry(),
		logger.Component("relations"),
		metrics.New(reg),
	)

	dataStore := store.New()
	catalog := app.NewCatalog(dataStore, engine)
	ctx := context.Background()

	if cfg.Seed.Demo {
		start := time.Now()
		seed, source, err := readSeed(cfg.Seed.File)
		if err != nil {
			logger.Fatal(err, "load seed catalogue")
		}
		counts, err := bootstrapCatalogue(ctx, catalog, seed)
		logger.Seeded(source, counts.Artists, counts.Albums, counts.Tracks, time.Since(start), err)
		if err != nil {
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataStore.ExportState()); err != nil {
		logger.Fatal(err, "encode snapshot")
	}

	if cfg.Metrics.Dump {
		if err := dumpMetrics(os.Stderr, reg); err != nil {
			logger.Error(err, "dump metrics")
		}
	}
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
