package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/fields"
	"github.com/meberl/docsort/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "supplier configuration JSON (required)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *configPath == "" || flag.NArg() != 1 {
		logger.Error("usage", "cmd", "runextract --config <config.json> <document.pdf>")
		os.Exit(2)
	}
	pdfPath := flag.Arg(0)

	cfg := common.LoadConfig()
	scfg, err := common.LoadSupplierConfig(*configPath)
	if err != nil {
		logger.Error("failed to load supplier config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	registry := fields.NewRegistry()
	if err := registry.Validate(scfg.Suppliers); err != nil {
		logger.Error("supplier config names unknown extractors", "error", err)
		os.Exit(1)
	}

	deps := fields.Deps{
		Config:   scfg,
		Resolver: fields.NewResolver(scfg, logger),
		Dates:    dates.NewNormalizer(logger),
		Logger:   logger,
	}
	backend := pipeline.NewBackend(cfg, scfg, logger)
	processor := pipeline.NewProcessor(backend, registry, deps, cfg.Pipeline.DocTimeout, logger)

	ctx := context.Background()
	start := time.Now()
	rec, err := processor.ExtractAll(ctx, pdfPath)
	if err != nil {
		logger.Error("extraction failed",
			"path", pdfPath, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
