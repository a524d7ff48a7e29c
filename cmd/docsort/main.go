package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/meberl/docsort/constants"
	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/export"
	"github.com/meberl/docsort/internal/fields"
	"github.com/meberl/docsort/internal/history"
	"github.com/meberl/docsort/internal/pipeline"
	"github.com/meberl/docsort/internal/router"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		configPath = flag.String("config", "", "supplier configuration JSON (required)")
		dir        = flag.String("dir", "", "scan directory override (defaults to the configured scan folder)")
		out        = flag.String("out", "", "run report XLSX path (optional)")
		inmem      = flag.Bool("inmem", false, "use in-memory history database")
		dryRun     = flag.Bool("dry-run", false, "classify and log destinations without moving files")
	)
	flag.Parse()

	if *configPath == "" {
		printError("Error: --config is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

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

	scanDir := *dir
	if scanDir == "" {
		scanDir = scfg.Routing.Scan
	}
	if scanDir == "" {
		printError("Error: no scan directory (set --dir or routing.scan_folder)\n")
		os.Exit(1)
	}

	pdfs, err := listPDFs(scanDir)
	if err != nil {
		logger.Error("failed to list scan directory", "dir", scanDir, "error", err)
		os.Exit(1)
	}
	logger.Info("starting run", "dir", scanDir, "documents", len(pdfs), "dry_run", *dryRun)

	historyPath := cfg.History.Path
	if *inmem {
		historyPath = ":memory:"
	}
	store, err := history.Open(historyPath, logger)
	if err != nil {
		logger.Error("failed to open history database", "path", historyPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("close history database", "error", cerr)
		}
	}()

	deps := fields.Deps{
		Config:   scfg,
		Resolver: fields.NewResolver(scfg, logger),
		Dates:    dates.NewNormalizer(logger),
		Logger:   logger,
	}
	backend := pipeline.NewBackend(cfg, scfg, logger)
	processor := pipeline.NewProcessor(backend, registry, deps, cfg.Pipeline.DocTimeout, logger)
	mover := router.NewRouter(scfg.Routing, logger)

	runID := uuid.New()
	processed := 0
	failures := 0
	parked := 0

	for _, pdfPath := range pdfs {
		doc := history.Document{RunID: runID, SourcePath: pdfPath}

		rec, err := processor.ExtractAll(ctx, pdfPath)
		if err != nil {
			logger.Error("document processing failed", "path", pdfPath, "error", err)
			doc.Err = err.Error()
			doc.Destination = mover.Unknown(pdfPath)
			failures++
		} else {
			doc.Record = rec
			doc.Destination = mover.Destination(pdfPath, rec)
			processed++
		}
		if filepath.Dir(doc.Destination) == scfg.Routing.Unknown {
			parked++
		}

		if *dryRun {
			logger.Info("dry run, not moving", "src", pdfPath, "dst", doc.Destination)
		} else {
			moved, err := mover.Move(pdfPath, doc.Destination)
			if err != nil {
				logger.Error("failed to move document", "src", pdfPath, "error", err)
				if doc.Err == "" {
					doc.Err = err.Error()
					failures++
				}
			} else {
				doc.Destination = moved
			}
		}

		if _, err := store.RecordDocument(ctx, doc); err != nil {
			logger.Error("failed to record document", "path", pdfPath, "error", err)
		}
	}

	if *out != "" {
		exportService := export.NewService(store, logger)
		xlsxBytes, err := exportService.ExportRunXLSX(ctx, runID)
		if err != nil {
			logger.Error("failed to export run report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
			logger.Error("failed to write run report", "path", *out, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("run complete",
		"run_id", runID.String(),
		"documents", len(pdfs),
		"processed", processed,
		"failures", failures,
		"parked", parked,
		"report", *out)

	fmt.Printf("Run complete!\n")
	fmt.Printf("- Documents: %d\n", len(pdfs))
	fmt.Printf("- Processed: %d\n", processed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Parked in unknown folder: %d\n", parked)
	if *out != "" {
		fmt.Printf("- Report: %s\n", *out)
	}
}

// listPDFs returns the PDF files directly inside dir, sorted by name so a
// run processes documents in a stable order.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.IsPDFExt(filepath.Ext(e.Name())) {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pdfs)
	return pdfs, nil
}
