// Package pipeline runs one document through extraction, language
// refinement, supplier resolution and field assembly.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/meberl/docsort/internal/extract"
	"github.com/meberl/docsort/internal/fields"
	"github.com/meberl/docsort/internal/lang"
	"github.com/meberl/docsort/internal/ocr"
)

// tunable is the optional backend capability for a supplier-specific
// second OCR pass. The native text backend does not implement it.
type tunable interface {
	ExtractTuned(ctx context.Context, path string, p ocr.Profile, v ocr.PreprocessVariant) (extract.Result, error)
}

// Processor wires the per-document stages together. One Processor serves
// a whole batch; everything document-specific travels as arguments.
type Processor struct {
	Backend    extract.TextExtractor
	Refiner    *lang.Refiner
	Registry   *fields.Registry
	Deps       fields.Deps
	DocTimeout time.Duration
	Logger     *slog.Logger
}

func NewProcessor(backend extract.TextExtractor, registry *fields.Registry, deps fields.Deps, timeout time.Duration, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Backend:    backend,
		Refiner:    lang.NewRefiner(logger),
		Registry:   registry,
		Deps:       deps,
		DocTimeout: timeout,
		Logger:     logger,
	}
}

// ExtractAll produces the record for one PDF. Extraction failures degrade
// to an empty-text record rather than aborting the document; every rule
// tolerates empty input. The per-document timeout bounds a single slow or
// hanging scan without taking down the batch.
func (p *Processor) ExtractAll(ctx context.Context, pdfPath string) (fields.Record, error) {
	if p.DocTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.DocTimeout)
		defer cancel()
	}

	res, err := p.Backend.Extract(ctx, pdfPath)
	if err != nil {
		if ctx.Err() != nil {
			return fields.Record{}, ctx.Err()
		}
		p.Logger.Warn("text extraction failed, assembling from partial text",
			"path", pdfPath, "error", err)
	}
	res = p.Refiner.Refine(ctx, pdfPath, res, p.Backend)

	resolution := p.Deps.Resolver.Resolve(res.Text)
	extractorName := ""
	if resolution.Known() {
		extractorName = resolution.Entry.Extractor
	}
	rules := p.Registry.New(extractorName, p.Deps)

	if refined, ok := p.supplierPass(ctx, pdfPath, resolution, rules); ok {
		res = refined
	}

	record := fields.Assemble(rules, res.Text)
	p.Logger.Info("document processed",
		"path", pdfPath,
		"supplier", record.Supplier,
		"invoice", record.IsInvoice,
		"date", record.Date,
		"pages", res.Pages,
		"method", res.Method,
		"duration", res.Duration)
	return record, nil
}

// supplierPass re-extracts with the supplier's OCR tuning when the rules
// or the supplier table ask for one and the backend supports it.
func (p *Processor) supplierPass(ctx context.Context, pdfPath string, resolution fields.Resolution, rules fields.Rules) (extract.Result, bool) {
	backend, ok := p.Backend.(tunable)
	if !ok || !resolution.Known() {
		return extract.Result{}, false
	}

	profile := ocr.Profile{}
	variant := ocr.PreprocessDefault
	tuned := false
	if t, ok := rules.(fields.OCRTuner); ok {
		profile = t.OCRProfile()
		tuned = true
	}
	if t, ok := rules.(fields.ImageTuner); ok {
		variant = t.PreprocessVariant()
		tuned = true
	}
	if cfg := resolution.Entry.Tesseract; cfg != "" {
		profile = ocr.ParseProfile(cfg)
		tuned = true
	}
	if !tuned {
		return extract.Result{}, false
	}
	if profile == (ocr.Profile{}) {
		profile = ocr.DefaultProfile
	}

	p.Logger.Debug("supplier-tuned ocr pass",
		"path", pdfPath, "supplier", resolution.Entry.Name, "profile", profile.String())

	refined, err := backend.ExtractTuned(ctx, pdfPath, profile, variant)
	if err != nil || refined.Text == "" {
		p.Logger.Warn("supplier-tuned pass failed, keeping first pass",
			"path", pdfPath, "error", err)
		return extract.Result{}, false
	}
	return refined, true
}
