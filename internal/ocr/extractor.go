package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/meberl/docsort/internal/extract"
)

// Config configures the OCR extraction backend.
type Config struct {
	Pdftoppm       string // binary name or absolute path; if empty -> "pdftoppm"
	DPI            int    // rasterization DPI, default 300
	MaxPages       int    // 0 = no limit
	DefaultProfile Profile
}

// Extractor is the OCR text-extraction backend: render every page, prepare
// each page image, recognize, concatenate in page order. One Extractor may
// be shared across sequential documents; per-document tuning is passed as a
// Profile value, never stored.
type Extractor struct {
	cfg    Config
	runner Runner
	engine Engine
	logger *slog.Logger
}

func NewExtractor(cfg Config, engine Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.DefaultProfile == (Profile{}) {
		cfg.DefaultProfile = DefaultProfile
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, engine: engine, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, path string) (extract.Result, error) {
	return e.ExtractTuned(ctx, path, e.cfg.DefaultProfile, PreprocessDefault)
}

func (e *Extractor) ExtractWithLang(ctx context.Context, path, lang string) (extract.Result, error) {
	return e.ExtractTuned(ctx, path, e.cfg.DefaultProfile.WithLang(lang), PreprocessDefault)
}

// ExtractTuned runs the full OCR chain with an explicit profile and
// preprocessing variant. Per-page failures are logged and skipped; the
// result carries whatever text the remaining pages produced.
func (e *Extractor) ExtractTuned(ctx context.Context, path string, p Profile, variant PreprocessVariant) (extract.Result, error) {
	start := time.Now()
	res := extract.Result{Method: "pdf-ocr", Language: p.Lang}

	pages, cleanup, err := e.renderPages(ctx, path)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("render %s: %w", path, err)
	}
	res.Pages = len(pages)

	var b strings.Builder
	for _, pagePath := range pages {
		txt, err := e.recognizePage(ctx, pagePath, p, variant)
		if err != nil {
			e.logger.Warn("page ocr failed", "page", filepath.Base(pagePath), "error", err)
			res.Warnings = append(res.Warnings, err.Error())
			continue
		}
		b.WriteString(txt)
	}
	res.Text = b.String()
	res.Duration = time.Since(start)

	e.logger.Debug("ocr extraction done",
		"path", path, "pages", res.Pages, "bytes", len(res.Text), "lang", p.Lang)
	return res, nil
}

// renderPages rasterizes the PDF into per-page PNGs under a temp dir.
func (e *Extractor) renderPages(ctx context.Context, path string) ([]string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "docsort-pages-*")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return nil, cleanup, fmt.Errorf("pdftoppm: %s: %w", truncate(string(errb), 512), err)
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return nil, cleanup, fmt.Errorf("no pages rendered")
	}
	return matches, cleanup, nil
}

func (e *Extractor) recognizePage(ctx context.Context, pagePath string, p Profile, variant PreprocessVariant) (string, error) {
	img, err := imaging.Open(pagePath)
	if err != nil {
		return "", fmt.Errorf("open page image: %w", err)
	}

	prepared := Preprocess(img, variant)
	preparedPath := strings.TrimSuffix(pagePath, ".png") + "-prep.png"
	if err := imaging.Save(prepared, preparedPath); err != nil {
		return "", fmt.Errorf("save prepared image: %w", err)
	}

	return e.engine.Recognize(ctx, preparedPath, p)
}
