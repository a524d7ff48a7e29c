// Package pdftext is the native text-extraction backend: it reads the PDF's
// embedded text layer directly, for documents that were not scanned.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/meberl/docsort/internal/extract"
)

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract concatenates the text layer of every page in page order. A page
// that fails to decode is logged and skipped; the result may carry partial
// or empty text, which downstream treats as "no data found".
func (e *Extractor) Extract(ctx context.Context, path string) (extract.Result, error) {
	start := time.Now()
	res := extract.Result{Method: "pdf-text"}

	if err := api.ValidateFile(path, nil); err != nil {
		e.logger.Warn("pdf failed structural validation, attempting extraction anyway",
			"path", path, "error", err)
		res.Warnings = append(res.Warnings, err.Error())
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	res.Pages = reader.NumPage()
	var b strings.Builder
	for i := 1; i <= res.Pages; i++ {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("page text extraction failed", "path", path, "page", i, "error", err)
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		b.WriteString(txt)
	}
	res.Text = b.String()
	res.Duration = time.Since(start)
	return res, nil
}
