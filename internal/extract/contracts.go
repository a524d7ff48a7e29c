// Package extract defines the contract between the pipeline and its
// interchangeable text-extraction backends.
package extract

import (
	"context"
	"time"
)

// Result is the outcome of pulling text out of one PDF. Text may be empty:
// downstream extractors treat that as "no data found", not as an error.
type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Language string // OCR language hint used, e.g. "deu+eng"; empty for native
	Duration time.Duration
	Warnings []string
}

// TextExtractor is the one contract every backend satisfies: PDF path in,
// extracted text out.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (Result, error)
}

// LanguageExtractor is implemented by backends whose extraction depends on a
// language hint. The refinement pass re-runs extraction through it with a
// corrected language; backends that don't implement it are left alone.
type LanguageExtractor interface {
	TextExtractor
	ExtractWithLang(ctx context.Context, path, lang string) (Result, error)
}
