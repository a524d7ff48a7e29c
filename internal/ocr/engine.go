package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Engine runs character recognition on one prepared page image.
// Implementations need not be safe for concurrent use; the extractor calls
// Recognize page by page.
type Engine interface {
	Recognize(ctx context.Context, imagePath string, p Profile) (string, error)
}

// GosseractEngine recognizes text through the tesseract C API. A fresh
// client is created per page: gosseract clients are cheap and carrying one
// across pages would leak per-document language settings between documents.
// Profile.OEM is not applied here: gosseract fixes the engine mode when the
// client is initialized and exposes no setter for it, so only the language
// and page-segmentation knobs take effect.
type GosseractEngine struct {
	TessdataDir string
}

func NewGosseractEngine(tessdataDir string) *GosseractEngine {
	return &GosseractEngine{TessdataDir: tessdataDir}
}

func (e *GosseractEngine) Recognize(ctx context.Context, imagePath string, p Profile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if e.TessdataDir != "" {
		if err := client.SetTessdataPrefix(e.TessdataDir); err != nil {
			return "", fmt.Errorf("tessdata prefix: %w", err)
		}
	}
	if langs := p.Languages(); len(langs) > 0 {
		if err := client.SetLanguage(langs...); err != nil {
			return "", fmt.Errorf("set language %q: %w", p.Lang, err)
		}
	}
	if p.PSM > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(p.PSM)); err != nil {
			return "", fmt.Errorf("set psm %d: %w", p.PSM, err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}
