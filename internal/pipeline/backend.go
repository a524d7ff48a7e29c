package pipeline

import (
	"log/slog"

	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/extract"
	"github.com/meberl/docsort/internal/ocr"
	"github.com/meberl/docsort/internal/pdftext"
)

// NewBackend builds the text-extraction backend the configuration asks
// for: the native text layer reader, or the OCR chain.
func NewBackend(cfg *common.Config, scfg *common.SupplierConfig, logger *slog.Logger) extract.TextExtractor {
	if scfg.TextExtraction == common.MethodNative {
		return pdftext.NewExtractor(logger)
	}

	profile := ocr.ParseProfile(cfg.OCR.DefaultProfile)
	if scfg.TesseractConfig != "" {
		profile = ocr.ParseProfile(scfg.TesseractConfig)
	}
	engine := ocr.NewGosseractEngine(cfg.OCR.TessdataDir)
	return ocr.NewExtractor(ocr.Config{
		Pdftoppm:       cfg.OCR.Pdftoppm,
		DPI:            cfg.OCR.DPI,
		MaxPages:       cfg.OCR.MaxPages,
		DefaultProfile: profile,
	}, engine, logger)
}
