// Package lang implements the single-pass language refinement: if the first
// extraction pass came back in an unexpected language, extraction is re-run
// with a corrected language hint.
package lang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/meberl/docsort/internal/extract"
)

type Refiner struct {
	logger *slog.Logger
}

func NewRefiner(logger *slog.Logger) *Refiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refiner{logger: logger}
}

// Refine inspects the dominant language of the first pass's text. German
// text is returned as-is; English triggers an English-only re-extraction;
// anything else (or an unreliable detection) re-extracts with the combined
// German+English hint. Backends without language hints, and any re-run
// failure, leave the original result unchanged. The backend itself is never
// mutated: the corrected hint travels as an argument.
func (r *Refiner) Refine(ctx context.Context, path string, res extract.Result, backend extract.TextExtractor) extract.Result {
	if strings.TrimSpace(res.Text) == "" {
		return res
	}

	lx, ok := backend.(extract.LanguageExtractor)
	if !ok {
		return res
	}

	info := whatlanggo.Detect(res.Text)
	var lang string
	switch {
	case info.Lang == whatlanggo.Deu:
		return res
	case info.Lang == whatlanggo.Eng && info.IsReliable():
		lang = "eng"
	default:
		lang = "deu+eng"
	}
	if lang == res.Language {
		return res
	}

	r.logger.Info("re-extracting with corrected language",
		"path", path, "detected", info.Lang.String(), "lang", lang)

	refined, err := lx.ExtractWithLang(ctx, path, lang)
	if err != nil {
		r.logger.Warn("language re-extraction failed, keeping first pass",
			"path", path, "error", err)
		return res
	}
	return refined
}
