package fields

import "github.com/meberl/docsort/internal/ocr"

// OCRTuner is implemented by rules that need a specific OCR profile for
// their scan source (e.g. German-only, different page segmentation).
type OCRTuner interface {
	OCRProfile() ocr.Profile
}

// ImageTuner is implemented by rules that need a specific image
// preprocessing variant for their scan source.
type ImageTuner interface {
	PreprocessVariant() ocr.PreprocessVariant
}
