package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/ocr"
	"github.com/meberl/docsort/internal/pdftext"
)

func TestNewBackendSelectsMethod(t *testing.T) {
	cfg := common.LoadConfig()

	scfg := pipelineConfig()
	scfg.TextExtraction = common.MethodNative
	backend := NewBackend(cfg, scfg, nil)
	_, isNative := backend.(*pdftext.Extractor)
	assert.True(t, isNative)

	scfg.TextExtraction = common.MethodOCR
	backend = NewBackend(cfg, scfg, nil)
	_, isOCR := backend.(*ocr.Extractor)
	assert.True(t, isOCR)

	// "other" has no backend of its own and lands on the OCR chain.
	scfg.TextExtraction = common.MethodOther
	_, isOCR = NewBackend(cfg, scfg, nil).(*ocr.Extractor)
	assert.True(t, isOCR)

	// The OCR backend supports supplier-tuned re-extraction, the native
	// one does not.
	_, tunableOCR := backend.(tunable)
	assert.True(t, tunableOCR)
	native := NewBackend(cfg, &common.SupplierConfig{TextExtraction: common.MethodNative}, nil)
	_, tunableNative := native.(tunable)
	assert.False(t, tunableNative)
}
