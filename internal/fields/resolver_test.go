package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meberl/docsort/internal/common"
)

func TestResolverKeywordMatch(t *testing.T) {
	r := NewResolver(testConfig(), nil)

	res := r.Resolve("Vielen Dank für Ihren Einkauf bei Amazon!")
	require.True(t, res.Known())
	assert.Equal(t, "Amazon", res.Entry.Name)
	assert.Equal(t, "", res.Entry.Extractor)

	res = r.Resolve("Telekom Deutschland GmbH")
	require.True(t, res.Known())
	assert.Equal(t, "Telekom", res.Entry.Extractor)
}

// Table order decides ties, not position in the text.
func TestResolverFirstEntryWins(t *testing.T) {
	cfg := &common.SupplierConfig{
		Suppliers: common.SupplierTable{
			{Keyword: "Alpha", Name: "Alpha Corp"},
			{Keyword: "Beta", Name: "Beta Corp"},
		},
	}
	r := NewResolver(cfg, nil)

	res := r.Resolve("Beta kommt vor Alpha im Text")
	require.True(t, res.Known())
	assert.Equal(t, "Alpha Corp", res.Entry.Name)
}

func TestResolverKeywordIsWholeWord(t *testing.T) {
	r := NewResolver(testConfig(), nil)

	res := r.Resolve("Slackline Sportartikel")
	assert.False(t, res.Known())
	assert.Equal(t, "", res.FreeForm)
}

func TestResolverLegalFormFallback(t *testing.T) {
	r := NewResolver(testConfig(), nil)

	res := r.Resolve("Schreinerei Huber GmbH")
	assert.False(t, res.Known())
	assert.Equal(t, "Schreinerei Huber GmbH", res.FreeForm)
}

// Umlauted names must survive the legal-form pattern intact so the
// transliteration downstream sees them.
func TestResolverLegalFormKeepsUmlauts(t *testing.T) {
	r := NewResolver(testConfig(), nil)

	res := r.Resolve("Müller Überweisung GmbH")
	assert.False(t, res.Known())
	assert.Equal(t, "Müller Überweisung GmbH", res.FreeForm)
}

func TestResolverExclusionList(t *testing.T) {
	r := NewResolver(testConfig(), nil)

	res := r.Resolve("Eberl Bau GmbH")
	assert.False(t, res.Known())
	assert.Equal(t, "", res.FreeForm)
}

func TestResolverNothingMatches(t *testing.T) {
	r := NewResolver(testConfig(), nil)

	res := r.Resolve("handschriftliche Notiz ohne Firmierung")
	assert.False(t, res.Known())
	assert.Equal(t, "", res.FreeForm)
}
