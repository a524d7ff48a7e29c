package fields

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/meberl/docsort/internal/common"
)

// Resolution is the outcome of supplier resolution. Entry is set when a
// configured keyword matched; FreeForm carries a legal-form fallback name;
// both empty means the default extractor handles the document.
type Resolution struct {
	Entry    *common.SupplierEntry
	FreeForm string
}

// Known reports whether a configured supplier keyword matched.
func (r Resolution) Known() bool {
	return r.Entry != nil
}

// Resolver maps document text to a supplier. Lookup order is deterministic:
// the keyword table in configuration order (first match wins), then the
// legal-form pattern, then nothing.
type Resolver struct {
	table      common.SupplierTable
	keywordRes []*regexp.Regexp
	legalForm  *regexp.Regexp
	excludes   map[string]struct{}
	logger     *slog.Logger
}

func NewResolver(cfg *common.SupplierConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		table:    cfg.Suppliers,
		excludes: make(map[string]struct{}, len(cfg.ExcludeList)),
		logger:   logger,
	}
	r.keywordRes = make([]*regexp.Regexp, len(cfg.Suppliers))
	for i, e := range cfg.Suppliers {
		r.keywordRes[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.Keyword) + `\b`)
	}
	if len(cfg.LegalForms) > 0 {
		forms := make([]string, len(cfg.LegalForms))
		for i, f := range cfg.LegalForms {
			forms[i] = regexp.QuoteMeta(f)
		}
		// \w is ASCII-only in Go regexps; umlauted names need \p{L}.
		r.legalForm = regexp.MustCompile(`(?i)\b(?:[\p{L}\p{N}_ ]+(?:` + strings.Join(forms, "|") + `))\b`)
	}
	for _, name := range cfg.ExcludeList {
		r.excludes[strings.ToLower(name)] = struct{}{}
	}
	return r
}

// Resolve returns the first configured keyword entry occurring in the text
// as a whole word, else a legal-form fallback name, else an empty
// Resolution.
func (r *Resolver) Resolve(text string) Resolution {
	for i := range r.table {
		if r.keywordRes[i].MatchString(text) {
			return Resolution{Entry: &r.table[i]}
		}
	}
	if name, ok := r.legalFormSupplier(text); ok {
		return Resolution{FreeForm: name}
	}
	return Resolution{}
}

// legalFormSupplier looks for "<words> <legal form>" (e.g. "Eberl Bau GmbH")
// and accepts it unless the match is on the exclusion list.
func (r *Resolver) legalFormSupplier(text string) (string, bool) {
	if r.legalForm == nil {
		return "", false
	}
	m := r.legalForm.FindString(text)
	if m == "" {
		return "", false
	}
	m = strings.TrimSpace(m)
	if _, excluded := r.excludes[strings.ToLower(m)]; excluded {
		r.logger.Debug("legal-form supplier excluded", "match", m)
		return "", false
	}
	return m, true
}
