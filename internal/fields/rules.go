package fields

import (
	"log/slog"
	"regexp"

	"github.com/meberl/docsort/constants"
	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/strutil"
)

// Rules is the capability set a field extractor provides. DefaultRules
// implements every rule generically; supplier variants embed it and
// override the subset their document layout needs.
type Rules interface {
	IsInvoice(text string) bool
	Recipient(text string) constants.Recipient
	Reference(text string) string
	InvoiceNumber(text string) string
	Date(text string) string
	Supplier(text string) string
}

// Assemble runs every rule against one document's text and produces the
// record. A miss on any individual rule is a normal outcome, never an error.
func Assemble(rules Rules, text string) Record {
	return Record{
		IsInvoice:     rules.IsInvoice(text),
		Recipient:     rules.Recipient(text),
		Reference:     rules.Reference(text),
		InvoiceNumber: rules.InvoiceNumber(text),
		Date:          rules.Date(text),
		Supplier:      rules.Supplier(text),
	}
}

var reInvoice = regexp.MustCompile(`(?i)Rechnung|Invoice|Billing`)

// recipientRules maps entity-name patterns to the internal recipient, in
// priority order; the first match wins.
var recipientRules = []struct {
	re        *regexp.Regexp
	recipient constants.Recipient
}{
	{regexp.MustCompile(`(?i)Medmind`), constants.Medmind},
	{regexp.MustCompile(`(?i)Distinctify`), constants.Medmind},
	{regexp.MustCompile(`(?i)IQAL`), constants.Medmind},
	{regexp.MustCompile(`(?i)Perspectify`), constants.Perspectify},
	{regexp.MustCompile(`(?i)ME Verwaltung|Eberl Bau`), constants.Immo},
	{regexp.MustCompile(`(?i)Martin Eberl|Martina Eberl`), constants.Private},
}

var reReference = regexp.MustCompile(`\b\d{6}\b`)

var reInvoiceNumber = regexp.MustCompile(`(?i)(?:Rechnungsnummer|Belegnummer|Invoice No|Order Number|Transaktionsnummer)\s*[:\s]*([\w/-]+)`)

// dateLiteral matches every date shape seen on the scans: numeric with
// dot/slash/dash separators, textual German/English months, ISO, Oracle-style
// DD-MON-YYYY and RFC-ish UTC timestamps.
const dateLiteral = `(\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{1,2}\.\s*\p{L}+\s*\d{4}|\d{1,2}\s*\p{L}+\s*\d{4}|\d{4}-\d{1,2}-\d{1,2}|\p{L}+\s*\d{1,2},\s*\d{4}|\d{2}-[A-Z]{3}-\d{4}|[A-Za-z]{3}\s[A-Za-z]{3}\s\d{1,2}\s\d{2}:\d{2}:\d{2}\sUTC\s\d{4})`

// dateLabelPatterns are tried in order; label specificity encodes priority
// (Rechnungsdatum before the generic Datum).
var dateLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Rechnungsdatum\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Leistungsdatum\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Belegdatum\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Beleg-/Leistungsdatum\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Datum\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Bezahlt am\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)(?:Invoice date|Billing date)\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Date\s*:?\s*` + dateLiteral),
	regexp.MustCompile(`(?i)Time\s*:?\s*` + dateLiteral),
}

var reDateAnywhere = regexp.MustCompile(dateLiteral)

// DefaultRules implements the generic heuristics. It is stateless with
// respect to documents: every method takes the text it operates on, so one
// value can serve sequential documents without cross-document leakage.
type DefaultRules struct {
	Resolver *Resolver
	Dates    *dates.Normalizer
	Logger   *slog.Logger
}

func NewDefaultRules(d Deps) DefaultRules {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return DefaultRules{Resolver: d.Resolver, Dates: d.Dates, Logger: logger}
}

func (DefaultRules) IsInvoice(text string) bool {
	return reInvoice.MatchString(text)
}

func (DefaultRules) Recipient(text string) constants.Recipient {
	for _, rule := range recipientRules {
		if rule.re.MatchString(text) {
			return rule.recipient
		}
	}
	return constants.Unknown
}

func (DefaultRules) Reference(text string) string {
	return reReference.FindString(text)
}

func (DefaultRules) InvoiceNumber(text string) string {
	m := reInvoiceNumber.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strutil.SanitizeToken(m[1])
}

// Date returns the first label-anchored date that normalizes, then falls
// back to the first unlabeled date literal anywhere in the text, then the
// unparseable sentinel.
func (r DefaultRules) Date(text string) string {
	for _, pattern := range dateLabelPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if normalized, ok := r.Dates.Normalize(m[1]); ok {
			return normalized
		}
	}
	if m := reDateAnywhere.FindStringSubmatch(text); m != nil {
		if normalized, ok := r.Dates.Normalize(m[1]); ok {
			return normalized
		}
	}
	return dates.Unknown
}

// Supplier resolves the supplier name from the keyword table, falling back
// to legal-form detection, and returns it in canonical filing form.
func (r DefaultRules) Supplier(text string) string {
	res := r.Resolver.Resolve(text)
	switch {
	case res.Entry != nil:
		return strutil.NormalizeSupplierName(res.Entry.Name)
	case res.FreeForm != "":
		return strutil.NormalizeSupplierName(res.FreeForm)
	}
	return ""
}
