package fields

import (
	"regexp"

	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/strutil"
)

// Finanzamt notices carry several dates (issue, due, period); the latest
// one on the page is the issue date. The tax number stands in for an
// invoice number, prefixed with the notice subject when present.
type FinanzamtRules struct {
	DefaultRules
}

func NewFinanzamtRules(d Deps) FinanzamtRules {
	return FinanzamtRules{DefaultRules: NewDefaultRules(d)}
}

func (f FinanzamtRules) Date(text string) string {
	if latest, ok := dates.LatestDate(text); ok {
		return latest.Format(dates.CanonicalLayout)
	}
	return dates.Unknown
}

var (
	reTaxNumber     = regexp.MustCompile(`(?i)Steuernummer\s*[:\s]*([\d/]+)`)
	reNoticeSubject = regexp.MustCompile(`(?i)Bescheid f(?:ü|ue)r\s*\d{4}`)
)

func (f FinanzamtRules) InvoiceNumber(text string) string {
	m := reTaxNumber.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	taxNumber := strutil.SanitizeToken(m[1])
	if subject := reNoticeSubject.FindString(text); subject != "" {
		return strutil.ReplaceSpaces(strutil.ReplaceUmlauts(subject)) + "_" + taxNumber
	}
	return taxNumber
}
