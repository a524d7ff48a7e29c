package fields

import (
	"regexp"
	"strings"

	"github.com/meberl/docsort/internal/ocr"
)

// Slack invoices are rendered PDFs printed and re-scanned; the invoice
// number label survives OCR only approximately.
type SlackRules struct {
	DefaultRules
}

func NewSlackRules(d Deps) SlackRules {
	return SlackRules{DefaultRules: NewDefaultRules(d)}
}

func (SlackRules) OCRProfile() ocr.Profile {
	return ocr.Profile{Lang: "deu", OEM: 3, PSM: 3}
}

var (
	reSlackDate = regexp.MustCompile(`(?i)(?:Bezahlt\s+am|Datum)\s*[:\s]*(\d{1,2}(?:\.?\s?\p{L}+\s?\.?\s?\d{4}|[./\-]\d{1,2}[./\-]\d{2,4}|\s\p{L}+\s\d{2,4}))`)
	// The value sits at the end of the label line; the label itself is
	// matched fuzzily, so the value pattern must not depend on it.
	reSlackInvoiceValue = regexp.MustCompile(`([A-Za-z0-9]+-?\d+)\s*$`)
	slackInvoiceLabel   = "rechnungsnummer"
)

func (s SlackRules) Date(text string) string {
	if m := reSlackDate.FindStringSubmatch(text); m != nil {
		return s.Dates.NormalizeOrUnknown(m[1])
	}
	return s.DefaultRules.Date(text)
}

// InvoiceNumber matches the label fuzzily per line, then extracts the
// value with an exact pattern from the matching line.
func (s SlackRules) InvoiceNumber(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if partialSimilarity(slackInvoiceLabel, line) <= 0.8 {
			continue
		}
		if m := reSlackInvoiceValue.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return m[1]
		}
	}
	return ""
}
