package fields

import (
	"regexp"
	"strings"

	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/ocr"
)

// Telekom statements come from a known scanner with uneven lighting and a
// 2-4-4-4 grouped invoice number that OCR regularly mangles.
type TelekomRules struct {
	DefaultRules
}

func NewTelekomRules(d Deps) TelekomRules {
	return TelekomRules{DefaultRules: NewDefaultRules(d)}
}

func (TelekomRules) OCRProfile() ocr.Profile {
	return ocr.Profile{Lang: "deu", OEM: 3, PSM: 3}
}

func (TelekomRules) PreprocessVariant() ocr.PreprocessVariant {
	return ocr.PreprocessAdaptive
}

var reTelekomLineDate = regexp.MustCompile(`\b\d{1,2}[.\s/]\s?\d{1,2}[.\s/]\s?\d{2,4}\b`)

// Date scans lines labeled "Datum" for a numeric date; the separator is
// often misread as a space ("06.04 2022").
func (t TelekomRules) Date(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "Datum ") {
			continue
		}
		m := reTelekomLineDate.FindString(line)
		if m == "" {
			continue
		}
		if normalized, ok := t.Dates.Normalize(m); ok {
			return normalized
		}
	}
	return dates.Unknown
}

var (
	// Tolerates OCR label damage like "Rechmungsnummer".
	// Digit groups admit the letter O; the cleanup below maps it to zero.
	reTelekomInvoiceNo = regexp.MustCompile(`Re[c-n]{3}u?ngsnummer[:\s\-]*([\dO]{2}\s?-?\s?[\dO]{4}\s?-?\s?[\dO]{4}\s?-?\s?[\dO]{4})(?:\s|$)`)
	reTelekomGrouped   = regexp.MustCompile(`\b\d{2}(-\d{4}){3}\b`)
	reNonDigitHyphen   = regexp.MustCompile(`[^\d-]`)
	reHyphenRun        = regexp.MustCompile(`-+`)
	reNonDigit         = regexp.MustCompile(`\D`)
)

// InvoiceNumber repairs the grouped Telekom number into its canonical
// NN-NNNN-NNNN-NNNN form.
func (t TelekomRules) InvoiceNumber(text string) string {
	m := reTelekomInvoiceNo.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ':
			return '-'
		case 'O':
			return '0'
		}
		return r
	}, m[1])
	cleaned = reNonDigitHyphen.ReplaceAllString(cleaned, "")

	parts := reHyphenRun.Split(cleaned, -1)
	if len(parts) == 4 && len(parts[0]) == 2 &&
		len(parts[1]) == 4 && len(parts[2]) == 4 && len(parts[3]) == 4 {
		return strings.Join(parts, "-")
	}

	digits := reNonDigit.ReplaceAllString(cleaned, "")
	if len(digits) == 14 {
		return digits[:2] + "-" + digits[2:6] + "-" + digits[6:10] + "-" + digits[10:14]
	}

	// Segmentation unrecoverable; look for an already well-formed number
	// elsewhere on the page.
	return reTelekomGrouped.FindString(text)
}
