package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/ocr"
)

func TestTelekomDate(t *testing.T) {
	r := NewTelekomRules(testDeps())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"clean line", "Datum 06.04.2022\nBetrag 19,95", "06.04.2022"},
		{"separator lost to ocr", "Rechnung\nDatum 06.04 2022", "06.04.2022"},
		{"no labeled line", "Rechnungsdatum: 06.04.2022", dates.Unknown},
		{"label without a date", "Datum folgt später", dates.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Date(tt.text))
		})
	}
}

func TestTelekomInvoiceNumber(t *testing.T) {
	r := NewTelekomRules(testDeps())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"well formed", "Rechnungsnummer: 12-3456-7890-1234\n", "12-3456-7890-1234"},
		{"spaces for hyphens", "Rechnungsnummer: 12 3456 7890 1234\n", "12-3456-7890-1234"},
		{"mangled label", "Rechmungsnummer: 12-3456-7890-1234\n", "12-3456-7890-1234"},
		{"digits run together", "Rechnungsnummer: 12345678901234\n", "12-3456-7890-1234"},
		{"letter O for zero", "Rechnungsnummer: 12-3456-789O-1234\n", "12-3456-7890-1234"},
		{"nothing usable", "Rechnungsnummer: folgt\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.InvoiceNumber(tt.text))
		})
	}
}

func TestTelekomTuning(t *testing.T) {
	r := NewTelekomRules(testDeps())

	assert.Equal(t, ocr.Profile{Lang: "deu", OEM: 3, PSM: 3}, r.OCRProfile())
	assert.Equal(t, ocr.PreprocessAdaptive, r.PreprocessVariant())
}

func TestSlackDate(t *testing.T) {
	r := NewSlackRules(testDeps())

	assert.Equal(t, "15.01.2025", r.Date("Bezahlt am: 15. Januar 2025"))
	assert.Equal(t, "01.02.2025", r.Date("Datum: 01/02/2025"))
	// Falls back to the generic rule when the labels are absent.
	assert.Equal(t, "12.08.2023", r.Date("Invoice date: 12.08.2023"))
}

func TestSlackInvoiceNumber(t *testing.T) {
	r := NewSlackRules(testDeps())

	assert.Equal(t, "SL-12345", r.InvoiceNumber("Posten 1\nRechnungsnummer: SL-12345\nSumme 10 EUR"))
	// The label survives OCR only approximately.
	assert.Equal(t, "SL-12345", r.InvoiceNumber("Rechnungsnunner: SL-12345"))
	assert.Equal(t, "", r.InvoiceNumber("Summe 10 EUR"))
}

func TestFinanzamtDate(t *testing.T) {
	r := NewFinanzamtRules(testDeps())

	text := "Bescheid vom 01.01.2020\nZahlung fällig am 15.06.2024"
	assert.Equal(t, "15.06.2024", r.Date(text))
	assert.Equal(t, dates.Unknown, r.Date("ohne Datumsangabe"))
}

func TestFinanzamtInvoiceNumber(t *testing.T) {
	r := NewFinanzamtRules(testDeps())

	assert.Equal(t, "143-123-45678", r.InvoiceNumber("Steuernummer: 143/123/45678"))
	assert.Equal(t,
		"Bescheid_fuer_2024_143-123-45678",
		r.InvoiceNumber("Bescheid für 2024\nSteuernummer: 143/123/45678"))
	assert.Equal(t, "", r.InvoiceNumber("kein Aktenzeichen"))
}
