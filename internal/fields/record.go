// Package fields recovers structured metadata from a document's extracted
// text: supplier resolution plus the heuristic field rules, with
// per-supplier overrides of individual rules.
package fields

import "github.com/meberl/docsort/constants"

// Record is the structured output for one document. Optional fields are
// empty strings when the pattern was not found; Date carries the
// dates.Unknown sentinel when no date parsed.
type Record struct {
	IsInvoice     bool                `json:"is_invoice"`
	Reference     string              `json:"reference,omitempty"`
	Date          string              `json:"date"`
	InvoiceNumber string              `json:"invoice_number,omitempty"`
	Supplier      string              `json:"supplier,omitempty"`
	Recipient     constants.Recipient `json:"recipient"`
}
