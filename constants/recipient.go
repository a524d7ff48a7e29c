package constants

import "strings"

// Recipient is the internal entity a document is addressed to.
type Recipient string

const (
	Medmind     Recipient = "Medmind"
	Perspectify Recipient = "Perspectify"
	Immo        Recipient = "Immo"
	Private     Recipient = "Private"
	Unknown     Recipient = "Unknown"
)

var allRecipients = []Recipient{
	Medmind,
	Perspectify,
	Immo,
	Private,
	Unknown,
}

func AsStringSlice() []string {
	result := make([]string, len(allRecipients))
	for i, r := range allRecipients {
		result[i] = string(r)
	}
	return result
}

// Canonicalize maps a free-form label to a Recipient. Unmatched input
// yields Unknown.
func Canonicalize(input string) (Recipient, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Unknown, false
	}
	for _, r := range allRecipients {
		if normalized == strings.ToLower(string(r)) {
			return r, true
		}
	}
	return Unknown, false
}
