package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// scanPatterns are the unlabeled date shapes searched for by LatestDate.
var scanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2}[.\s]?\d{2}[.\s]?\d{4}\b`), // DD.MM.YYYY, DD MM YYYY
	regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`),           // DD/MM/YYYY
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),           // YYYY-MM-DD
	regexp.MustCompile(`\b\d{1,2} \p{L}+ \d{4}\b`),        // D Month YYYY
	regexp.MustCompile(`\b\p{L}+ \d{1,2}, \d{4}\b`),       // Month D, YYYY
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\b`),
}

var latestLayouts = []string{
	"02.01.2006",
	"02012006",
	"02/01/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2 January 2006",
	"January 2, 2006",
}

// LatestDate scans the whole text for dates and returns the chronologically
// latest one that parses (day-first). Used by extractors that need "the most
// recent date on the page" rather than a labeled date.
func LatestDate(text string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, re := range scanPatterns {
		for _, m := range re.FindAllString(text, -1) {
			t, ok := parseDayFirst(m)
			if !ok {
				continue
			}
			if !found || t.After(latest) {
				latest = t
				found = true
			}
		}
	}
	return latest, found
}

func parseDayFirst(s string) (time.Time, bool) {
	// OCR drops separators inconsistently; "06.04 2022" means "06.04.2022".
	candidate := strings.ReplaceAll(s, " ", ".")
	for _, layout := range latestLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false)); err == nil {
		return t, true
	}
	return time.Time{}, false
}
