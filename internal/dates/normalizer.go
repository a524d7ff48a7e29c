// Package dates turns the heterogeneous date strings found on scanned
// documents into a canonical DD.MM.YYYY form.
package dates

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/agext/levenshtein"
	"github.com/araddon/dateparse"
)

// Unknown is the sentinel recorded when no date could be parsed.
const Unknown = "Unbekannt"

// CanonicalLayout is the layout of every normalized date string.
const CanonicalLayout = "02.01.2006"

// fuzzyMonthThreshold is the minimum Levenshtein similarity for an
// OCR-mangled token to be accepted as a month name. A transposed pair
// ("Feburary") costs two edits, so the cutoff must sit below 1-2/8.
const fuzzyMonthThreshold = 0.70

var fuzzyParams = levenshtein.NewParams()

// strictLayouts are tried in order before any fuzzy correction happens.
var strictLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02.01.06",
	"2. January 2006",
	"2.January 2006",
	"2 January 2006",
	"January 2, 2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-Jan-2006",
	"Mon Jan 2 15:04:05 UTC 2006",
}

type monthName struct {
	name string
	num  string
}

// German names first: the documents are predominantly German and e.g.
// "Mai"/"May" should prefer the local spelling on a tie.
var monthNames = []monthName{
	{"Januar", "01"}, {"Februar", "02"}, {"März", "03"}, {"Maerz", "03"},
	{"April", "04"}, {"Mai", "05"}, {"Juni", "06"}, {"Juli", "07"},
	{"August", "08"}, {"September", "09"}, {"Oktober", "10"},
	{"November", "11"}, {"Dezember", "12"},
	{"January", "01"}, {"February", "02"}, {"March", "03"}, {"May", "05"},
	{"June", "06"}, {"July", "07"}, {"October", "10"}, {"December", "12"},
}

// germanToEnglish lets time.Parse handle textual German months.
var germanToEnglish = strings.NewReplacer(
	"Januar", "January", "Februar", "February", "März", "March",
	"Maerz", "March", "Juni", "June", "Juli", "July",
	"Oktober", "October", "Dezember", "December",
	"januar", "January", "februar", "February", "märz", "March",
	"juni", "June", "juli", "July", "oktober", "October", "dezember", "December",
)

// Normalizer parses raw date strings into the canonical form. It either
// returns a valid calendar date or reports failure; never a partial parse.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize returns the canonical DD.MM.YYYY form of raw, or ok=false when
// the string holds no parseable date.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if t, ok := parseStrict(s); ok {
		return t.Format(CanonicalLayout), true
	}

	cleaned := substituteFuzzyMonths(s)
	cleaned = normalizeSeparators(cleaned)

	if t, ok := parseStrict(cleaned); ok {
		return t.Format(CanonicalLayout), true
	}
	if t, err := dateparse.ParseAny(cleaned, dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format(CanonicalLayout), true
	}

	n.logger.Warn("date not parseable", "raw", raw)
	return "", false
}

// NormalizeOrUnknown is Normalize with the sentinel folded in.
func (n *Normalizer) NormalizeOrUnknown(raw string) string {
	if s, ok := n.Normalize(raw); ok {
		return s
	}
	return Unknown
}

func parseStrict(s string) (time.Time, bool) {
	candidates := []string{s}
	if translated := germanToEnglish.Replace(s); translated != s {
		candidates = append(candidates, translated)
	}
	for _, c := range candidates {
		for _, layout := range strictLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

var reTokenTrim = regexp.MustCompile(`^[^\pL]+|[^\pL]+$`)

// substituteFuzzyMonths replaces tokens that look like a (possibly
// OCR-corrupted) month name with the 2-digit month number.
func substituteFuzzyMonths(s string) string {
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		word := reTokenTrim.ReplaceAllString(tok, "")
		if len(word) < 3 || hasDigit(word) {
			continue
		}
		best := ""
		bestScore := 0.0
		for _, m := range monthNames {
			score := levenshtein.Similarity(strings.ToLower(word), strings.ToLower(m.name), fuzzyParams)
			if score > bestScore {
				bestScore = score
				best = m.num
			}
		}
		if bestScore >= fuzzyMonthThreshold {
			tokens[i] = best
		}
	}
	return strings.Join(tokens, " ")
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

var (
	reDigitDotSpace = regexp.MustCompile(`(\d)\.?\s+`)
	reSpaceRun      = regexp.MustCompile(`\s+`)
	reDotRun        = regexp.MustCompile(`\.{2,}`)
)

// normalizeSeparators collapses the mixed dot/space separators OCR produces
// ("06.04 2022", "15 02 2025") into a single-dot form.
func normalizeSeparators(s string) string {
	s = reDigitDotSpace.ReplaceAllString(s, "$1.")
	s = reSpaceRun.ReplaceAllString(s, ".")
	s = reDotRun.ReplaceAllString(s, ".")
	return strings.Trim(s, ".")
}
