// Package strutil holds the small string normalizations the filing
// conventions depend on.
package strutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
)

// ReplaceUmlauts transliterates German umlauts to their ASCII digraphs.
func ReplaceUmlauts(s string) string {
	return umlautReplacer.Replace(s)
}

var (
	reSpaceHyphen  = regexp.MustCompile(`[ \-]`)
	reNonWord      = regexp.MustCompile(`[^\w-]`)
	reNonWordSpace = regexp.MustCompile(`[^\w\s]`)
)

// NormalizeSupplierName produces the canonical filing form of a supplier
// name: umlauts transliterated, spaces and hyphens replaced by underscores.
func NormalizeSupplierName(name string) string {
	return ReplaceUmlauts(reSpaceHyphen.ReplaceAllString(name, "_"))
}

// SanitizeToken replaces everything outside [A-Za-z0-9_-] with "-".
func SanitizeToken(s string) string {
	return reNonWord.ReplaceAllString(s, "-")
}

// ReplaceSpecialCharacters replaces all special characters with "-",
// keeping whitespace.
func ReplaceSpecialCharacters(s string) string {
	return reNonWordSpace.ReplaceAllString(s, "-")
}

// ReplaceSpaces replaces all spaces with "_".
func ReplaceSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// AddTimestampToFilename appends a timestamp before the extension, used when
// a file is diverted to the unknown bucket and its name must stay unique.
func AddTimestampToFilename(filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", name, now.Format("20060102_150405"), ext)
}
