package ocr

import (
	"fmt"
	"strconv"
	"strings"
)

// Profile is one document's OCR tuning: recognition languages plus engine
// and page-segmentation modes. Profiles are values; deriving a variant never
// mutates shared state, so concurrent per-document pipelines stay safe.
type Profile struct {
	Lang string // tesseract language spec, e.g. "deu+eng"
	OEM  int    // OCR engine mode
	PSM  int    // page segmentation mode
}

// DefaultProfile matches the scanner's usual output: mixed German/English,
// LSTM engine, uniform text block.
var DefaultProfile = Profile{Lang: "deu+eng", OEM: 3, PSM: 6}

// ParseProfile reads a tesseract-style config string such as
// "--oem 3 --psm 6 -l deu+eng". Unknown flags are ignored; missing values
// fall back to DefaultProfile. An empty string yields DefaultProfile.
func ParseProfile(s string) Profile {
	p := DefaultProfile
	fieldsOf := strings.Fields(s)
	for i := 0; i < len(fieldsOf)-1; i++ {
		val := fieldsOf[i+1]
		switch fieldsOf[i] {
		case "-l":
			p.Lang = val
		case "--oem":
			if n, err := strconv.Atoi(val); err == nil {
				p.OEM = n
			}
		case "--psm":
			if n, err := strconv.Atoi(val); err == nil {
				p.PSM = n
			}
		}
	}
	return p
}

// WithLang returns a copy of p using a different language spec.
func (p Profile) WithLang(lang string) Profile {
	p.Lang = lang
	return p
}

// Languages splits the "+"-joined language spec.
func (p Profile) Languages() []string {
	if p.Lang == "" {
		return nil
	}
	return strings.Split(p.Lang, "+")
}

func (p Profile) String() string {
	return fmt.Sprintf("--oem %d --psm %d -l %s", p.OEM, p.PSM, p.Lang)
}
