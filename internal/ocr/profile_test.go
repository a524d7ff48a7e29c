package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProfile(t *testing.T) {
	p := ParseProfile("--oem 1 --psm 4 -l deu")
	assert.Equal(t, Profile{Lang: "deu", OEM: 1, PSM: 4}, p)

	assert.Equal(t, DefaultProfile, ParseProfile(""))

	// Unknown flags are ignored, missing values keep the defaults.
	p = ParseProfile("--dpi 400 -l eng")
	assert.Equal(t, "eng", p.Lang)
	assert.Equal(t, DefaultProfile.OEM, p.OEM)
	assert.Equal(t, DefaultProfile.PSM, p.PSM)
}

func TestProfileStringRoundTrip(t *testing.T) {
	p := Profile{Lang: "deu+eng", OEM: 3, PSM: 6}
	assert.Equal(t, p, ParseProfile(p.String()))
}

func TestProfileWithLangIsACopy(t *testing.T) {
	base := DefaultProfile
	derived := base.WithLang("eng")

	assert.Equal(t, "eng", derived.Lang)
	assert.Equal(t, "deu+eng", DefaultProfile.Lang)
	assert.Equal(t, base.PSM, derived.PSM)
}

func TestProfileLanguages(t *testing.T) {
	assert.Equal(t, []string{"deu", "eng"}, Profile{Lang: "deu+eng"}.Languages())
	assert.Equal(t, []string{"deu"}, Profile{Lang: "deu"}.Languages())
	assert.Nil(t, Profile{}.Languages())
}
