package ocr

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner pretends to be pdftoppm: it drops synthetic page images at
// the prefix the extractor passes as the last argument.
type fakeRunner struct {
	pages int
	err   error
}

func (f fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	prefix := args[len(args)-1]
	img := imaging.New(8, 8, color.NRGBA{R: 220, G: 220, B: 220, A: 255})
	for i := 1; i <= f.pages; i++ {
		if err := imaging.Save(img, fmt.Sprintf("%s-%d.png", prefix, i)); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}

type fakeEngine struct {
	texts    []string
	errs     []error
	calls    int
	profiles []Profile
}

func (e *fakeEngine) Recognize(ctx context.Context, imagePath string, p Profile) (string, error) {
	i := e.calls
	e.calls++
	e.profiles = append(e.profiles, p)
	if i < len(e.errs) && e.errs[i] != nil {
		return "", e.errs[i]
	}
	if i < len(e.texts) {
		return e.texts[i], nil
	}
	return "", nil
}

func newTestExtractor(runner Runner, engine Engine) *Extractor {
	return &Extractor{
		cfg:    Config{Pdftoppm: "pdftoppm", DPI: 300, DefaultProfile: DefaultProfile},
		runner: runner,
		engine: engine,
		logger: slog.Default(),
	}
}

func TestExtractConcatenatesPages(t *testing.T) {
	engine := &fakeEngine{texts: []string{"Seite eins. ", "Seite zwei."}}
	e := newTestExtractor(fakeRunner{pages: 2}, engine)

	res, err := e.Extract(context.Background(), "dummy.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Seite eins. Seite zwei.", res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t, "deu+eng", res.Language)
	assert.Empty(t, res.Warnings)
}

func TestExtractSkipsFailedPages(t *testing.T) {
	engine := &fakeEngine{
		texts: []string{"", "Seite zwei."},
		errs:  []error{fmt.Errorf("tesseract: segfault"), nil},
	}
	e := newTestExtractor(fakeRunner{pages: 2}, engine)

	res, err := e.Extract(context.Background(), "dummy.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Seite zwei.", res.Text)
	assert.Len(t, res.Warnings, 1)
}

func TestExtractMaxPagesCap(t *testing.T) {
	engine := &fakeEngine{texts: []string{"a", "b", "c"}}
	e := newTestExtractor(fakeRunner{pages: 3}, engine)
	e.cfg.MaxPages = 1

	res, err := e.Extract(context.Background(), "dummy.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, engine.calls)
}

func TestExtractRenderFailure(t *testing.T) {
	e := newTestExtractor(fakeRunner{err: fmt.Errorf("exit status 1")}, &fakeEngine{})

	_, err := e.Extract(context.Background(), "dummy.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm")
}

func TestExtractWithLangOverridesLanguageOnly(t *testing.T) {
	engine := &fakeEngine{texts: []string{"text"}}
	e := newTestExtractor(fakeRunner{pages: 1}, engine)

	res, err := e.ExtractWithLang(context.Background(), "dummy.pdf", "eng")
	require.NoError(t, err)

	assert.Equal(t, "eng", res.Language)
	require.Len(t, engine.profiles, 1)
	assert.Equal(t, "eng", engine.profiles[0].Lang)
	assert.Equal(t, DefaultProfile.PSM, engine.profiles[0].PSM)
}

func TestExtractTunedPassesProfile(t *testing.T) {
	engine := &fakeEngine{texts: []string{"text"}}
	e := newTestExtractor(fakeRunner{pages: 1}, engine)

	p := Profile{Lang: "deu", OEM: 3, PSM: 3}
	_, err := e.ExtractTuned(context.Background(), "dummy.pdf", p, PreprocessAdaptive)
	require.NoError(t, err)

	require.Len(t, engine.profiles, 1)
	assert.Equal(t, p, engine.profiles[0])
}
