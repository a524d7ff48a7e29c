package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PreprocessVariant selects how a rendered page is prepared for OCR.
// The default fixed-threshold chain suits most scans; suppliers with known
// uneven lighting (e.g. Telekom statements) get the adaptive variant.
type PreprocessVariant int

const (
	PreprocessDefault PreprocessVariant = iota
	PreprocessAdaptive
)

const (
	upscaleFactor  = 2.0
	binaryCutoff   = 150 // of 255
	adaptiveBlock  = 11
	adaptiveOffset = 2
)

// Preprocess converts a rendered page image into the binarized form the OCR
// engine reads best. Degenerate input (pure black/white pages) passes
// through without error; the resulting empty OCR text is handled downstream.
func Preprocess(src image.Image, variant PreprocessVariant) *image.NRGBA {
	gray := imaging.Grayscale(src)

	b := gray.Bounds()
	gray = imaging.Resize(gray, int(float64(b.Dx())*upscaleFactor), 0, imaging.Lanczos)

	gray = imaging.Blur(gray, 0.8)
	gray = imaging.AdjustContrast(gray, 20)

	switch variant {
	case PreprocessAdaptive:
		return adaptiveThreshold(gray, adaptiveBlock, adaptiveOffset)
	default:
		return threshold(gray, binaryCutoff)
	}
}

// threshold applies a fixed binary cutoff. The image is already grayscale,
// so the red channel stands in for brightness.
func threshold(img *image.NRGBA, cutoff uint8) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.R > cutoff {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{A: 255}
	})
}

// adaptiveThreshold binarizes against the local mean of a block x block
// window, computed over an integral image.
func adaptiveThreshold(img *image.NRGBA, block int, offset int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	integral := make([]uint64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(img.NRGBAAt(b.Min.X+x, b.Min.Y+y).R)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := block / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-half), max(0, y-half)
			x1, y1 := min(w-1, x+half), min(h-1, y+half)
			count := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] - integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] + integral[y0*stride+x0]
			mean := sum / count

			px := uint64(img.NRGBAAt(b.Min.X+x, b.Min.Y+y).R)
			c := color.NRGBA{A: 255}
			if px+uint64(offset) > mean {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
