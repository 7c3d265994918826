package format

import (
	"github.com/disintegration/imaging"
	"image"
	"image/color"
	"math"
	"widescreen/converter"
)

// Luminance percentiles mapped to black and white by WithNormalize.
const (
	normalizeLower = 0.01
	normalizeUpper = 0.99
)

type Transform func(image.Image) image.Image

func WithSaturation(multiplier float64) Transform {
	return func(img image.Image) image.Image {
		if multiplier == 1 {
			return img
		}
		return imaging.AdjustSaturation(img, (multiplier-1)*100)
	}
}

// WithModulation multiplies every channel by brightness and rotates hue by
// degrees around the luma axis.
func WithModulation(brightness, degrees float64) Transform {
	return func(img image.Image) image.Image {
		if brightness == 1 && degrees == 0 {
			return img
		}

		m := hueMatrix(degrees)
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			r, g, b := float64(c.R)*brightness, float64(c.G)*brightness, float64(c.B)*brightness
			return color.NRGBA{
				R: clamp(m[0][0]*r + m[0][1]*g + m[0][2]*b),
				G: clamp(m[1][0]*r + m[1][1]*g + m[1][2]*b),
				B: clamp(m[2][0]*r + m[2][1]*g + m[2][2]*b),
				A: c.A,
			}
		})
	}
}

// WithNormalize stretches the luminance range between the lower and upper
// percentiles to the full 0..255 range.
func WithNormalize() Transform {
	return func(img image.Image) image.Image {
		histogram := imaging.Histogram(img)
		lo, hi := percentile(histogram, normalizeLower), percentile(histogram, normalizeUpper)
		if hi <= lo {
			return img
		}

		var lut [256]uint8
		scale := 255 / float64(hi-lo)
		for i := range lut {
			lut[i] = clamp(float64(i-lo) * scale)
		}

		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
		})
	}
}

func ToneTransforms(t converter.Tone) []Transform {
	funcs := []Transform{
		WithSaturation(t.Saturation),
		WithModulation(t.Brightness, t.Hue),
	}
	if t.Normalize {
		funcs = append(funcs, WithNormalize())
	}
	return funcs
}

func Apply(img image.Image, funcs ...Transform) image.Image {
	for _, f := range funcs {
		img = f(img)
	}
	return img
}

func percentile(histogram [256]float64, q float64) int {
	var sum float64
	for i, v := range histogram {
		sum += v
		if sum >= q {
			return i
		}
	}
	return len(histogram) - 1
}

// hueMatrix is the luma preserving hue rotation used by CSS hue-rotate.
func hueMatrix(degrees float64) [3][3]float64 {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)

	return [3][3]float64{
		{0.213 + 0.787*c - 0.213*s, 0.715 - 0.715*c - 0.715*s, 0.072 - 0.072*c + 0.928*s},
		{0.213 - 0.213*c + 0.143*s, 0.715 + 0.285*c + 0.140*s, 0.072 - 0.072*c - 0.283*s},
		{0.213 - 0.213*c - 0.787*s, 0.715 - 0.715*c + 0.715*s, 0.072 + 0.928*c + 0.072*s},
	}
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
