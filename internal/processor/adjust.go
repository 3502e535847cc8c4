package processor

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/aliskhannn/watermark-manager/internal/model"
)

// Adjust applies the tonal adjustments in a fixed order:
// brightness, contrast, greyscale (if set), invert (if set).
//
// Brightness and contrast always run; a value of 0 leaves pixels unchanged.
// Values outside [-1, 1] are not rejected, results are clamped per channel.
func Adjust(img image.Image, params model.AdjustmentParams) *image.NRGBA {
	out := Brightness(img, params.Brightness)
	out = Contrast(out, params.Contrast)

	if params.Greyscale {
		out = imaging.Grayscale(out)
	}
	if params.Invert {
		out = imaging.Invert(out)
	}

	return out
}

// Brightness darkens the image towards black for negative values and
// lightens it towards white for positive ones.
func Brightness(img image.Image, value float64) *image.NRGBA {
	shift := func(c uint8) uint8 {
		v := float64(c)
		if value < 0 {
			return clamp(v * (1 + value))
		}
		return clamp(v + (255-v)*value)
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: shift(c.R), G: shift(c.G), B: shift(c.B), A: c.A}
	})
}

// Contrast spreads channel values away from (positive) or towards
// (negative) the midpoint 127.
func Contrast(img image.Image, value float64) *image.NRGBA {
	factor := (value + 1) / (1 - value)

	stretch := func(c uint8) uint8 {
		d := float64(c) - 127
		if d == 0 {
			return c
		}
		return clamp(math.Floor(factor*d + 127))
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: stretch(c.R), G: stretch(c.G), B: stretch(c.B), A: c.A}
	})
}

// clamp truncates v into a channel value.
func clamp(v float64) uint8 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
