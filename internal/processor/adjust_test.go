package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/aliskhannn/watermark-manager/internal/model"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func gradient() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: uint8(x), G: uint8(255 - x), B: uint8(x / 2), A: 255})
	}
	return img
}

func TestAdjustZeroIsNoop(t *testing.T) {
	src := gradient()

	out := Adjust(src, model.AdjustmentParams{})

	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pix[%d] = %d, want %d", i, out.Pix[i], src.Pix[i])
		}
	}
}

func TestBrightnessMonotonic(t *testing.T) {
	src := solid(1, 1, color.NRGBA{R: 100, G: 150, B: 200, A: 255})

	prev := -1
	for _, v := range []float64{-1, -0.5, -0.1, 0, 0.1, 0.5, 1} {
		out := Brightness(src, v)
		got := int(out.Pix[0])
		if got < prev {
			t.Fatalf("brightness %.1f: red = %d, less than previous %d", v, got, prev)
		}
		prev = got
	}

	if got := Brightness(src, -1).Pix[0]; got != 0 {
		t.Errorf("brightness -1: red = %d, want 0", got)
	}
	if got := Brightness(src, 1).Pix[0]; got != 255 {
		t.Errorf("brightness 1: red = %d, want 255", got)
	}
	if got := Brightness(src, 0.5).Pix[0]; got != 177 {
		t.Errorf("brightness 0.5: red = %d, want 177", got)
	}
}

func TestContrastMonotonic(t *testing.T) {
	src := solid(1, 1, color.NRGBA{R: 200, G: 60, B: 127, A: 255})

	prevHigh, prevLow := -1, 256
	for _, v := range []float64{-0.9, -0.5, 0, 0.5, 0.9} {
		out := Contrast(src, v)
		high, low := int(out.Pix[0]), int(out.Pix[1])
		if high < prevHigh {
			t.Fatalf("contrast %.1f: bright channel %d decreased from %d", v, high, prevHigh)
		}
		if low > prevLow {
			t.Fatalf("contrast %.1f: dark channel %d increased from %d", v, low, prevLow)
		}
		if out.Pix[2] != 127 {
			t.Fatalf("contrast %.1f: midpoint moved to %d", v, out.Pix[2])
		}
		prevHigh, prevLow = high, low
	}
}

func TestContrastFullThresholds(t *testing.T) {
	src := solid(1, 1, color.NRGBA{R: 200, G: 60, B: 127, A: 255})

	out := Contrast(src, 1)
	if out.Pix[0] != 255 || out.Pix[1] != 0 || out.Pix[2] != 127 {
		t.Fatalf("contrast 1 = %v, want [255 0 127]", out.Pix[:3])
	}
}

func TestAdjustOrder(t *testing.T) {
	src := solid(1, 1, color.NRGBA{R: 255, G: 0, B: 0, A: 200})

	out := Adjust(src, model.AdjustmentParams{Greyscale: true, Invert: true})

	r, g, b, a := out.Pix[0], out.Pix[1], out.Pix[2], out.Pix[3]
	if r != g || g != b {
		t.Fatalf("expected grey pixel, got %d %d %d", r, g, b)
	}
	// Greyscale first, then invert: pure red is dark grey, inverted is light.
	if r < 128 {
		t.Fatalf("expected inverted dark grey to be light, got %d", r)
	}
	if a != 200 {
		t.Fatalf("alpha changed: %d", a)
	}
}

func TestAdjustOutOfRangeClamps(t *testing.T) {
	src := solid(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	out := Adjust(src, model.AdjustmentParams{Brightness: 3})
	if out.Pix[0] != 255 {
		t.Fatalf("brightness 3: red = %d, want 255", out.Pix[0])
	}

	out = Adjust(src, model.AdjustmentParams{Brightness: -3})
	if out.Pix[0] != 0 {
		t.Fatalf("brightness -3: red = %d, want 0", out.Pix[0])
	}
}

func TestBrightnessTruncates(t *testing.T) {
	src := solid(1, 1, color.NRGBA{R: 101, G: 101, B: 101, A: 255})

	if got := Brightness(src, -0.5).Pix[0]; got != 50 {
		t.Fatalf("brightness -0.5 of 101 = %d, want 50", got)
	}
}
