package processor

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()

	face, err := LoadFace("", 32)
	if err != nil {
		t.Fatalf("LoadFace() err=%v", err)
	}

	c, err := NewCompositor(CompositorOptions{Face: face, Opacity: DefaultOpacity})
	if err != nil {
		t.Fatalf("NewCompositor() err=%v", err)
	}

	return c
}

func TestNewCompositorRequiresFace(t *testing.T) {
	if _, err := NewCompositor(CompositorOptions{}); err == nil {
		t.Fatalf("NewCompositor() expected error without face")
	}
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		name       string
		base, mark image.Rectangle
		want       image.Point
	}{
		{"centered", image.Rect(0, 0, 200, 200), image.Rect(0, 0, 50, 50), image.Pt(75, 75)},
		{"odd difference", image.Rect(0, 0, 101, 51), image.Rect(0, 0, 50, 50), image.Pt(25, 0)},
		{"larger mark", image.Rect(0, 0, 100, 100), image.Rect(0, 0, 200, 140), image.Pt(-50, -20)},
		{"offset base", image.Rect(10, 10, 110, 110), image.Rect(0, 0, 50, 50), image.Pt(35, 35)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Placement(tt.base, tt.mark); got != tt.want {
				t.Fatalf("Placement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyImageBlendsCenter(t *testing.T) {
	c := newTestCompositor(t)

	base := solid(200, 200, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	mark := solid(50, 50, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	out := c.ApplyImage(base, mark)

	if got := out.NRGBAAt(74, 74); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("pixel outside mark changed: %v", got)
	}
	if got := out.NRGBAAt(125, 125); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("pixel outside mark changed: %v", got)
	}

	// 30% red over 70% white.
	for _, p := range []image.Point{{75, 75}, {100, 100}, {124, 124}} {
		got := out.NRGBAAt(p.X, p.Y)
		if got.R != 255 || math.Abs(float64(got.G)-178.5) > 1 || math.Abs(float64(got.B)-178.5) > 1 {
			t.Fatalf("pixel %v = %v, want ~{255 178 178}", p, got)
		}
	}
}

func TestApplyImageRespectsMarkAlpha(t *testing.T) {
	c := newTestCompositor(t)

	base := solid(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	mark := solid(10, 10, color.NRGBA{R: 0, G: 0, B: 0, A: 0})

	out := c.ApplyImage(base, mark)

	if got := out.NRGBAAt(5, 5); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("transparent mark changed pixel: %v", got)
	}
}

func TestApplyTextCentered(t *testing.T) {
	c := newTestCompositor(t)

	base := solid(100, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := c.ApplyText(base, "X")

	minX, minY, maxX, maxY := 100, 100, -1, -1
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if out.NRGBAAt(x, y).R >= 128 {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}

	if maxX < 0 {
		t.Fatalf("no text pixels drawn")
	}

	cx := float64(minX+maxX+1) / 2
	cy := float64(minY+maxY+1) / 2
	if math.Abs(cx-50) > 2 || math.Abs(cy-50) > 2 {
		t.Fatalf("text box (%d,%d)-(%d,%d) centered at (%.1f,%.1f), want ~(50,50)", minX, minY, maxX, maxY, cx, cy)
	}
}

func TestApplyTextKeepsSize(t *testing.T) {
	c := newTestCompositor(t)

	base := solid(40, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := c.ApplyText(base, "a very long watermark that overflows")
	if out.Bounds() != base.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), base.Bounds())
	}
}
