package processor

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultOpacity is the share of the watermark layer in image mode.
const DefaultOpacity = 0.3

// CompositorOptions configures a Compositor.
type CompositorOptions struct {
	Face      font.Face // face used for text watermarks
	TextColor string    // hex colour, e.g. "#000000"
	Opacity   float64   // source opacity for image watermarks
}

// Compositor draws text or image watermarks centered over an image.
type Compositor struct {
	face      font.Face
	textColor string
	opacity   float64
}

// NewCompositor creates a new Compositor with the given options.
// An empty TextColor falls back to black.
func NewCompositor(opts CompositorOptions) (*Compositor, error) {
	if opts.Face == nil {
		return nil, errors.New("compositor: font face is required")
	}

	textColor := opts.TextColor
	if textColor == "" {
		textColor = "#000000"
	}

	return &Compositor{
		face:      opts.Face,
		textColor: textColor,
		opacity:   opts.Opacity,
	}, nil
}

// ApplyText draws text so that its ink bounding box is centered in img.
// Text is neither wrapped nor truncated.
func (c *Compositor) ApplyText(img image.Image, text string) *image.NRGBA {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(c.face)
	dc.SetHexColor(c.textColor)

	bounds, _ := font.BoundString(c.face, text)
	minX, minY := fixedToFloat(bounds.Min.X), fixedToFloat(bounds.Min.Y)
	maxX, maxY := fixedToFloat(bounds.Max.X), fixedToFloat(bounds.Max.Y)

	// DrawString takes the baseline origin, so shift it by the ink box center.
	x := float64(dc.Width())/2 - (minX+maxX)/2
	y := float64(dc.Height())/2 - (minY+maxY)/2

	dc.DrawString(text, x, y)

	return imaging.Clone(dc.Image())
}

// ApplyImage blends mark over the center of img using source-over
// compositing with the compositor's opacity. The mark is not scaled.
func (c *Compositor) ApplyImage(img, mark image.Image) *image.NRGBA {
	pos := Placement(img.Bounds(), mark.Bounds())
	return imaging.Overlay(img, mark, pos, c.opacity)
}

// Placement returns the top-left point at which mark is centered over base.
// Odd differences are truncated towards zero.
func Placement(base, mark image.Rectangle) image.Point {
	return image.Pt(
		base.Min.X+(base.Dx()-mark.Dx())/2,
		base.Min.Y+(base.Dy()-mark.Dy())/2,
	)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
