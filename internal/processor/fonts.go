package processor

import (
	"fmt"
	"os"

	"github.com/wb-go/wbf/zlog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFace returns a font face of the given size in points.
// If path is empty or cannot be read, the embedded Go Regular font is used.
func LoadFace(path string, size float64) (font.Face, error) {
	var data []byte

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("font", path).Msg("failed to read font, using default")
		} else {
			data = b
		}
	}

	if data == nil {
		data = goregular.TTF
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return face, nil
}
