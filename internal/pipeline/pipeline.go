// Package pipeline runs a single watermarking job end to end:
// decode, adjust, composite, encode, write.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/watermark-manager/internal/model"
	"github.com/aliskhannn/watermark-manager/internal/processor"
)

// fileStorage defines the interface for loading source images and saving results.
// It allows a local directory or an object store (e.g. MinIO) as the backend.
type fileStorage interface {
	Load(ctx context.Context, name string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, src io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// compositor draws the watermark layer.
type compositor interface {
	ApplyText(img image.Image, text string) *image.NRGBA
	ApplyImage(img, mark image.Image) *image.NRGBA
}

// Pipeline executes watermarking jobs against a storage backend.
type Pipeline struct {
	fileStorage fileStorage
	compositor  compositor
	quality     int
}

// New creates a new Pipeline. quality is the JPEG quality used for JPEG
// outputs; values outside 1..100 fall back to 100.
func New(fs fileStorage, c compositor, quality int) *Pipeline {
	if quality < 1 || quality > 100 {
		quality = 100
	}

	return &Pipeline{fileStorage: fs, compositor: c, quality: quality}
}

// Run executes the job. It returns a *DecodeError if the input or the
// watermark image cannot be decoded and a *WriteError if the result cannot
// be encoded or written. Nothing is written when an earlier step fails.
func (p *Pipeline) Run(ctx context.Context, job model.JobRequest) error {
	log := zlog.Logger.With().
		Str("job_id", job.ID.String()).
		Str("input", job.InputPath).
		Str("output", job.OutputPath).
		Logger()

	img, inputFormat, err := p.decode(ctx, job.InputPath)
	if err != nil {
		return err
	}
	log.Debug().Int("width", img.Bounds().Dx()).Int("height", img.Bounds().Dy()).Msg("input decoded")

	// Apply tonal adjustments.
	out := processor.Adjust(img, job.Adjustments)

	// Draw the watermark layer.
	switch wm := job.Watermark.(type) {
	case model.TextWatermark:
		out = p.compositor.ApplyText(out, wm.Content)
	case model.ImageWatermark:
		mark, _, err := p.decode(ctx, wm.SourcePath)
		if err != nil {
			return err
		}
		out = p.compositor.ApplyImage(out, mark)
	default:
		return fmt.Errorf("run job %s: %w: %T", job.ID, ErrUnknownWatermark, job.Watermark)
	}

	// Encode fully before touching the output so a failure leaves nothing behind.
	// An output name without a known extension keeps the input's format.
	format, err := imaging.FormatFromFilename(job.OutputPath)
	if err != nil {
		format = inputFormat
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, out, format, imaging.JPEGQuality(p.quality)); err != nil {
		return &WriteError{Path: job.OutputPath, Err: fmt.Errorf("failed to encode image: %w", err)}
	}

	dst, err := p.fileStorage.Save(ctx, job.OutputPath, buf)
	if err != nil {
		// Best effort: drop whatever part of the output made it to storage.
		if delErr := p.fileStorage.Delete(ctx, job.OutputPath); delErr != nil {
			log.Debug().Err(delErr).Msg("no partial output removed")
		}
		return &WriteError{Path: job.OutputPath, Err: err}
	}

	log.Info().Str("path", dst).Msg("watermarked image saved")

	return nil
}

// decode loads the named image from storage and decodes it,
// honouring the EXIF orientation tag. It also reports the encoded format.
func (p *Pipeline) decode(ctx context.Context, name string) (image.Image, imaging.Format, error) {
	r, err := p.fileStorage.Load(ctx, name)
	if err != nil {
		return nil, 0, &DecodeError{Path: name, Err: err}
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, &DecodeError{Path: name, Err: fmt.Errorf("failed to read image: %w", err)}
	}

	_, formatName, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, &DecodeError{Path: name, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	format, err := imaging.FormatFromExtension(formatName)
	if err != nil {
		return nil, 0, &DecodeError{Path: name, Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, &DecodeError{Path: name, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	return img, format, nil
}
