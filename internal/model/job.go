package model

import "github.com/google/uuid"

// JobRequest is a fully resolved watermarking job.
type JobRequest struct {
	ID          uuid.UUID        `json:"id"`
	InputPath   string           `json:"input_path"`
	OutputPath  string           `json:"output_path"`
	Adjustments AdjustmentParams `json:"adjustments"`
	Watermark   WatermarkSpec    `json:"-"`
}

// AdjustmentParams holds the tonal adjustments applied before watermarking.
// Brightness and Contrast are expected in [-1, 1].
type AdjustmentParams struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Greyscale  bool    `json:"greyscale"`
	Invert     bool    `json:"invert"`
}

// WatermarkSpec is either a TextWatermark or an ImageWatermark.
type WatermarkSpec interface {
	watermark()
}

// TextWatermark renders Content centered over the image.
type TextWatermark struct {
	Content string `json:"content"`
}

// ImageWatermark blends the image stored at SourcePath over the center of the image.
type ImageWatermark struct {
	SourcePath string `json:"source_path"`
}

func (TextWatermark) watermark()  {}
func (ImageWatermark) watermark() {}
