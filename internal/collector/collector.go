// Package collector gathers the parameters of a watermarking job through
// interactive prompts.
package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aliskhannn/watermark-manager/internal/model"
	"github.com/aliskhannn/watermark-manager/internal/naming"
)

var (
	// ErrCancelled is returned when the user declines to start.
	ErrCancelled = errors.New("cancelled by user")
	// ErrInvalidNumber is returned when a numeric answer cannot be parsed.
	ErrInvalidNumber = errors.New("invalid number")
)

// Watermark type choices.
const (
	TextChoice  = "Text watermark"
	ImageChoice = "Image watermark"
)

// Prompter asks the user single questions.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Input(message, def string) (string, error)
	Select(message string, options []string) (string, error)
}

// Defaults holds the default answers offered for file names.
type Defaults struct {
	InputImage     string
	WatermarkImage string
	Location       string // where images are read from, shown in the welcome message
}

// Collector turns prompt answers into a JobRequest.
type Collector struct {
	prompter Prompter
	defaults Defaults
}

// New creates a new Collector.
func New(p Prompter, d Defaults) *Collector {
	return &Collector{prompter: p, defaults: d}
}

// Collect runs the prompt sequence and returns the resolved job.
// Brightness and contrast are parsed but their range is not checked.
func (c *Collector) Collect(ctx context.Context) (model.JobRequest, error) {
	if err := ctx.Err(); err != nil {
		return model.JobRequest{}, err
	}

	welcome := fmt.Sprintf(
		"Hi! Welcome to \"Watermark manager\". Copy your image files to %s. "+
			"Then you'll be able to use them in the app. Are you ready?", c.defaults.Location)

	ready, err := c.prompter.Confirm(welcome, true)
	if err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: %w", err)
	}
	if !ready {
		return model.JobRequest{}, ErrCancelled
	}

	input, err := c.prompter.Input("What file do you want to mark?", c.defaults.InputImage)
	if err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: input file: %w", err)
	}

	kind, err := c.prompter.Select("Choose watermark type:", []string{TextChoice, ImageChoice})
	if err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: watermark type: %w", err)
	}

	var params model.AdjustmentParams

	params.Brightness, err = c.number("How much do you want to make image brighter? (-1 to 1)")
	if err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: brightness: %w", err)
	}

	params.Contrast, err = c.number("How much do you want to increase contrast? (-1 to 1)")
	if err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: contrast: %w", err)
	}

	if params.Greyscale, err = c.prompter.Confirm("Do you want make image b&w?", true); err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: greyscale: %w", err)
	}

	if params.Invert, err = c.prompter.Confirm("Do you want make image invert?", true); err != nil {
		return model.JobRequest{}, fmt.Errorf("collect: invert: %w", err)
	}

	var wm model.WatermarkSpec

	switch kind {
	case TextChoice:
		text, err := c.prompter.Input("Type your watermark text:", "")
		if err != nil {
			return model.JobRequest{}, fmt.Errorf("collect: watermark text: %w", err)
		}
		wm = model.TextWatermark{Content: text}
	case ImageChoice:
		name, err := c.prompter.Input("Type your watermark name:", c.defaults.WatermarkImage)
		if err != nil {
			return model.JobRequest{}, fmt.Errorf("collect: watermark file: %w", err)
		}
		wm = model.ImageWatermark{SourcePath: name}
	default:
		return model.JobRequest{}, fmt.Errorf("collect: unknown watermark type %q", kind)
	}

	return model.JobRequest{
		ID:          uuid.New(),
		InputPath:   input,
		OutputPath:  naming.OutputName(input),
		Adjustments: params,
		Watermark:   wm,
	}, nil
}

// number asks for a float. An empty answer means 0.
func (c *Collector) number(message string) (float64, error) {
	answer, err := c.prompter.Input(message, "")
	if err != nil {
		return 0, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, answer)
	}

	return v, nil
}
