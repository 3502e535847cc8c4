package pipeline

import (
	"errors"
	"fmt"
)

// ErrUnknownWatermark is returned when a job carries no usable watermark variant.
var ErrUnknownWatermark = errors.New("unknown watermark type")

// DecodeError reports an input or watermark image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports an output image that could not be encoded or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
