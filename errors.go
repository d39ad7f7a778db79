package markup

import "errors"

// Sentinel errors returned by rendering and export. Benign no-op
// conditions (undo with an empty history, removing an absent id) are
// reported through bool returns instead, never as errors.
var (
	// ErrNilImage is returned when a document is created without a base image.
	ErrNilImage = errors.New("markup: nil base image")

	// ErrEmptyCanvas is returned when rendering a canvas with zero area.
	ErrEmptyCanvas = errors.New("markup: canvas has zero size")

	// ErrInvalidScale is returned when the export scale factor is below 1.
	ErrInvalidScale = errors.New("markup: export scale must be at least 1")

	// ErrUnsupportedFormat is returned for an export format the engine
	// does not encode.
	ErrUnsupportedFormat = errors.New("markup: unsupported export format")

	// ErrEmptyCrop is returned when the effective crop region has no area
	// after clamping to the canvas.
	ErrEmptyCrop = errors.New("markup: crop region has no area")
)
