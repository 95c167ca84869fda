package pdflayout

import "errors"

var (
	// ErrNoSource is returned when an Extractor has nothing to read from.
	ErrNoSource = errors.New("no source specified")

	// ErrInvalidOptions is returned when options fail validation.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrNoRasterizer is returned when a page contains images to crop but
	// no rasterizer is available for the source.
	ErrNoRasterizer = errors.New("no rasterizer configured")
)
