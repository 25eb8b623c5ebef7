package texpipeline

import "errors"

var (
	// ErrBadDimensions is returned when width or height falls outside the
	// hardware's supported texture size range.
	ErrBadDimensions = errors.New("texpipeline: width/height must be in [8,1024]")

	// ErrDimensionsNotMultipleOf4 is returned for Format4x4Block inputs
	// whose dimensions aren't a multiple of 4.
	ErrDimensionsNotMultipleOf4 = errors.New("texpipeline: 4x4-block format requires dimensions that are multiples of 4")

	// ErrPixelCountMismatch is returned when the supplied pixel slice
	// doesn't match width*height.
	ErrPixelCountMismatch = errors.New("texpipeline: pixel count does not match width*height")

	// ErrUnknownFormat is returned for a Format value outside the known set.
	ErrUnknownFormat = errors.New("texpipeline: unknown texture format")
)
