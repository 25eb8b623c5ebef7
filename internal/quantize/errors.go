package quantize

import "errors"

var (
	// ErrEmptyRegion is returned when a caller asks for a palette region
	// with zero usable colors.
	ErrEmptyRegion = errors.New("quantize: palette region has zero length")
)
