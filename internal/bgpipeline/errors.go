package bgpipeline

import "errors"

var (
	// ErrDimensionsNotTiled is returned when the image's width or height
	// is not a multiple of 8.
	ErrDimensionsNotTiled = errors.New("bgpipeline: image dimensions must be multiples of 8")

	// ErrBadDepth is returned when Params.Profile.Depth is neither 4 nor 8.
	ErrBadDepth = errors.New("bgpipeline: bit depth must be 4 or 8")

	// ErrPaletteRegion is returned when the requested palette region
	// falls outside the profile's hardware limits.
	ErrPaletteRegion = errors.New("bgpipeline: palette region exceeds hardware limits")

	// ErrTooManyTiles is returned when the image has more 8x8 tiles than
	// the profile's max character count, and tile compression is
	// disabled (so every tile is its own character).
	ErrTooManyTiles = errors.New("bgpipeline: tile count exceeds profile's character budget with compression disabled")

	// ErrPixelCountMismatch is returned when the supplied pixel slice
	// does not have Width*Height entries.
	ErrPixelCountMismatch = errors.New("bgpipeline: pixel count does not match width*height")
)
