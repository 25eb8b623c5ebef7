package blockcompress

import "errors"

// ErrDimensionsNotMultipleOf4 is returned when the input image's width or
// height is not a multiple of 4.
var ErrDimensionsNotMultipleOf4 = errors.New("blockcompress: image dimensions must be multiples of 4")

// ErrPaletteOverflow is returned when the endpoint palette still exceeds
// the 14-bit halfword offset field after compression. Compress first
// forces additional merges by raising the threshold in steps of 10 up to
// 100 (whatever threshold the caller passed, including 0); it returns this
// only if the palette still overflows at threshold 100.
var ErrPaletteOverflow = errors.New("blockcompress: endpoint palette exceeds the 14-bit offset field")

// maxPaletteOffset is the largest halfword offset a 14-bit field can hold.
const maxPaletteOffset = 1<<14 - 1
