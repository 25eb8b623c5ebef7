package nitrogfx

import (
	"sync/atomic"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

// ImageSource decodes an image file into RGBA pixels, width, and height.
// The engine never performs I/O itself. cmd/nitroconv does not implement
// this interface; it calls the standard library's image.Decode directly.
type ImageSource interface {
	ReadImage(path string) (width, height int, pixels []colorspace.RGBA, err error)
}

// CompressionPolicy selects an entropy-coding scheme an EntropyCoder may
// apply to a finished byte buffer before it's written to disk.
type CompressionPolicy int

const (
	// CompressionNone passes bytes through untouched.
	CompressionNone CompressionPolicy = iota
	// CompressionBest tries every scheme the coder supports and keeps
	// whichever minimizes output size.
	CompressionBest
)

// EntropyCoder compresses a finished byte buffer under policy, returning
// whichever enabled scheme produced the smallest result. No function in
// this package accepts an EntropyCoder; the Write methods emit output
// uncompressed.
type EntropyCoder interface {
	Compress(data []byte, policy CompressionPolicy) ([]byte, error)
}

// Progress exposes two monotonic counters for a caller polling conversion
// status from another goroutine: a "phase 1" counter (palette fit) and a
// "phase 2" counter (tile merging). They are advisory only - the caller
// goroutine may observe stale values and must not infer ordering from
// them. The conversion functions in this package never read them back.
type Progress struct {
	Phase1Current, Phase1Max int64
	Phase2Current, Phase2Max int64
}

func (p *Progress) setPhase1(current, max int64) {
	if p == nil {
		return
	}
	atomic.StoreInt64(&p.Phase1Max, max)
	atomic.StoreInt64(&p.Phase1Current, current)
}

func (p *Progress) setPhase2(current, max int64) {
	if p == nil {
		return
	}
	atomic.StoreInt64(&p.Phase2Max, max)
	atomic.StoreInt64(&p.Phase2Current, current)
}
