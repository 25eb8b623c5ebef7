// Package nitrogfx converts 32-bit RGBA raster images into the paletted,
// tiled, and block-compressed graphics formats consumed by a handheld
// console's 2D background and 3D texture hardware.
//
// The engine (internal/colorspace, internal/quantize, internal/tileengine,
// internal/blockcompress, internal/bgpipeline, internal/texpipeline) is
// pure and synchronous: it never performs I/O. This package is the thin
// public layer that wires the engine's output to a concrete container
// writer (internal/container) and exposes the collaborator interfaces a
// caller plugs in for image decoding and output compression.
package nitrogfx
