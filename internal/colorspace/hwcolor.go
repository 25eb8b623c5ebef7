package colorspace

// HWColor is a 15-bit BGR hardware color with an opaque/transparent flag,
// packed as bit 15 = opaque, bits 10-14 = blue, bits 5-9 = green, bits 0-4
// = red.
type HWColor uint16

const hwOpaqueBit = 1 << 15

// ToHWColor truncates each 8-bit channel to 5 bits with rounding and packs
// it into a 15-bit BGR hardware color, setting the opaque bit when opaque
// is true.
func ToHWColor(c RGBA, opaque bool) HWColor {
	r := round8to5(c.R)
	g := round8to5(c.G)
	b := round8to5(c.B)
	v := HWColor(uint16(r) | uint16(g)<<5 | uint16(b)<<10)
	if opaque {
		v |= hwOpaqueBit
	}
	return v
}

// round8to5 rounds an 8-bit channel value to its nearest 5-bit representation.
func round8to5(v uint8) uint8 {
	r := (uint16(v)*31 + 127) / 255
	if r > 31 {
		r = 31
	}
	return uint8(r)
}

// FromHWColor reconstructs an RGBA color from a 15-bit BGR hardware color by
// bit-replicating each 5-bit channel to 8 bits, and reports whether the
// opaque bit was set.
func (v HWColor) FromHWColor() (RGBA, bool) {
	r := uint16(v) & 0x1f
	g := (uint16(v) >> 5) & 0x1f
	b := (uint16(v) >> 10) & 0x1f
	opaque := v&hwOpaqueBit != 0
	alpha := uint8(0xff)
	if !opaque {
		alpha = 0
	}
	return RGBA{
		R: expand5to8(r),
		G: expand5to8(g),
		B: expand5to8(b),
		A: alpha,
	}, opaque
}

// expand5to8 bit-replicates a 5-bit channel value into 8 bits: the low 3
// bits of the result repeat the input's top 3 bits, so 0x1f maps to 0xff
// and 0x00 maps to 0x00.
func expand5to8(v uint16) uint8 {
	return uint8((v << 3) | (v >> 2))
}

// Channels5 returns the raw 5-bit R, G, B channel values packed in v.
func (v HWColor) Channels5() (r, g, b uint8) {
	return uint8(v & 0x1f), uint8((v >> 5) & 0x1f), uint8((v >> 10) & 0x1f)
}

// MixHW blends two hardware colors at num/den (e.g. 3/8) in 5-bit channel
// space and rounds to the nearest representable value, per block
// compression's "reconstruction blending is performed in 5-bit-per-channel
// hardware space" rule.
func MixHW(a, b HWColor, num, den int, opaque bool) HWColor {
	ar, ag, ab := a.Channels5()
	br, bg, bb := b.Channels5()
	mix := func(x, y uint8) uint8 {
		return uint8((int(x)*(den-num) + int(y)*num + den/2) / den)
	}
	v := HWColor(uint16(mix(ar, br)) | uint16(mix(ag, bg))<<5 | uint16(mix(ab, bb))<<10)
	if opaque {
		v |= hwOpaqueBit
	}
	return v
}
