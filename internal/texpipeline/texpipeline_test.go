package texpipeline

import (
	"testing"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

func gradientImage(w, h int) []colorspace.RGBA {
	px := make([]colorspace.RGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px[y*w+x] = colorspace.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255}
		}
	}
	return px
}

func defaultParams(format Format, w, h int) Params {
	return Params{
		Format:           format,
		Width:            w,
		Height:           h,
		LightnessVsColor: colorspace.DefaultBalance,
		RedVsGreen:       colorspace.DefaultBalance,
		Gamma:            colorspace.DefaultGamma,
		DiffuseAmount:    1.0,
	}
}

func TestSizeCodeRoundsUpToPowerOfTwo(t *testing.T) {
	cases := []struct{ dim, wantCode, wantRounded int }{
		{8, 0, 8},
		{9, 1, 16},
		{16, 1, 16},
		{1000, 7, 1024},
	}
	for _, c := range cases {
		code, rounded := sizeCode(c.dim)
		if code != c.wantCode || rounded != c.wantRounded {
			t.Errorf("sizeCode(%d) = (%d,%d), want (%d,%d)", c.dim, code, rounded, c.wantCode, c.wantRounded)
		}
	}
}

func TestGenerateDirectProducesTwoBytesPerPixel(t *testing.T) {
	const w, h = 8, 8
	p := defaultParams(FormatDirect, w, h)
	result, err := Generate(p, gradientImage(w, h))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Texels) != w*h*2 {
		t.Errorf("len(Texels) = %d, want %d", len(result.Texels), w*h*2)
	}
	if len(result.Palette) != 0 {
		t.Errorf("len(Palette) = %d, want 0 for direct format", len(result.Palette))
	}
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	p := defaultParams(FormatDirect, 6, 8)
	if _, err := Generate(p, make([]colorspace.RGBA, 48)); err != ErrBadDimensions {
		t.Fatalf("err = %v, want ErrBadDimensions", err)
	}
}

func TestGeneratePaletted256ColorSizes(t *testing.T) {
	const w, h = 16, 16
	p := defaultParams(Format256Color, w, h)
	result, err := Generate(p, gradientImage(w, h))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Texels) != w*h {
		t.Errorf("len(Texels) = %d, want %d (8bpp)", len(result.Texels), w*h)
	}
	if len(result.Palette) != 256 {
		t.Errorf("len(Palette) = %d, want 256", len(result.Palette))
	}
}

func TestGeneratePaletted4ColorPacksFourPerByte(t *testing.T) {
	const w, h = 16, 16
	p := defaultParams(Format4Color, w, h)
	result, err := Generate(p, gradientImage(w, h))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Texels) != (w*h)/4 {
		t.Errorf("len(Texels) = %d, want %d (2bpp)", len(result.Texels), (w*h)/4)
	}
}

func TestGenerateColor0TransparentSetsParamBit(t *testing.T) {
	const w, h = 8, 8
	p := defaultParams(Format16Color, w, h)
	p.Color0Transparent = true
	result, err := Generate(p, gradientImage(w, h))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ParamWord&(1<<9) == 0 {
		t.Errorf("ParamWord = %#x, want color0xp bit set", result.ParamWord)
	}
}

func TestGenerateA3I5PacksIndexAndAlpha(t *testing.T) {
	const w, h = 8, 8
	p := defaultParams(FormatA3I5, w, h)
	px := gradientImage(w, h)
	for i := range px {
		px[i].A = 200
	}
	result, err := Generate(p, px)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Texels) != w*h {
		t.Errorf("len(Texels) = %d, want %d", len(result.Texels), w*h)
	}
	if len(result.Palette) != 32 {
		t.Errorf("len(Palette) = %d, want 32", len(result.Palette))
	}
	for _, b := range result.Texels {
		alpha := b >> 5
		if alpha > 7 {
			t.Fatalf("alpha field %d exceeds 3 bits", alpha)
		}
	}
}

func TestGenerateA5I3AlphaFieldIsFiveBits(t *testing.T) {
	const w, h = 8, 8
	p := defaultParams(FormatA5I3, w, h)
	px := gradientImage(w, h)
	result, err := Generate(p, px)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Palette) != 8 {
		t.Errorf("len(Palette) = %d, want 8", len(result.Palette))
	}
	for _, b := range result.Texels {
		index := b & 0x7
		if index > 7 {
			t.Fatalf("index field %d exceeds 3 bits", index)
		}
		if alpha := b >> 3; alpha != 31 {
			t.Fatalf("alpha field = %d, want 31 (top of the five-bit range) for opaque pixels", alpha)
		}
	}
}

func TestGenerateBlockCompressedDelegatesToBlockCompress(t *testing.T) {
	const w, h = 8, 8
	p := defaultParams(Format4x4Block, w, h)
	result, err := Generate(p, gradientImage(w, h))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	blocksX, blocksY := w/4, h/4
	numBlocks := blocksX * blocksY
	if len(result.Texels) != numBlocks*4 {
		t.Errorf("len(Texels) = %d, want %d", len(result.Texels), numBlocks*4)
	}
	if len(result.Indices) != numBlocks*2 {
		t.Errorf("len(Indices) = %d, want %d", len(result.Indices), numBlocks*2)
	}
}

func TestGenerateBlockCompressedRejectsUnalignedDimensions(t *testing.T) {
	p := defaultParams(Format4x4Block, 10, 8)
	if _, err := Generate(p, make([]colorspace.RGBA, 80)); err != ErrDimensionsNotMultipleOf4 {
		t.Fatalf("err = %v, want ErrDimensionsNotMultipleOf4", err)
	}
}

func TestQuantizeAlphaDitherStaysInRange(t *testing.T) {
	const w, h = 8, 8
	px := make([]colorspace.RGBA, w*h)
	for i := range px {
		px[i].A = uint8(i * 4 % 256)
	}
	levels := quantizeAlpha(px, 3, true, w, h)
	for _, v := range levels {
		if v < 0 || v > 7 {
			t.Fatalf("alpha level %d out of [0,7]", v)
		}
	}
}
