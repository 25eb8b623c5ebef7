// Command nitroconv converts 32-bit RGBA raster images into the
// paletted/tiled/block-compressed graphics formats a handheld console's
// 2D background and 3D texture hardware consume.
//
// Usage:
//
//	nitroconv bg [options] <input>    PNG/JPEG/GIF -> BG character/screen/palette data
//	nitroconv tex [options] <input>   PNG/JPEG/GIF -> texture data
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nitrogfx/nitroconv"
	"github.com/nitrogfx/nitroconv/internal/bgpipeline"
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/texpipeline"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "bg":
		err = runBG(os.Args[2:])
	case "tex":
		err = runTex(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "nitroconv: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "nitroconv: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  nitroconv bg [options] <input>    Convert to BG character/screen/palette data
  nitroconv tex [options] <input>   Convert to texture data

Run "nitroconv <command> -h" for command-specific options.
`)
}

func openInput(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func toRGBA(img image.Image) (px []colorspace.RGBA, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	px = make([]colorspace.RGBA, width*height)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			px[i] = colorspace.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
			i++
		}
	}
	return px, width, height
}

// --- bg ---

var bgProfiles = map[string]bgpipeline.Profile{
	"text16":    bgpipeline.ProfileText16x16,
	"text256":   bgpipeline.ProfileText256x1,
	"affine":    bgpipeline.ProfileAffine256x1,
	"affineext": bgpipeline.ProfileAffineExt256x16,
	"bitmap":    bgpipeline.ProfileBitmap,
}

func runBG(args []string) error {
	fs := flag.NewFlagSet("bg", flag.ContinueOnError)
	profileName := fs.String("profile", "text256", "hardware profile: text16/text256/affine/affineext/bitmap")
	output := fs.String("o", "", "output path (default: <input>.grf)")
	compress := fs.Bool("compress", false, "deduplicate identical/near-identical tiles (flip matching follows the profile's hardware capability)")
	dither := fs.Bool("dither", false, "Floyd-Steinberg dither per tile")
	palettes := fs.Int("palettes", 1, "number of palettes to assign (multi-palette profiles only)")
	color0 := fs.Bool("color0", false, "reserve palette index 0 as transparent")
	keyColor := fs.String("keycolor", "000000", "RRGGBB patched into index 0 when -color0 is set")
	alphaKey := fs.String("alphakey", "", "RRGGBB to treat as transparent regardless of alpha")
	charBase := fs.Int("charbase", 0, "base offset added to emitted character numbers")
	balance := fs.Int("balance", colorspace.DefaultBalance, "lightness-vs-color weighting [1,39]")
	redGreen := fs.Int("redgreen", colorspace.DefaultBalance, "red-vs-green weighting [1,39]")
	gamma := fs.Float64("gamma", colorspace.DefaultGamma, "gamma for perceptual averaging")
	diffuse := fs.Float64("diffuse", 1.0, "dither strength [0,1]")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("bg: missing input file\nUsage: nitroconv bg [options] <input>")
	}
	inputPath := fs.Arg(0)

	profile, ok := bgProfiles[strings.ToLower(*profileName)]
	if !ok {
		return fmt.Errorf("bg: unknown profile %q", *profileName)
	}

	img, err := openInput(inputPath)
	if err != nil {
		return err
	}
	px, width, height := toRGBA(img)

	key, err := parseHexColor(*keyColor)
	if err != nil {
		return fmt.Errorf("bg: -keycolor: %w", err)
	}

	params := bgpipeline.Params{
		Profile:          profile,
		Width:            width,
		Height:           height,
		Region:           bgpipeline.PaletteRegion{Base: 0, Count: *palettes, Offset: 0, Length: profile.ColorsPerPalette()},
		Color0Reserved:   *color0,
		KeyColor:         key,
		CharBase:         *charBase,
		Dither:           *dither,
		Compress:         *compress,
		DiffuseAmount:    *diffuse,
		LightnessVsColor: *balance,
		RedVsGreen:       *redGreen,
		Gamma:            *gamma,
	}
	if *alphaKey != "" {
		ak, err := parseHexColor(*alphaKey)
		if err != nil {
			return fmt.Errorf("bg: -alphakey: %w", err)
		}
		params.AlphaKey = bgpipeline.AlphaKey{Enabled: true, Color: ak}
	}

	out, err := nitrogfx.ConvertBG(params, px, nil)
	if err != nil {
		return fmt.Errorf("bg: %w", err)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, ".grf")
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := out.WriteCombined(f); err != nil {
		f.Close()
		os.Remove(outputPath)
		return fmt.Errorf("bg: writing %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Converted %s -> %s (%d characters)\n", inputPath, outputPath, out.NumCharacters)
	return nil
}

// --- tex ---

var texFormats = map[string]texpipeline.Format{
	"direct":   texpipeline.FormatDirect,
	"4color":   texpipeline.Format4Color,
	"16color":  texpipeline.Format16Color,
	"256color": texpipeline.Format256Color,
	"block":    texpipeline.Format4x4Block,
	"a3i5":     texpipeline.FormatA3I5,
	"a5i3":     texpipeline.FormatA5I3,
}

func runTex(args []string) error {
	fs := flag.NewFlagSet("tex", flag.ContinueOnError)
	formatName := fs.String("format", "256color", "texture format: direct/4color/16color/256color/block/a3i5/a5i3")
	output := fs.String("o", "", "output path (default: <input>.tex)")
	color0 := fs.Bool("color0", false, "reserve palette index 0 as transparent (paletted formats only)")
	dither := fs.Bool("dither", false, "Floyd-Steinberg dither (paletted formats only)")
	ditherAlpha := fs.Bool("dither_alpha", false, "error-diffuse the alpha field (A3I5/A5I3 only)")
	threshold := fs.Int("threshold", 0, "endpoint-palette merge threshold [0,100] (4x4-block only)")
	balance := fs.Int("balance", colorspace.DefaultBalance, "lightness-vs-color weighting [1,39]")
	redGreen := fs.Int("redgreen", colorspace.DefaultBalance, "red-vs-green weighting [1,39]")
	gamma := fs.Float64("gamma", colorspace.DefaultGamma, "gamma for perceptual averaging")
	diffuse := fs.Float64("diffuse", 1.0, "dither strength [0,1]")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("tex: missing input file\nUsage: nitroconv tex [options] <input>")
	}
	inputPath := fs.Arg(0)

	format, ok := texFormats[strings.ToLower(*formatName)]
	if !ok {
		return fmt.Errorf("tex: unknown format %q", *formatName)
	}

	img, err := openInput(inputPath)
	if err != nil {
		return err
	}
	px, width, height := toRGBA(img)

	params := texpipeline.Params{
		Format:            format,
		Width:             width,
		Height:            height,
		Color0Transparent: *color0,
		Dither:            *dither,
		DiffuseAmount:     *diffuse,
		DitherAlpha:       *ditherAlpha,
		BlockThreshold:    *threshold,
		LightnessVsColor:  *balance,
		RedVsGreen:        *redGreen,
		Gamma:             *gamma,
	}

	out, err := nitrogfx.ConvertTexture(params, px, nil)
	if err != nil {
		return fmt.Errorf("tex: %w", err)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, ".tex")
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := out.Write(f); err != nil {
		f.Close()
		os.Remove(outputPath)
		return fmt.Errorf("tex: writing %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Converted %s -> %s\n", inputPath, outputPath)
	return nil
}

func defaultOutputPath(inputPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return base + ext
}

func parseHexColor(s string) (colorspace.RGBA, error) {
	if s == "" {
		return colorspace.RGBA{}, nil
	}
	if len(s) != 6 {
		return colorspace.RGBA{}, fmt.Errorf("expected 6 hex digits (RRGGBB), got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorspace.RGBA{}, err
	}
	return colorspace.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
