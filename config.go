package shapediff

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/outline"
	"github.com/npillmayer/shapediff/raster"
	"github.com/npillmayer/shapediff/shape"
)

// Config holds every setting of a comparison run. Sizes are in pixels,
// except PointSize.
type Config struct {
	Factor     int     // resolution scale; the size defaults are multiples of it
	Margin     int     // blank border around the content
	LineHeight int     // height of each band
	PointSize  float32 // text size at 96 dpi

	Variations []glyph.Variation // applied to both shapers and the outline source
	Ink        color.RGBA
	Background color.RGBA

	ShaperA string // top band
	ShaperB string // bottom band
	Outline string // outline engine for both bands
	Params  shape.Params

	// FitWidest sizes the canvas from the wider of both runs. By default the
	// width follows shaper A, and a wider run B is clipped at the right edge.
	FitWidest bool

	FontFile  string // input for Run
	TextFile  string // input for Run
	OutputDir string
	Format    raster.Format
}

// DefaultFactor is the resolution scale of DefaultConfig.
const DefaultFactor = 4

// Default colors.
var (
	DefaultInk        = color.RGBA{0x0a, 0x0a, 0x0a, 0xff}
	DefaultBackground = color.RGBA{0xff, 0xff, 0xf2, 0xff}
)

// DefaultVariations are the axis settings the tool was built around.
var DefaultVariations = []glyph.Variation{
	{Tag: glyph.MustParseTag("MSHQ"), Value: 25},
	{Tag: glyph.MustParseTag("SPAC"), Value: -80},
}

// DefaultConfig returns the settings for DefaultFactor.
func DefaultConfig() Config {
	return ScaledConfig(DefaultFactor)
}

// ScaledConfig returns the default settings with sizes derived from factor.
func ScaledConfig(factor int) Config {
	return Config{
		Factor:     factor,
		Margin:     100 * factor,
		LineHeight: 160 * factor,
		PointSize:  80 * float32(factor),
		Variations: append([]glyph.Variation(nil), DefaultVariations...),
		Ink:        DefaultInk,
		Background: DefaultBackground,
		ShaperA:    "gotext",
		ShaperB:    "textlayout",
		Outline:    outline.GoTextName,
		OutputDir:  "texts",
		Format:     raster.PNG,
	}
}

// ErrInvalidConfig is wrapped by all errors of Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks sizes and engine names.
func (c Config) Validate() error {
	switch {
	case c.Margin < 0:
		return fmt.Errorf("%w: negative margin %d", ErrInvalidConfig, c.Margin)
	case c.LineHeight <= 0:
		return fmt.Errorf("%w: line height %d", ErrInvalidConfig, c.LineHeight)
	case c.PointSize <= 0:
		return fmt.Errorf("%w: point size %g", ErrInvalidConfig, c.PointSize)
	}
	for _, name := range []string{c.ShaperA, c.ShaperB} {
		if !shape.IsRegistered(name) {
			return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, shape.ErrUnknownShaper, name)
		}
	}
	if _, err := outline.New(c.Outline); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := raster.ParseFormat(string(c.Format)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// OutputPath returns the image file name for a text ID:
//
//	<OutputDir>/<A>_vs_<B>__<textID>_<TAG>:<value>….<ext>
//
// with one _TAG:value component per variation setting.
func (c Config) OutputPath(textID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s_vs_%s__%s", c.ShaperA, c.ShaperB, textID)
	for _, v := range c.Variations {
		b.WriteString("_")
		b.WriteString(v.String())
	}
	format := c.Format
	if format == "" {
		format = raster.PNG
	}
	b.WriteString(format.Ext())
	return filepath.Join(c.OutputDir, b.String())
}

// TextID derives the text ID from a text file name: its base name without
// extension.
func TextID(textFile string) string {
	base := filepath.Base(textFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Values is the read side of a schuko configuration; testconfig.Conf and
// the file based schuko configurations satisfy it.
type Values interface {
	IsSet(key string) bool
	GetString(key string) string
}

// Configuration keys read by ConfigFrom.
const (
	KeyFactor     = "shapediff.factor"
	KeyMargin     = "shapediff.margin"
	KeyLineHeight = "shapediff.lineheight"
	KeyPointSize  = "shapediff.pointsize"
	KeyVariations = "shapediff.variations"
	KeyInk        = "shapediff.ink"
	KeyBackground = "shapediff.background"
	KeyShaperA    = "shapediff.shaper-a"
	KeyShaperB    = "shapediff.shaper-b"
	KeyOutline    = "shapediff.outline"
	KeyDirection  = "shapediff.direction"
	KeyScript     = "shapediff.script"
	KeyLanguage   = "shapediff.language"
	KeyFeatures   = "shapediff.features"
	KeyFitWidest  = "shapediff.fitwidest"
	KeyFont       = "shapediff.font"
	KeyText       = "shapediff.text"
	KeyOutputDir  = "shapediff.outdir"
	KeyFormat     = "shapediff.format"
)

// ConfigFrom reads a Config from configuration values. Unset keys keep their
// defaults; size defaults follow shapediff.factor if it is set.
func ConfigFrom(conf Values) (Config, error) {
	factor := DefaultFactor
	if conf.IsSet(KeyFactor) {
		f, err := strconv.Atoi(strings.TrimSpace(conf.GetString(KeyFactor)))
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, KeyFactor, conf.GetString(KeyFactor))
		}
		factor = f
	}
	c := ScaledConfig(factor)
	r := reader{conf: conf}
	r.int(KeyMargin, &c.Margin)
	r.int(KeyLineHeight, &c.LineHeight)
	r.float(KeyPointSize, &c.PointSize)
	r.parse(KeyVariations, func(s string) (err error) {
		c.Variations, err = glyph.ParseVariations(s)
		return
	})
	r.parse(KeyInk, func(s string) (err error) {
		c.Ink, err = ParseColor(s)
		return
	})
	r.parse(KeyBackground, func(s string) (err error) {
		c.Background, err = ParseColor(s)
		return
	})
	r.str(KeyShaperA, &c.ShaperA)
	r.str(KeyShaperB, &c.ShaperB)
	r.str(KeyOutline, &c.Outline)
	r.parse(KeyDirection, func(s string) (err error) {
		c.Params.Direction, err = shape.ParseDirection(s)
		return
	})
	r.parse(KeyScript, func(s string) (err error) {
		c.Params.Script, err = shape.ParseScript(s)
		return
	})
	r.parse(KeyLanguage, func(s string) (err error) {
		c.Params.Language, err = shape.ParseLanguage(s)
		return
	})
	r.parse(KeyFeatures, func(s string) (err error) {
		c.Params.Features, err = shape.ParseFeatures(s)
		return
	})
	r.parse(KeyFitWidest, func(s string) (err error) {
		c.FitWidest, err = strconv.ParseBool(s)
		return
	})
	r.str(KeyFont, &c.FontFile)
	r.str(KeyText, &c.TextFile)
	r.str(KeyOutputDir, &c.OutputDir)
	r.parse(KeyFormat, func(s string) (err error) {
		c.Format, err = raster.ParseFormat(s)
		return
	})
	if r.err != nil {
		return Config{}, r.err
	}
	return c, nil
}

// reader collects the first error while reading configuration values.
type reader struct {
	conf Values
	err  error
}

func (r *reader) parse(key string, set func(string) error) {
	if r.err != nil || !r.conf.IsSet(key) {
		return
	}
	s := strings.TrimSpace(r.conf.GetString(key))
	if err := set(s); err != nil {
		r.err = fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
}

func (r *reader) str(key string, dst *string) {
	r.parse(key, func(s string) error {
		*dst = s
		return nil
	})
}

func (r *reader) int(key string, dst *int) {
	r.parse(key, func(s string) (err error) {
		*dst, err = strconv.Atoi(s)
		return
	})
}

func (r *reader) float(key string, dst *float32) {
	r.parse(key, func(s string) error {
		f, err := strconv.ParseFloat(s, 32)
		*dst = float32(f)
		return err
	})
}

// ParseColor reads a color in hex notation, #RRGGBB or #RRGGBBAA (the '#'
// is optional).
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q (expected #RRGGBB or #RRGGBBAA)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
