/*
Package shapediff renders the output of two text shaping engines for the
same line of text into one image, one band per engine, so that differences
in glyph selection, positioning and variable font handling can be seen.

Both shapers and the outline engine read the same font bytes and receive the
same variation settings. Shaper A is drawn in the top band, shaper B in the
bottom band; both bands use the same outline engine, pixel scale and ink.

	cfg := shapediff.DefaultConfig()
	cfg.FontFile, cfg.TextFile = "fonts/Qahiri.ttf", "texts/qahiri.txt"
	out, err := shapediff.Run(cfg) // out is the image written

Engines are selected by name, see package shape for shapers and package
outline for outline engines.
*/
package shapediff

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/internal/fontload"
	"github.com/npillmayer/shapediff/outline"
	"github.com/npillmayer/shapediff/raster"
	"github.com/npillmayer/shapediff/shape"
	_ "github.com/npillmayer/shapediff/shape/hbgotext"     // register "gotext"
	_ "github.com/npillmayer/shapediff/shape/hbtextlayout" // register "textlayout"
)

// tracer traces with key 'shapediff'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff")
}

// ErrEmptyText is returned for input text which is empty after trimming.
var ErrEmptyText = errors.New("shapediff: text is empty")

// Band indices on the canvas.
const (
	BandA = 0
	BandB = 1
)

// Result is the outcome of a comparison.
type Result struct {
	Text   string         // the trimmed input line
	RunA   []glyph.Record // output of shaper A
	RunB   []glyph.Record // output of shaper B
	Canvas *raster.Canvas
	StatsA raster.RunStats
	StatsB raster.RunStats
}

// Compare shapes text with both shapers of cfg and draws both runs onto a
// new canvas.
func Compare(cfg Config, fontData []byte, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shaperA, err := shape.New(cfg.ShaperA)
	if err != nil {
		return nil, err
	}
	shaperB, err := shape.New(cfg.ShaperB)
	if err != nil {
		return nil, err
	}
	src, err := outline.New(cfg.Outline)
	if err != nil {
		return nil, err
	}
	frontends := []glyph.Frontend{shaperA, shaperB, src}
	for _, fe := range frontends {
		if err := fe.Load(fontData); err != nil {
			return nil, fmt.Errorf("loading font into %s: %w", fe.Name(), err)
		}
	}
	if err := applyVariations(cfg.Variations, frontends); err != nil {
		return nil, err
	}
	//
	res := &Result{Text: text}
	if res.RunA, err = shaperA.Shape(text, cfg.Params); err != nil {
		return nil, fmt.Errorf("shaper %s: %w", shaperA.Name(), err)
	}
	if res.RunB, err = shaperB.Shape(text, cfg.Params); err != nil {
		return nil, fmt.Errorf("shaper %s: %w", shaperB.Name(), err)
	}
	tracer().Debugf("%s: %s", shaperA.Name(), glyph.Format(res.RunA))
	tracer().Debugf("%s: %s", shaperB.Name(), glyph.Format(res.RunB))
	//
	metrics := src.Metrics()
	scale, err := raster.PixelScale(cfg.PointSize, metrics.UnitsPerEm)
	if err != nil {
		return nil, err
	}
	width := raster.LineWidth(res.RunA, scale)
	if cfg.FitWidest {
		width = max(width, raster.LineWidth(res.RunB, scale))
	}
	w, h := raster.CanvasSize(width, cfg.Margin, cfg.LineHeight, 2)
	res.Canvas = raster.NewCanvas(w, h, cfg.Margin, cfg.LineHeight, cfg.Background)
	pen := raster.Pen{
		Source: src,
		Scale:  scale,
		Ascent: metrics.Ascent * scale.Y,
		Ink:    cfg.Ink,
	}
	res.StatsA = res.Canvas.DrawRun(BandA, res.RunA, pen)
	res.StatsB = res.Canvas.DrawRun(BandB, res.RunB, pen)
	tracer().Infof("compared %d (%s) and %d (%s) glyphs on a %dx%d canvas",
		len(res.RunA), shaperA.Name(), len(res.RunB), shaperB.Name(), w, h)
	return res, nil
}

// applyVariations sets the same variations on every front-end. A front-end
// which cannot apply variations at all is reported and left at its default
// instance.
func applyVariations(vars []glyph.Variation, frontends []glyph.Frontend) error {
	for _, fe := range frontends {
		err := fe.SetVariations(vars)
		if errors.Is(err, glyph.ErrNoVariations) {
			tracer().Errorf("%s ignores variations %v, using the default instance", fe.Name(), vars)
			continue
		}
		if err != nil {
			return fmt.Errorf("setting variations for %s: %w", fe.Name(), err)
		}
	}
	return nil
}

// Run loads cfg.FontFile and cfg.TextFile, compares and writes the image to
// cfg.OutputPath. It returns the path written.
func Run(cfg Config) (string, error) {
	f, err := fontload.LoadOpenTypeFont(cfg.FontFile)
	if err != nil {
		return "", err
	}
	text, err := os.ReadFile(cfg.TextFile)
	if err != nil {
		return "", fmt.Errorf("cannot read text: %w", err)
	}
	res, err := Compare(cfg, f.Binary, string(text))
	if err != nil {
		return "", err
	}
	out := cfg.OutputPath(TextID(cfg.TextFile))
	if err := res.Canvas.Save(out); err != nil {
		return "", err
	}
	return out, nil
}
