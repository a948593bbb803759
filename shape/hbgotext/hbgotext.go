/*
Package hbgotext adapts the HarfBuzz port of go-text/typesetting to the
shape.Shaper interface.

Importing the package registers the engine under the name "gotext".
Positions are reported in font design units: the HarfBuzz font is used with
its default scale, which equals the units per em of the face.
*/
package hbgotext

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/harfbuzz"
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/internal/gotextconv"
	"github.com/npillmayer/shapediff/shape"
	xlang "golang.org/x/text/language"
)

// Name is the registry name of this engine.
const Name = "gotext"

func init() {
	shape.MustRegister(Name, func() shape.Shaper { return New() })
}

// tracer traces with key 'shapediff.shape'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff.shape")
}

// Shaper shapes text with go-text's HarfBuzz. It is not safe for concurrent use.
type Shaper struct {
	face *font.Face
	font *harfbuzz.Font
}

var _ shape.Shaper = (*Shaper)(nil)

// New returns an unloaded shaper.
func New() *Shaper {
	return &Shaper{}
}

// Name returns "gotext".
func (s *Shaper) Name() string { return Name }

// Load parses the font bytes.
func (s *Shaper) Load(data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: cannot parse font: %w", Name, err)
	}
	s.face = face
	s.font = harfbuzz.NewFont(face)
	tracer().Debugf("%s: loaded font with %d units per em", Name, face.Upem())
	return nil
}

// SetVariations applies variation settings to the face. Axes not mentioned
// keep their default values; an empty list resets all axes.
func (s *Shaper) SetVariations(vars []glyph.Variation) error {
	if s.face == nil {
		return glyph.ErrNotLoaded
	}
	s.face.SetVariations(gotextconv.Variations(vars))
	// the HarfBuzz font caches coordinates when created
	s.font = harfbuzz.NewFont(s.face)
	return nil
}

// Face exposes the parsed face, e.g. for outline extraction with identical
// variation coordinates.
func (s *Shaper) Face() *font.Face {
	return s.face
}

// Shape shapes text as one run.
func (s *Shaper) Shape(text string, params shape.Params) ([]glyph.Record, error) {
	if s.font == nil {
		return nil, glyph.ErrNotLoaded
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	buf := harfbuzz.NewBuffer()
	buf.AddRunes(runes, 0, -1)
	switch params.Direction {
	case shape.LeftToRight:
		buf.Props.Direction = harfbuzz.LeftToRight
	case shape.RightToLeft:
		buf.Props.Direction = harfbuzz.RightToLeft
	}
	if params.HasScript() {
		buf.Props.Script = language.Script(shape.ScriptTag(params.Script))
	}
	if params.Language != xlang.Und {
		buf.Props.Language = language.NewLanguage(params.Language.String())
	}
	buf.GuessSegmentProperties()
	buf.Shape(s.font, features(params.Features))

	out := make([]glyph.Record, len(buf.Info))
	for i, info := range buf.Info {
		pos := buf.Pos[i]
		out[i] = glyph.Record{
			GID:      uint32(info.Glyph),
			Cluster:  info.Cluster,
			XAdvance: int32(pos.XAdvance),
			YAdvance: int32(pos.YAdvance),
			XOffset:  int32(pos.XOffset),
			YOffset:  int32(pos.YOffset),
		}
	}
	tracer().Debugf("%s: shaped %d runes into %d glyphs", Name, len(runes), len(out))
	return out, nil
}

func features(fs []shape.Feature) []harfbuzz.Feature {
	if len(fs) == 0 {
		return nil
	}
	out := make([]harfbuzz.Feature, len(fs))
	for i, f := range fs {
		out[i] = harfbuzz.Feature{
			Tag:   gotextconv.Tag(f.Tag),
			Value: uint32(f.Value),
			Start: 0,
			End:   math.MaxInt32,
		}
	}
	return out
}
