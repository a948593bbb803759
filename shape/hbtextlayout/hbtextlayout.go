/*
Package hbtextlayout adapts the HarfBuzz port of benoitkugler/textlayout to
the shape.Shaper interface.

Importing the package registers the engine under the name "textlayout". The
port is the predecessor of go-text's HarfBuzz and has diverged from it, which
is what makes it a useful second opinion.
*/
package hbtextlayout

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/shape"
	"golang.org/x/text/language"
)

// Name is the registry name of this engine.
const Name = "textlayout"

func init() {
	shape.MustRegister(Name, func() shape.Shaper { return New() })
}

// tracer traces with key 'shapediff.shape'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff.shape")
}

// Shaper shapes text with textlayout's HarfBuzz. It is not safe for concurrent use.
type Shaper struct {
	face *hbtt.Font
	font *hb.Font
}

var _ shape.Shaper = (*Shaper)(nil)

// New returns an unloaded shaper.
func New() *Shaper {
	return &Shaper{}
}

// Name returns "textlayout".
func (s *Shaper) Name() string { return Name }

// Load parses the font bytes.
func (s *Shaper) Load(data []byte) error {
	face, err := hbtt.Parse(bytes.NewReader(data), true)
	if err != nil {
		return fmt.Errorf("%s: cannot parse font: %w", Name, err)
	}
	s.face = face
	s.font = hb.NewFont(face)
	return nil
}

// SetVariations converts the settings to design coordinates (defaulting axes
// which are not mentioned), normalizes them and applies them to the face.
func (s *Shaper) SetVariations(vars []glyph.Variation) error {
	if s.face == nil {
		return glyph.ErrNotLoaded
	}
	if len(vars) == 0 {
		s.face.SetVarCoordinates(nil)
	} else {
		fvar := s.face.Variations()
		design := fvar.GetDesignCoordsDefault(Variations(vars))
		s.face.SetVarCoordinates(s.face.NormalizeVariations(design))
		tracer().Debugf("%s: design coordinates %v", Name, design)
	}
	s.font = hb.NewFont(s.face)
	return nil
}

// Axes lists the variation axes of the font; it is empty for static fonts.
func (s *Shaper) Axes() []glyph.Axis {
	if s.face == nil {
		return nil
	}
	fvar := s.face.Variations()
	axes := make([]glyph.Axis, len(fvar.Axis))
	for i, a := range fvar.Axis {
		var tag glyph.Tag
		binary.BigEndian.PutUint32(tag[:], uint32(a.Tag))
		axes[i] = glyph.Axis{Tag: tag, Min: a.Minimum, Default: a.Default, Max: a.Maximum}
	}
	return axes
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
	buf := hb.NewBuffer()
	buf.Props = segmentProperties(runes, params)
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(s.font, features(params.Features))

	out := make([]glyph.Record, len(buf.Info))
	for i, info := range buf.Info {
		pos := buf.Pos[i]
		out[i] = glyph.Record{
			GID:      uint32(info.Glyph),
			Cluster:  int(info.Cluster),
			XAdvance: int32(pos.XAdvance),
			YAdvance: int32(pos.YAdvance),
			XOffset:  int32(pos.XOffset),
			YOffset:  int32(pos.YOffset),
		}
	}
	tracer().Debugf("%s: shaped %d runes into %d glyphs", Name, len(runes), len(out))
	return out, nil
}

// segmentProperties converts params and fills in what they leave unset:
// the script of the first rune with a real script, the direction of the
// text and the language of the locale.
func segmentProperties(runes []rune, params shape.Params) hb.SegmentProperties {
	var props hb.SegmentProperties
	if params.HasScript() {
		props.Script = hblang.Script(shape.ScriptTag(params.Script))
	} else {
		for _, r := range runes {
			if scr := hblang.LookupScript(r); scr.IsRealScript() {
				props.Script = scr
				break
			}
		}
	}
	dir := params.Direction
	if dir == shape.Auto {
		dir = shape.GuessDirection(runes)
	}
	props.Direction = hb.LeftToRight
	if dir == shape.RightToLeft {
		props.Direction = hb.RightToLeft
	}
	if params.Language != language.Und {
		props.Language = hblang.NewLanguage(params.Language.String())
	} else {
		props.Language = hblang.DefaultLanguage()
	}
	tracer().Debugf("%s: segment %s %v %q", Name, dir, props.Script, props.Language)
	return props
}

// Variations converts variation settings to textlayout's representation.
func Variations(vars []glyph.Variation) []hbtt.Variation {
	out := make([]hbtt.Variation, len(vars))
	for i, v := range vars {
		out[i] = hbtt.Variation{Tag: hbtt.Tag(v.Tag.Uint32()), Value: v.Value}
	}
	return out
}

func features(fs []shape.Feature) []hb.Feature {
	out := make([]hb.Feature, 0, len(fs))
	for _, f := range fs {
		out = append(out, hb.Feature{
			Tag:   hbtt.Tag(f.Tag.Uint32()),
			Value: uint32(f.Value),
			Start: 0,
			End:   math.MaxInt32,
		})
	}
	return out
}
