package outline

import (
	"fmt"

	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/internal/fontload"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNT reads outlines with golang.org/x/image/font/sfnt. It cannot apply
// variations: variable fonts are drawn in their default instance.
type SFNT struct {
	font *fontload.ScalableFont
	buf  sfnt.Buffer
}

var _ Source = (*SFNT)(nil)

// NewSFNT returns an unloaded source.
func NewSFNT() *SFNT {
	return &SFNT{}
}

// Name returns "sfnt".
func (s *SFNT) Name() string { return SFNTName }

// Load parses the font bytes.
func (s *SFNT) Load(data []byte) error {
	f, err := fontload.ParseOpenTypeFont(data)
	if err != nil {
		return fmt.Errorf("outline %s: cannot parse font: %w", SFNTName, err)
	}
	s.font = f
	return nil
}

// SetVariations accepts an empty list only. For any other list it returns
// glyph.ErrNoVariations; the source stays usable with default outlines.
func (s *SFNT) SetVariations(vars []glyph.Variation) error {
	if s.font == nil {
		return glyph.ErrNotLoaded
	}
	if len(vars) > 0 {
		return fmt.Errorf("outline %s: %w", SFNTName, glyph.ErrNoVariations)
	}
	return nil
}

// ppem requests outlines at one pixel per design unit, so 26.6 values
// divided by 64 are design units.
func (s *SFNT) ppem() fixed.Int26_6 {
	return fixed.I(int(s.font.SFNT.UnitsPerEm()))
}

// Metrics returns ascent and descent from the hhea/OS/2 tables.
func (s *SFNT) Metrics() Metrics {
	if s.font == nil {
		return Metrics{}
	}
	m := Metrics{UnitsPerEm: int(s.font.SFNT.UnitsPerEm())}
	fm, err := s.font.SFNT.Metrics(&s.buf, s.ppem(), font.HintingNone)
	if err != nil {
		tracer().Errorf("cannot read font metrics: %v", err)
		return m
	}
	m.Ascent = float32(fm.Ascent) / 64
	m.Descent = -float32(fm.Descent) / 64
	return m
}

// Outline returns the glyph path, converted to a y-up coordinate system.
func (s *SFNT) Outline(gid uint32) (Path, bool) {
	if s.font == nil {
		return nil, false
	}
	segs, err := s.font.SFNT.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), s.ppem(), nil)
	if err != nil {
		tracer().Debugf("glyph %d: %v", gid, err)
		return nil, false
	}
	if len(segs) == 0 {
		return nil, false
	}
	// sfnt segments are only valid until the buffer is re-used; copy now
	path := make(Path, len(segs))
	for i, seg := range segs {
		p := Segment{}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			p.Op = MoveTo
		case sfnt.SegmentOpLineTo:
			p.Op = LineTo
		case sfnt.SegmentOpQuadTo:
			p.Op = QuadTo
		case sfnt.SegmentOpCubeTo:
			p.Op = CubeTo
		}
		for j := range seg.Args {
			p.Args[j] = Point{
				X: float32(seg.Args[j].X) / 64,
				Y: -float32(seg.Args[j].Y) / 64,
			}
		}
		path[i] = p
	}
	return path, true
}
