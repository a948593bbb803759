package outline

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/internal/gotextconv"
)

// GoText reads outlines with go-text/typesetting. Outlines of variable fonts
// follow the variation settings (gvar / CFF2 blending).
type GoText struct {
	face *font.Face
}

var _ Source = (*GoText)(nil)

// NewGoText returns an unloaded source.
func NewGoText() *GoText {
	return &GoText{}
}

// Name returns "gotext".
func (g *GoText) Name() string { return GoTextName }

// Load parses the font bytes.
func (g *GoText) Load(data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("outline %s: cannot parse font: %w", GoTextName, err)
	}
	g.face = face
	return nil
}

// SetVariations applies variation settings to the face.
func (g *GoText) SetVariations(vars []glyph.Variation) error {
	if g.face == nil {
		return glyph.ErrNotLoaded
	}
	g.face.SetVariations(gotextconv.Variations(vars))
	return nil
}

// Metrics returns the horizontal font extents.
func (g *GoText) Metrics() Metrics {
	if g.face == nil {
		return Metrics{}
	}
	m := Metrics{UnitsPerEm: int(g.face.Upem())}
	if ext, ok := g.face.FontHExtents(); ok {
		m.Ascent = ext.Ascender
		m.Descent = ext.Descender
	}
	return m
}

// Outline returns the glyph path. Bitmap and SVG glyphs have no outline.
func (g *GoText) Outline(gid uint32) (Path, bool) {
	if g.face == nil {
		return nil, false
	}
	data := g.face.GlyphData(font.GID(gid))
	outline, ok := data.(font.GlyphOutline)
	if !ok {
		tracer().Debugf("glyph %d has no outline (%T)", gid, data)
		return nil, false
	}
	if len(outline.Segments) == 0 {
		return nil, false
	}
	path := make(Path, len(outline.Segments))
	for i, seg := range outline.Segments {
		s := Segment{}
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			s.Op = MoveTo
		case ot.SegmentOpLineTo:
			s.Op = LineTo
		case ot.SegmentOpQuadTo:
			s.Op = QuadTo
		case ot.SegmentOpCubeTo:
			s.Op = CubeTo
		}
		for j := range seg.Args {
			s.Args[j] = Point{X: seg.Args[j].X, Y: seg.Args[j].Y}
		}
		path[i] = s
	}
	return path, true
}
