/*
Package outline provides glyph outlines and per-pixel coverage masks.

A [Source] is the outline engine of the comparison: it parses the font bytes
independently of the shapers, applies the same variation settings and hands
out glyph paths in design units. [Rasterize] turns a path into a coverage
mask at a sub-pixel origin and a pixel scale.

Two sources exist: [GoText] (go-text/typesetting, variation aware) and [SFNT]
(golang.org/x/image/font/sfnt, default instance only).
*/
package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapediff/glyph"
)

// tracer traces with key 'shapediff.outline'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff.outline")
}

// ErrUnknownSource is returned by New for unknown outline engine names.
var ErrUnknownSource = errors.New("unknown outline source")

// Metrics are the font-wide metrics the compositor needs, in design units.
type Metrics struct {
	UnitsPerEm int
	Ascent     float32 // distance from baseline to top, positive
	Descent    float32 // distance from baseline to bottom, negative
}

// Source is an outline engine.
type Source interface {
	glyph.Frontend
	// Metrics returns font metrics for the current variation settings.
	Metrics() Metrics
	// Outline returns the path of a glyph in design units, y axis pointing up.
	// It returns false for glyphs without a visible outline.
	Outline(gid uint32) (Path, bool)
}

// SegmentOp is a path drawing operation.
type SegmentOp uint8

// Path operations. Their number of points is 1, 1, 2 and 3.
const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Point is a point in design units.
type Point struct {
	X, Y float32
}

// Segment is one drawing operation of a glyph path.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// Points returns the points used by the segment's operation.
func (s Segment) Points() []Point {
	switch s.Op {
	case QuadTo:
		return s.Args[:2]
	case CubeTo:
		return s.Args[:3]
	default:
		return s.Args[:1]
	}
}

// Path is a glyph outline.
type Path []Segment

// Names of the outline engines known to New.
const (
	GoTextName = "gotext"
	SFNTName   = "sfnt"
)

// Names lists the outline engines known to New.
func Names() []string {
	return []string{GoTextName, SFNTName}
}

// New creates an unloaded outline source by name.
func New(name string) (Source, error) {
	switch strings.TrimSpace(name) {
	case GoTextName:
		return NewGoText(), nil
	case SFNTName:
		return NewSFNT(), nil
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSource, name, strings.Join(Names(), ", "))
}
