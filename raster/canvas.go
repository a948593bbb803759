/*
Package raster owns the comparison canvas: sizing it, compositing shaped
glyph runs onto it and encoding it to an image file.

Coordinates on the canvas grow down and to the right. Every glyph run is
drawn into a horizontal band; band n starts at n line heights below the top
margin.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/outline"
)

// tracer traces with key 'shapediff.raster'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff.raster")
}

// ErrNoPixelScale is returned if a point size cannot be turned into a
// pixel scale for a font.
var ErrNoPixelScale = errors.New("raster: cannot convert point size to pixel scale")

// PixelsPerPoint is the conversion for a 96 dpi output device.
const PixelsPerPoint = 96.0 / 72.0

// PixelScale returns the factor from design units to pixels for a font with
// unitsPerEm rendered at pointSize.
func PixelScale(pointSize float32, unitsPerEm int) (outline.Scale, error) {
	if unitsPerEm <= 0 {
		return outline.Scale{}, fmt.Errorf("%w: font has %d units per em", ErrNoPixelScale, unitsPerEm)
	}
	if pointSize <= 0 {
		return outline.Scale{}, fmt.Errorf("%w: point size %g", ErrNoPixelScale, pointSize)
	}
	f := pointSize * PixelsPerPoint / float32(unitsPerEm)
	return outline.Scale{X: f, Y: f}, nil
}

// LineWidth returns the scaled sum of all horizontal advances of a run,
// truncated to whole pixels.
func LineWidth(run []glyph.Record, scale outline.Scale) int {
	var w float32
	for _, g := range run {
		w += float32(g.XAdvance) * scale.X
	}
	if w < 0 {
		return 0
	}
	return int(w)
}

// CanvasSize computes the canvas extent for a content width, the fixed margin
// around the content and a number of bands of lineHeight each. Glyphs which
// are taller than their band are clipped against the canvas, not the band.
func CanvasSize(contentWidth, margin, lineHeight, bands int) (width, height int) {
	return contentWidth + 2*margin, bands*lineHeight + 2*margin
}

// Canvas is the RGBA buffer of a comparison.
type Canvas struct {
	Img        *image.RGBA
	Margin     int // offset of the content area from the canvas edges
	LineHeight int // height of a band
}

// NewCanvas allocates a canvas filled with the background color.
func NewCanvas(width, height, margin, lineHeight int, bg color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{Img: img, Margin: margin, LineHeight: lineHeight}
}

// BandOffset returns the vertical offset of band n relative to the top margin.
func (c *Canvas) BandOffset(n int) int {
	return n * c.LineHeight
}

// Blend mixes ink over dst with weight v: every channel (alpha included)
// becomes ink·v + dst·(1−v), truncated. v is clamped to [0, 1].
func Blend(ink, dst color.RGBA, v float32) color.RGBA {
	v = min(max(v, 0), 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a)*v + float32(b)*(1-v))
	}
	return color.RGBA{
		R: mix(ink.R, dst.R),
		G: mix(ink.G, dst.G),
		B: mix(ink.B, dst.B),
		A: mix(ink.A, dst.A),
	}
}

// BlendPixel blends ink into the canvas pixel at (x, y). Pixels outside the
// canvas are dropped; BlendPixel reports whether the pixel was inside.
func (c *Canvas) BlendPixel(x, y int, ink color.RGBA, v float32) bool {
	if !(image.Point{x, y}).In(c.Img.Rect) {
		return false
	}
	c.Img.SetRGBA(x, y, Blend(ink, c.Img.RGBAAt(x, y), v))
	return true
}

// Band returns the pixels of band n (including the side margins) as a
// view into the canvas.
func (c *Canvas) Band(n int) *image.RGBA {
	top := c.Margin + c.BandOffset(n)
	r := image.Rect(0, top, c.Img.Rect.Dx(), top+c.LineHeight)
	return c.Img.SubImage(r).(*image.RGBA)
}
