package outline

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Mask is a coverage mask in pixel space. Its rectangle is relative to the
// pixel grid the glyph origin was given in; Alpha uses the same rectangle.
type Mask struct {
	Rect  image.Rectangle
	Alpha *image.Alpha
}

// Coverage returns the coverage at pixel (x, y) in [0, 1]. Pixels outside
// the mask have zero coverage.
func (m *Mask) Coverage(x, y int) float32 {
	if m == nil || !(image.Point{x, y}).In(m.Rect) {
		return 0
	}
	return float32(m.Alpha.AlphaAt(x, y).A) / 0xff
}

// Scale converts design units to pixels, per axis.
type Scale struct {
	X, Y float32
}

// Rasterize fills path into a coverage mask. The glyph origin (baseline,
// left side bearing reference) is placed at the sub-pixel position origin of
// a y-down pixel grid; design units are multiplied by scale. The mask covers
// the pixels between the floor of the path's minimum and the ceiling of its
// maximum. Rasterize returns false for paths which cover no pixel.
func Rasterize(path Path, origin Point, scale Scale) (*Mask, bool) {
	if len(path) == 0 {
		return nil, false
	}
	tx := func(p Point) (float32, float32) {
		return origin.X + p.X*scale.X, origin.Y - p.Y*scale.Y
	}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, seg := range path {
		for _, p := range seg.Points() {
			x, y := tx(p)
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	rect := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
	if rect.Empty() {
		return nil, false
	}
	dx, dy := float32(rect.Min.X), float32(rect.Min.Y)
	local := func(p Point) (float32, float32) {
		x, y := tx(p)
		return x - dx, y - dy
	}

	rast := vector.NewRasterizer(rect.Dx(), rect.Dy())
	rast.DrawOp = draw.Src
	open := false
	for _, seg := range path {
		switch seg.Op {
		case MoveTo:
			if open {
				rast.ClosePath()
			}
			rast.MoveTo(local(seg.Args[0]))
			open = true
		case LineTo:
			rast.LineTo(local(seg.Args[0]))
		case QuadTo:
			bx, by := local(seg.Args[0])
			cx, cy := local(seg.Args[1])
			rast.QuadTo(bx, by, cx, cy)
		case CubeTo:
			bx, by := local(seg.Args[0])
			cx, cy := local(seg.Args[1])
			dx, dy := local(seg.Args[2])
			rast.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		rast.ClosePath()
	}
	alpha := image.NewAlpha(rect)
	rast.Draw(alpha, rect, image.Opaque, image.Point{})
	return &Mask{Rect: rect, Alpha: alpha}, true
}
