package raster

import (
	"image/color"

	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/outline"
)

// Pen carries the drawing parameters shared by all glyphs of a run.
type Pen struct {
	Source outline.Source // outline engine
	Scale  outline.Scale  // design units to pixels
	Ascent float32        // baseline distance from the band top, in pixels
	Ink    color.RGBA
}

// RunStats summarizes one DrawRun call.
type RunStats struct {
	Caret   int64 // final caret in design units
	Drawn   int   // glyphs with a visible outline
	Skipped int   // glyphs without outline
	Clipped int   // pixels dropped at the canvas edges
}

// DrawRun composites a glyph run into band n of the canvas. Glyphs are
// placed in run order; the caret starts at zero and accumulates unscaled
// X advances, while offsets are applied to the scaled caret position.
// Later glyphs blend over earlier ones.
func (c *Canvas) DrawRun(n int, run []glyph.Record, pen Pen) RunStats {
	var stats RunStats
	dx, dy := c.Margin, c.Margin+c.BandOffset(n)
	for _, g := range run {
		origin := outline.Point{
			X: float32(stats.Caret+int64(g.XOffset)) * pen.Scale.X,
			Y: pen.Ascent - float32(g.YOffset)*pen.Scale.Y,
		}
		stats.Caret += int64(g.XAdvance)
		path, ok := pen.Source.Outline(g.GID)
		if !ok {
			stats.Skipped++
			continue
		}
		mask, ok := outline.Rasterize(path, origin, pen.Scale)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Drawn++
		r := mask.Rect
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if !c.BlendPixel(x+dx, y+dy, pen.Ink, mask.Coverage(x, y)) {
					stats.Clipped++
				}
			}
		}
	}
	tracer().Debugf("band %d: %d glyphs drawn, %d skipped, %d pixels clipped",
		n, stats.Drawn, stats.Skipped, stats.Clipped)
	return stats
}
