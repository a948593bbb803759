package outline

import (
	"image"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/internal/fontload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// square is a 10×10 design unit box with its lower left corner at the origin.
var square = Path{
	{Op: MoveTo, Args: [3]Point{{X: 0, Y: 0}}},
	{Op: LineTo, Args: [3]Point{{X: 10, Y: 0}}},
	{Op: LineTo, Args: [3]Point{{X: 10, Y: 10}}},
	{Op: LineTo, Args: [3]Point{{X: 0, Y: 10}}},
}

func TestRasterizeSquare(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shapediff.outline")
	defer teardown()
	//
	m, ok := Rasterize(square, Point{X: 5, Y: 20}, Scale{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, image.Rect(5, 10, 15, 20), m.Rect, "y axis must be flipped around the origin")
	assert.InDelta(t, 1.0, m.Coverage(10, 15), 0.01, "inside the square")
	assert.InDelta(t, 1.0, m.Coverage(5, 10), 0.01, "top left pixel is fully covered")
	assert.Equal(t, float32(0), m.Coverage(15, 15), "outside the mask")
	assert.Equal(t, float32(0), m.Coverage(4, 15), "outside the mask")
}

func TestRasterizeSubPixel(t *testing.T) {
	m, ok := Rasterize(square, Point{X: 0.5, Y: 10}, Scale{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 11, 10), m.Rect)
	assert.InDelta(t, 0.5, m.Coverage(0, 5), 0.02, "left column is half covered")
	assert.InDelta(t, 1.0, m.Coverage(5, 5), 0.01)
	assert.InDelta(t, 0.5, m.Coverage(10, 5), 0.02, "right column is half covered")
}

func TestRasterizeScaled(t *testing.T) {
	m, ok := Rasterize(square, Point{}, Scale{X: 0.5, Y: 2})
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, -20, 5, 0), m.Rect)
}

func TestRasterizeEmpty(t *testing.T) {
	_, ok := Rasterize(nil, Point{}, Scale{X: 1, Y: 1})
	assert.False(t, ok)
	line := Path{
		{Op: MoveTo, Args: [3]Point{{X: 0, Y: 0}}},
		{Op: LineTo, Args: [3]Point{{X: 0, Y: 10}}},
	}
	_, ok = Rasterize(line, Point{X: 3, Y: 3}, Scale{X: 1, Y: 1})
	assert.False(t, ok, "a zero-width path covers no pixel")
}

func TestNilMaskCoverage(t *testing.T) {
	var m *Mask
	assert.Equal(t, float32(0), m.Coverage(0, 0))
}

func TestSegmentPoints(t *testing.T) {
	assert.Len(t, Segment{Op: MoveTo}.Points(), 1)
	assert.Len(t, Segment{Op: LineTo}.Points(), 1)
	assert.Len(t, Segment{Op: QuadTo}.Points(), 2)
	assert.Len(t, Segment{Op: CubeTo}.Points(), 3)
}

func TestNewSource(t *testing.T) {
	for _, name := range Names() {
		src, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, src.Name())
	}
	_, err := New("freetype")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func glyphIndex(t *testing.T, r rune) uint32 {
	f, err := fontload.ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	gid, err := f.SFNT.GlyphIndex(&sfnt.Buffer{}, r)
	require.NoError(t, err)
	require.NotZero(t, gid)
	return uint32(gid)
}

func TestSourcesOnGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shapediff.outline")
	defer teardown()
	//
	gidA, gidSpace := glyphIndex(t, 'A'), glyphIndex(t, ' ')
	bounds := map[string]image.Rectangle{}
	for _, name := range Names() {
		src, err := New(name)
		require.NoError(t, err)
		require.NoError(t, src.Load(goregular.TTF), name)
		m := src.Metrics()
		assert.Equal(t, 2048, m.UnitsPerEm, name)
		assert.Greater(t, m.Ascent, float32(0), name)
		assert.Less(t, m.Descent, float32(0), name)
		path, ok := src.Outline(gidA)
		require.True(t, ok, "%s: 'A' must have an outline", name)
		assert.Equal(t, MoveTo, path[0].Op, name)
		_, ok = src.Outline(gidSpace)
		assert.False(t, ok, "%s: space has no outline", name)
		mask, ok := Rasterize(path, Point{X: 0, Y: 100}, Scale{X: 0.05, Y: 0.05})
		require.True(t, ok, name)
		bounds[name] = mask.Rect
	}
	assert.Equal(t, bounds[GoTextName], bounds[SFNTName], "both engines must draw 'A' alike")
}

func TestUnloadedSources(t *testing.T) {
	for _, src := range []Source{NewGoText(), NewSFNT()} {
		assert.ErrorIs(t, src.SetVariations(nil), glyph.ErrNotLoaded, src.Name())
		_, ok := src.Outline(1)
		assert.False(t, ok)
		assert.Zero(t, src.Metrics())
	}
}

func TestSFNTHasNoVariations(t *testing.T) {
	src := NewSFNT()
	require.NoError(t, src.Load(goregular.TTF))
	assert.NoError(t, src.SetVariations(nil))
	err := src.SetVariations([]glyph.Variation{{Tag: glyph.MustParseTag("wght"), Value: 700}})
	assert.ErrorIs(t, err, glyph.ErrNoVariations)
}

func TestGoTextAcceptsVariationsOnStaticFont(t *testing.T) {
	src := NewGoText()
	require.NoError(t, src.Load(goregular.TTF))
	err := src.SetVariations([]glyph.Variation{{Tag: glyph.MustParseTag("wght"), Value: 700}})
	assert.NoError(t, err)
	_, ok := src.Outline(glyphIndex(t, 'A'))
	assert.True(t, ok)
}
