package hbtextlayout

import (
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	td "github.com/go-text/typesetting-utils/opentype"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

func loaded(t *testing.T) *Shaper {
	s := New()
	require.NoError(t, s.Load(goregular.TTF))
	return s
}

func TestShapeLatin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shapediff.shape")
	defer teardown()
	//
	s := loaded(t)
	run, err := s.Shape("Hello", shape.Params{Script: language.MustParseScript("Latn"), Language: language.English})
	require.NoError(t, err)
	require.Len(t, run, 5)
	for i, g := range run {
		assert.NotZero(t, g.GID, "glyph[%d] is .notdef", i)
		assert.Positive(t, g.XAdvance, "glyph[%d]", i)
		assert.Equal(t, i, g.Cluster)
	}
	assert.Equal(t, run[2].GID, run[3].GID, "both l map to the same glyph")
}

func TestShapeRightToLeftReversesClusters(t *testing.T) {
	s := loaded(t)
	text, err := shape.ParseCodepoints("U+0041,U+0042,U+0043")
	require.NoError(t, err)
	run, err := s.Shape(string(text), shape.Params{Direction: shape.RightToLeft})
	require.NoError(t, err)
	require.Len(t, run, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{run[0].Cluster, run[1].Cluster, run[2].Cluster})
}

func loadedArabic(t *testing.T) *Shaper {
	data, err := td.Files.ReadFile("common/Mada-VF.ttf")
	require.NoError(t, err)
	s := New()
	require.NoError(t, s.Load(data))
	return s
}

func clusters(run []glyph.Record) []int {
	cs := make([]int, len(run))
	for i, g := range run {
		cs[i] = g.Cluster
	}
	return cs
}

func TestShapeArabicGuessesSegmentProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shapediff.shape")
	defer teardown()
	//
	s := loadedArabic(t)
	run, err := s.Shape("بسم", shape.Params{})
	require.NoError(t, err)
	require.NotEmpty(t, run)
	cs := clusters(run)
	assert.IsNonIncreasing(t, cs)
	assert.Zero(t, cs[len(cs)-1])
	assert.Greater(t, cs[0], cs[len(cs)-1], "clusters %v", cs)
	for i, g := range run {
		assert.NotZero(t, g.GID, "glyph[%d] is .notdef", i)
	}
}

func TestSegmentProperties(t *testing.T) {
	props := segmentProperties([]rune("123 بسم"), shape.Params{})
	assert.Equal(t, hblang.Arabic, props.Script)
	assert.Equal(t, hb.RightToLeft, props.Direction)
	assert.Equal(t, hblang.DefaultLanguage(), props.Language)

	props = segmentProperties([]rune("بسم"), shape.Params{
		Direction: shape.LeftToRight,
		Script:    language.MustParseScript("Latn"),
		Language:  language.Arabic,
	})
	assert.Equal(t, hblang.Latin, props.Script)
	assert.Equal(t, hb.LeftToRight, props.Direction)
	assert.Equal(t, hblang.NewLanguage("ar"), props.Language)

	props = segmentProperties([]rune("..."), shape.Params{})
	assert.Zero(t, props.Script)
	assert.Equal(t, hb.LeftToRight, props.Direction)
}

func TestVariationsOnStaticFont(t *testing.T) {
	s := loaded(t)
	before, err := s.Shape("AV", shape.Params{})
	require.NoError(t, err)
	require.NoError(t, s.SetVariations([]glyph.Variation{{Tag: glyph.MustParseTag("wght"), Value: 700}}))
	after, err := s.Shape("AV", shape.Params{})
	require.NoError(t, err)
	assert.Equal(t, before, after, "a font without axes ignores variations")
	require.NoError(t, s.SetVariations(nil))
	assert.Empty(t, s.Axes())
}

func TestFeatureOff(t *testing.T) {
	s := loaded(t)
	features, err := shape.ParseFeatures("-kern,-liga")
	require.NoError(t, err)
	run, err := s.Shape("AV", shape.Params{Features: features})
	require.NoError(t, err)
	assert.Len(t, run, 2)
	assert.Zero(t, run[0].XOffset)
}

func TestNotLoaded(t *testing.T) {
	s := New()
	_, err := s.Shape("A", shape.Params{})
	assert.ErrorIs(t, err, glyph.ErrNotLoaded)
	assert.ErrorIs(t, s.SetVariations(nil), glyph.ErrNotLoaded)
	assert.Error(t, s.Load([]byte("not a font")))
}

func TestRegisteredByName(t *testing.T) {
	assert.True(t, shape.IsRegistered(Name))
	s, err := shape.New(Name)
	require.NoError(t, err)
	assert.Equal(t, Name, s.Name())
}
