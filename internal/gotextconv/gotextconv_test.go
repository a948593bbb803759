package gotextconv

import (
	"testing"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	assert.Equal(t, ot.MustNewTag("wght"), Tag(glyph.MustParseTag("wght")))
	assert.Equal(t, glyph.MustParseTag("MSHQ").Uint32(), uint32(Tag(glyph.MustParseTag("MSHQ"))))
}

func TestVariations(t *testing.T) {
	assert.Nil(t, Variations(nil))
	vars, err := glyph.ParseVariations("MSHQ=25,SPAC=-80")
	require.NoError(t, err)
	out := Variations(vars)
	require.Len(t, out, 2)
	assert.Equal(t, ot.MustNewTag("MSHQ"), out[0].Tag)
	assert.Equal(t, float32(25), out[0].Value)
	assert.Equal(t, ot.MustNewTag("SPAC"), out[1].Tag)
	assert.Equal(t, float32(-80), out[1].Value)
}
