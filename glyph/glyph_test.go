package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagPadsShortTags(t *testing.T) {
	tag, err := ParseTag("cv")
	require.NoError(t, err)
	assert.Equal(t, "cv  ", tag.String())

	_, err = ParseTag("toolong")
	assert.Error(t, err)
	_, err = ParseTag("")
	assert.Error(t, err)
}

func TestTagUint32IsBigEndian(t *testing.T) {
	assert.Equal(t, uint32(0x77676874), MustParseTag("wght").Uint32())
}

func TestParseVariations(t *testing.T) {
	vars, err := ParseVariations("MSHQ=25, SPAC:-80")
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, MustParseTag("MSHQ"), vars[0].Tag)
	assert.Equal(t, float32(25), vars[0].Value)
	assert.Equal(t, MustParseTag("SPAC"), vars[1].Tag)
	assert.Equal(t, float32(-80), vars[1].Value)
	assert.Equal(t, "SPAC:-80", vars[1].String())

	vars, err = ParseVariations("-")
	require.NoError(t, err)
	assert.Empty(t, vars)

	_, err = ParseVariations("wght")
	assert.Error(t, err, "missing value must be rejected")
	_, err = ParseVariations("wght=bold")
	assert.Error(t, err, "non-numeric value must be rejected")
}

func TestRecordFormat(t *testing.T) {
	run := []Record{
		{GID: 36, Cluster: 0, XAdvance: 1300},
		{GID: 512, Cluster: 1, XAdvance: 0, XOffset: -40, YOffset: 120},
		{GID: 7, Cluster: 2, XAdvance: 500, YAdvance: 20},
	}
	assert.Equal(t, "[36=0+1300|512=1+0@-40,120|7=2+500,20]", Format(run))
	assert.Equal(t, int64(1800), Advance(run))
	assert.Equal(t, "[]", Format(nil))
}

func TestAxisString(t *testing.T) {
	a := Axis{Tag: MustParseTag("MSHQ"), Min: 0, Default: 0, Max: 100}
	assert.Equal(t, "MSHQ 0…100 (default 0)", a.String())
}
