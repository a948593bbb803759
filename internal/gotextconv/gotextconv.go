// Package gotextconv converts the module's font types to go-text's
// representation. It is shared by the go-text shaper and the go-text outline
// source, which must see identical variation coordinates.
package gotextconv

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/shapediff/glyph"
)

// Tag converts a 4-byte tag.
func Tag(t glyph.Tag) ot.Tag {
	return ot.NewTag(t[0], t[1], t[2], t[3])
}

// Variations converts variation settings. An empty list converts to nil,
// which resets all axes of a face.
func Variations(vars []glyph.Variation) []font.Variation {
	if len(vars) == 0 {
		return nil
	}
	out := make([]font.Variation, len(vars))
	for i, v := range vars {
		out[i] = font.Variation{Tag: Tag(v.Tag), Value: v.Value}
	}
	return out
}
