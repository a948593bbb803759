/*
Package shape defines the interface between the comparison pipeline and the
text-shaping engines it compares.

Engines are black boxes: each one parses the font bytes on its own, applies
the variation settings it is given and turns a line of text into an ordered
sequence of [glyph.Record]s. Adapters register a factory under a name with
[Register]; the pipeline instantiates them by name with [New].

Sub-packages hbgotext and hbtextlayout contain the adapters for the two
HarfBuzz ports the tool compares by default.
*/
package shape

import (
	"encoding/binary"
	"unicode"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapediff/glyph"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// tracer traces with key 'shapediff.shape'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff.shape")
}

// Shaper is a text-shaping engine front-end.
type Shaper interface {
	glyph.Frontend
	// Shape shapes one logical line of text. The returned records are in
	// output (visual) order as the engine produces them.
	Shape(text string, params Params) ([]glyph.Record, error)
}

// Params are segment properties and user features for one shaping call.
// Zero values ask the engine to guess the property from the text.
type Params struct {
	Direction Direction       // Auto guesses from the text
	Script    language.Script // ISO 15924; zero value guesses
	Language  language.Tag    // BCP 47; language.Und leaves it unset
	Features  []Feature       // user features, applied to the whole line
}

// Direction is the writing direction of a line. The zero value is Auto.
type Direction uint8

// Writing directions.
const (
	Auto Direction = iota
	LeftToRight
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	}
	return "auto"
}

// GuessDirection returns the direction of the first strong character of
// text. Text without strong characters is left-to-right.
func GuessDirection(text []rune) Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

// HasScript reports whether params select an explicit script.
func (p Params) HasScript() bool {
	var none language.Script
	return p.Script != none
}

// Feature switches an OpenType feature for the whole line.
type Feature struct {
	Tag   glyph.Tag
	Value int // 1 for on, 0 for off, >1 selects an alternate
}

// On reports whether the feature is enabled.
func (f Feature) On() bool {
	return f.Value != 0
}

// ScriptTag converts an ISO 15924 script to the numeric script tag used by
// the HarfBuzz ports ("Arab" → 'arab').
func ScriptTag(s language.Script) uint32 {
	b := []byte(s.String())
	if len(b) != 4 {
		return 0
	}
	b[0] = byte(unicode.ToLower(rune(b[0])))
	return binary.BigEndian.Uint32(b)
}
