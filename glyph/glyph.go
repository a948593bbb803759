/*
Package glyph holds the data types shared between shaping engines, outline
sources and the compositor: shaped glyph records, variation settings and the
font front-end capability every engine adapter implements.

All positions and advances of a glyph record are in font design units. They
are scaled to pixels only at draw time.
*/
package glyph

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotLoaded is returned by front-ends which are used before Load succeeded.
	ErrNotLoaded = errors.New("glyph: font front-end has no font loaded")
	// ErrNoVariations is returned by front-ends which cannot apply variation settings.
	ErrNoVariations = errors.New("glyph: font front-end does not support variations")
)

// Frontend is the capability shared by all font back-ends: each front-end
// parses the same font bytes independently and must agree with the others on
// the variation settings in effect.
type Frontend interface {
	Name() string                         // registry name of the adapter
	Load(data []byte) error               // parse raw font bytes
	SetVariations(vars []Variation) error // apply variation settings
}

// Record is one positioned glyph as produced by a shaper.
type Record struct {
	GID      uint32 // glyph index in the font
	Cluster  int    // index of the first input rune of the cluster
	XAdvance int32  // caret movement after placing the glyph
	YAdvance int32
	XOffset  int32 // positioning adjustment, e.g. for mark attachment
	YOffset  int32
}

// String formats a record the way hb-shape does, without glyph names:
// gid=cluster+advance[,yadvance][@xoffset,yoffset].
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d=%d+%d", r.GID, r.Cluster, r.XAdvance)
	if r.YAdvance != 0 {
		fmt.Fprintf(&b, ",%d", r.YAdvance)
	}
	if r.XOffset != 0 || r.YOffset != 0 {
		fmt.Fprintf(&b, "@%d,%d", r.XOffset, r.YOffset)
	}
	return b.String()
}

// Format returns a glyph run as "[r0|r1|…]".
func Format(run []Record) string {
	parts := make([]string, len(run))
	for i, r := range run {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, "|") + "]"
}

// Advance returns the sum of all horizontal advances of a run, i.e. the final
// caret position in design units.
func Advance(run []Record) int64 {
	var caret int64
	for _, r := range run {
		caret += int64(r.XAdvance)
	}
	return caret
}

// --- Tags and variations ---------------------------------------------------

// Tag is a 4-byte OpenType tag, e.g. an axis tag like "wght".
type Tag [4]byte

// ParseTag parses a tag of one to four ASCII characters. Shorter tags are
// padded with spaces, as OpenType requires.
func ParseTag(s string) (Tag, error) {
	var t Tag
	if len(s) == 0 || len(s) > 4 {
		return t, fmt.Errorf("glyph: invalid tag %q (expected 1 to 4 characters)", s)
	}
	for i := range t {
		if i >= len(s) {
			t[i] = ' '
			continue
		}
		if s[i] < 0x20 || s[i] > 0x7e {
			return Tag{}, fmt.Errorf("glyph: invalid tag %q (non-printable character)", s)
		}
		t[i] = s[i]
	}
	return t, nil
}

// MustParseTag is like ParseTag but panics on invalid input.
func MustParseTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Uint32 returns the big-endian numeric value of a tag.
func (t Tag) Uint32() uint32 {
	return binary.BigEndian.Uint32(t[:])
}

func (t Tag) String() string {
	return string(t[:])
}

// Variation is a variable-font axis setting.
type Variation struct {
	Tag   Tag
	Value float32
}

func (v Variation) String() string {
	return fmt.Sprintf("%s:%.0f", strings.TrimRight(v.Tag.String(), " "), v.Value)
}

// ParseVariation parses a setting of the form "wght=700" or "wght:700".
func ParseVariation(s string) (Variation, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, "=:")
	if i < 0 {
		return Variation{}, fmt.Errorf("glyph: variation %q lacks a value (expected TAG=value)", s)
	}
	tag, err := ParseTag(strings.TrimSpace(s[:i]))
	if err != nil {
		return Variation{}, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 32)
	if err != nil {
		return Variation{}, fmt.Errorf("glyph: invalid value in variation %q: %w", s, err)
	}
	return Variation{Tag: tag, Value: float32(value)}, nil
}

// ParseVariations parses a comma or space separated list of variation settings.
// An empty list or "-" yields no variations.
func ParseVariations(spec string) ([]Variation, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "-" {
		return nil, nil
	}
	parts := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	vars := make([]Variation, 0, len(parts))
	for _, p := range parts {
		v, err := ParseVariation(p)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// Axis describes a variation axis of a font, in design coordinates.
type Axis struct {
	Tag               Tag
	Min, Default, Max float32
}

func (a Axis) String() string {
	return fmt.Sprintf("%s %g…%g (default %g)", strings.TrimRight(a.Tag.String(), " "), a.Min, a.Max, a.Default)
}
