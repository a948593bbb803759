/*
Package fontload reads font resources once and keeps the raw bytes, so that
every font front-end of a comparison parses the very same buffer.
*/
package fontload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'shapediff'.
func tracer() tracing.Trace {
	return tracing.Select("shapediff")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string // empty for fonts parsed from memory
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, fmt.Errorf("cannot read font: %w", err)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", filepath.Base(fontfile), err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// A missing full-name record is not an error; Fontname stays empty then.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// Info is a summary of a font for diagnostics.
type Info struct {
	Fullname   string
	Family     string
	Subfamily  string
	Version    string
	NumGlyphs  int
	UnitsPerEm int
}

// Info collects name-table entries and basic counts.
func (f *ScalableFont) Info() Info {
	var buf sfnt.Buffer
	name := func(id sfnt.NameID) string {
		s, err := f.SFNT.Name(&buf, id)
		if err != nil {
			return ""
		}
		return s
	}
	return Info{
		Fullname:   f.Fontname,
		Family:     name(sfnt.NameIDFamily),
		Subfamily:  name(sfnt.NameIDSubfamily),
		Version:    name(sfnt.NameIDVersion),
		NumGlyphs:  f.SFNT.NumGlyphs(),
		UnitsPerEm: int(f.SFNT.UnitsPerEm()),
	}
}
