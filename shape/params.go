package shape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/shapediff/glyph"
	"golang.org/x/text/language"
)

// ParseDirection parses "ltr", "rtl" or "auto" (the empty string counts as auto).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "auto":
		return Auto, nil
	case "ltr", "left-to-right":
		return LeftToRight, nil
	case "rtl", "right-to-left":
		return RightToLeft, nil
	default:
		return Auto, fmt.Errorf("unsupported direction %q (expected ltr|rtl|auto)", s)
	}
}

// ParseScript parses an ISO 15924 script code. The empty string, "-" and
// "auto" yield the zero script, which lets the engine guess.
func ParseScript(s string) (language.Script, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "auto") {
		return language.Script{}, nil
	}
	if len(s) != 4 {
		return language.Script{}, fmt.Errorf("invalid script %q (expected 4 letters)", s)
	}
	scr, err := language.ParseScript(s)
	if err != nil {
		return language.Script{}, fmt.Errorf("invalid script %q: %w", s, err)
	}
	return scr, nil
}

// ParseLanguage parses a BCP 47 language tag. The empty string and "-"
// yield language.Und.
func ParseLanguage(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return language.Und, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}

var noFeature = Feature{}

// ParseFeatures parses a feature list in hb-shape syntax, separated by commas
// or spaces, e.g. "liga=0,+kern,-calt,salt=2". "-" and the empty string yield
// no features.
//
// Feature ranges ("liga[3:5]") are not supported.
func ParseFeatures(spec string) ([]Feature, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "-" {
		return nil, nil
	}
	parts := splitCSVSpace(spec)
	out := make([]Feature, 0, len(parts))
	for _, p := range parts {
		f, err := parseFeatureItem(p)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func parseFeatureItem(item string) (Feature, error) {
	if item = strings.TrimSpace(item); item == "" {
		return noFeature, errors.New("empty feature entry")
	}
	value := 1
	if rest, ok := strings.CutPrefix(item, "+"); ok {
		item = rest
	} else if rest, ok := strings.CutPrefix(item, "-"); ok {
		item, value = rest, 0
	}
	tagPart, valuePart, hasEqual := strings.Cut(item, "=")
	if hasEqual {
		if valuePart == "" {
			return noFeature, fmt.Errorf("empty feature value in %q", item)
		}
		n, err := strconv.Atoi(strings.TrimSpace(valuePart))
		if err != nil {
			return noFeature, fmt.Errorf("invalid feature value in %q: %w", item, err)
		}
		if n < 0 {
			return noFeature, fmt.Errorf("negative feature value in %q", item)
		}
		value = n
	}
	tagPart = strings.TrimSpace(tagPart)
	if len(tagPart) != 4 {
		return noFeature, fmt.Errorf("feature tag %q is not 4 characters", tagPart)
	}
	tag, err := glyph.ParseTag(tagPart)
	if err != nil {
		return noFeature, err
	}
	return Feature{Tag: tag, Value: value}, nil
}

// ParseCodepoints parses a list of code points like "U+0627,U+0644 0x644".
func ParseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10FFFF || (u >= 0xD800 && u <= 0xDFFF) {
		return 0, fmt.Errorf("codepoint %q is not a Unicode scalar value", token)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
