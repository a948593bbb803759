package shape

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shapediff/glyph"
	"golang.org/x/text/language"
)

type testShaper struct {
	name string
}

func (s *testShaper) Name() string                          { return s.name }
func (s *testShaper) Load([]byte) error                     { return nil }
func (s *testShaper) SetVariations([]glyph.Variation) error { return nil }
func (s *testShaper) Shape(string, Params) ([]glyph.Record, error) {
	return nil, nil
}

func factoryFor(name string) Factory {
	return func() Shaper { return &testShaper{name: name} }
}

func TestShaperRegistryCreatesByName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shapediff.shape")
	defer teardown()
	//
	reg := newShaperRegistry()
	if err := reg.register("zzz", factoryFor("zzz")); err != nil {
		t.Fatal(err)
	}
	if err := reg.register("aaa", factoryFor("aaa")); err != nil {
		t.Fatal(err)
	}
	s, err := reg.create("aaa")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "aaa" {
		t.Fatalf("expected engine aaa, got %q", s.Name())
	}
	if names := reg.names(); len(names) != 2 || names[0] != "zzz" || names[1] != "aaa" {
		t.Fatalf("expected names in registration order, got %v", names)
	}
}

func TestShaperRegistryRejectsDuplicates(t *testing.T) {
	reg := newShaperRegistry()
	if err := reg.register("dup", factoryFor("dup")); err != nil {
		t.Fatal(err)
	}
	err := reg.register("dup", factoryFor("dup"))
	if !errors.Is(err, ErrShaperAlreadyRegistered) {
		t.Fatalf("expected ErrShaperAlreadyRegistered, got %v", err)
	}
	if err := reg.register(" ", factoryFor("blank")); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := reg.register("nil", nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
}

func TestShaperRegistryUnknownName(t *testing.T) {
	reg := newShaperRegistry()
	_, err := reg.create("nope")
	if !errors.Is(err, ErrUnknownShaper) {
		t.Fatalf("expected ErrUnknownShaper, got %v", err)
	}
}

func TestShaperRegistryClearAndReregister(t *testing.T) {
	reg := newShaperRegistry()
	if err := reg.register("first", factoryFor("first")); err != nil {
		t.Fatal(err)
	}
	reg.clear()
	if _, err := reg.create("first"); err == nil {
		t.Fatal("expected cleared registry to forget engines")
	}
	if err := reg.register("first", factoryFor("first")); err != nil {
		t.Fatalf("expected re-registration after clear to succeed: %v", err)
	}
}

func TestParseFeatures(t *testing.T) {
	features, err := ParseFeatures("liga=0,+kern -calt salt=2")
	if err != nil {
		t.Fatal(err)
	}
	want := []Feature{
		{Tag: glyph.MustParseTag("liga"), Value: 0},
		{Tag: glyph.MustParseTag("kern"), Value: 1},
		{Tag: glyph.MustParseTag("calt"), Value: 0},
		{Tag: glyph.MustParseTag("salt"), Value: 2},
	}
	if len(features) != len(want) {
		t.Fatalf("got %d features, want %d", len(features), len(want))
	}
	for i := range want {
		if features[i] != want[i] {
			t.Errorf("feature[%d] = %+v, want %+v", i, features[i], want[i])
		}
	}
	if features[0].On() || !features[3].On() {
		t.Error("On() does not reflect feature values")
	}
	for _, bad := range []string{"lig", "liga=", "liga=x", "liga=-1"} {
		if _, err := ParseFeatures(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if f, err := ParseFeatures("-"); err != nil || f != nil {
		t.Errorf("expected no features for '-', got %v, %v", f, err)
	}
}

func TestDirectionZeroValueIsAuto(t *testing.T) {
	var p Params
	if p.Direction != Auto {
		t.Fatalf("zero Params should guess the direction, have %v", p.Direction)
	}
	if Auto.String() != "auto" || RightToLeft.String() != "rtl" {
		t.Errorf("unexpected direction names %v, %v", Auto, RightToLeft)
	}
}

func TestGuessDirection(t *testing.T) {
	for _, c := range []struct {
		text string
		want Direction
	}{
		{"Hello", LeftToRight},
		{"بسم الله", RightToLeft},
		{"שלום", RightToLeft},
		{"123 بسم", RightToLeft},
		{"(abc) بسم", LeftToRight},
		{"123 ...", LeftToRight},
		{"", LeftToRight},
	} {
		if dir := GuessDirection([]rune(c.text)); dir != c.want {
			t.Errorf("GuessDirection(%q) = %v, want %v", c.text, dir, c.want)
		}
	}
}

func TestParseSegmentProperties(t *testing.T) {
	dir, err := ParseDirection("RTL")
	if err != nil || dir != RightToLeft {
		t.Fatalf("ParseDirection(RTL) = %v, %v", dir, err)
	}
	if dir, _ = ParseDirection(""); dir != Auto {
		t.Fatalf("expected empty direction to mean auto, got %v", dir)
	}
	if _, err = ParseDirection("up"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
	scr, err := ParseScript("Arab")
	if err != nil {
		t.Fatal(err)
	}
	p := Params{Script: scr}
	if !p.HasScript() {
		t.Fatal("expected explicit script")
	}
	if got := ScriptTag(scr); got != 0x61726162 {
		t.Fatalf("ScriptTag(Arab) = %#x, want 'arab'", got)
	}
	if scr, _ = ParseScript("auto"); (Params{Script: scr}).HasScript() {
		t.Fatal("expected auto script to be unset")
	}
	lang, err := ParseLanguage("ar")
	if err != nil || lang != language.Arabic {
		t.Fatalf("ParseLanguage(ar) = %v, %v", lang, err)
	}
}

func TestParseCodepoints(t *testing.T) {
	runes, err := ParseCodepoints("U+0627,u+0644 0x41")
	if err != nil {
		t.Fatal(err)
	}
	if string(runes) != "الA" {
		t.Fatalf("unexpected runes %q", string(runes))
	}
	if _, err := ParseCodepoints("U+D800"); err == nil {
		t.Fatal("expected surrogate to be rejected")
	}
}
