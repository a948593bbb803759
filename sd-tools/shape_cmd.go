package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/shapediff"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/shape"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runShapeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	cfg := configFromFlags(flags)
	f := mustLoadFont(args["font"].Value)
	text := inputText(args, flags, cfg)

	runA, err := shapeWith(cfg.ShaperA, f.Binary, cfg, text)
	if err != nil {
		fatalf("%v", err)
	}
	runB, err := shapeWith(cfg.ShaperB, f.Binary, cfg, text)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("%-12s %s\n", cfg.ShaperA+":", glyph.Format(runA))
	fmt.Printf("%-12s %s\n", cfg.ShaperB+":", glyph.Format(runB))
	printDiffs(cfg, shapediff.DiffRuns(runA, runB))
}

// shapeWith runs one shaper without rendering.
func shapeWith(name string, font []byte, cfg shapediff.Config, text string) ([]glyph.Record, error) {
	s, err := shape.New(name)
	if err != nil {
		return nil, err
	}
	if err := s.Load(font); err != nil {
		return nil, err
	}
	if err := s.SetVariations(cfg.Variations); err != nil {
		return nil, err
	}
	return s.Shape(strings.TrimSpace(text), cfg.Params)
}

func printDiffs(cfg shapediff.Config, diffs []shapediff.GlyphDiff) {
	if len(diffs) == 0 {
		pterm.Success.Println("glyph runs are identical")
		return
	}
	rec := func(r *glyph.Record) string {
		if r == nil {
			return "-"
		}
		return r.String()
	}
	data := [][]string{
		{"Index", cfg.ShaperA, cfg.ShaperB, "Differs in"},
	}
	for _, d := range diffs {
		data = append(data, []string{
			fmt.Sprintf("%d", d.Index),
			rec(d.A),
			rec(d.B),
			strings.Join(d.Fields(), ","),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
