package main

import (
	"fmt"

	"github.com/npillmayer/shapediff"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runRenderCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	cfg := configFromFlags(flags)
	f := mustLoadFont(args["font"].Value)
	text := inputText(args, flags, cfg)

	res, err := shapediff.Compare(cfg, f.Binary, text)
	if err != nil {
		fatalf("%v", err)
	}
	textID := "inline"
	if cfg.TextFile != "" {
		textID = shapediff.TextID(cfg.TextFile)
	}
	out := cfg.OutputPath(textID)
	if err := res.Canvas.Save(out); err != nil {
		fatalf("%v", err)
	}
	b := res.Canvas.Img.Bounds()
	pterm.Success.Printf("wrote %s (%dx%d)\n", out, b.Dx(), b.Dy())
	if diffs := res.Diff(); len(diffs) > 0 {
		pterm.Info.Printf("%s and %s differ at %d glyph positions\n", cfg.ShaperA, cfg.ShaperB, len(diffs))
	}
	if res.StatsB.Clipped > 0 && !cfg.FitWidest {
		fmt.Println("hint: the bottom band was clipped, use --fit-widest to see all of it")
	}
}
