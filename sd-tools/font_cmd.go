package main

import (
	"fmt"

	"github.com/npillmayer/shapediff/outline"
	"github.com/npillmayer/shapediff/shape/hbtextlayout"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(args["font"].Value)
	info := f.Info()

	fmt.Printf("Path: %s\n", f.Filepath)
	if info.Fullname != "" {
		fmt.Printf("Name: %s\n", info.Fullname)
	}
	if info.Family != "" {
		fmt.Printf("Family: %s\n", info.Family)
	}
	if info.Subfamily != "" {
		fmt.Printf("Subfamily: %s\n", info.Subfamily)
	}
	if info.Version != "" {
		fmt.Printf("Version: %s\n", info.Version)
	}
	fmt.Printf("Glyphs: %d\n", info.NumGlyphs)
	fmt.Printf("Units per em: %d\n", info.UnitsPerEm)

	data := [][]string{{"Outline engine", "Ascent", "Descent"}}
	for _, name := range outline.Names() {
		src, err := outline.New(name)
		if err != nil {
			fatalf("%v", err)
		}
		if err := src.Load(f.Binary); err != nil {
			pterm.Error.Printf("%s: %v\n", name, err)
			continue
		}
		m := src.Metrics()
		data = append(data, []string{name, fmt.Sprintf("%.0f", m.Ascent), fmt.Sprintf("%.0f", m.Descent)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	s := hbtextlayout.New()
	if err := s.Load(f.Binary); err != nil {
		fatalf("%v", err)
	}
	axes := s.Axes()
	if len(axes) == 0 {
		fmt.Println("Variation axes: none")
		return
	}
	fmt.Printf("Variation axes (%d):\n", len(axes))
	for _, a := range axes {
		fmt.Printf("  %s\n", a)
	}
}
