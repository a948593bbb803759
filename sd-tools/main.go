package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/shapediff"
	"github.com/npillmayer/shapediff/internal/fontload"
	"github.com/npillmayer/shapediff/shape"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'shapediff'
func tracer() tracing.Trace {
	return tracing.Select("shapediff")
}

func main() {
	initDisplay()

	commando.
		SetExecutableName("sd-tools").
		SetVersion("v0.1.0").
		SetDescription("Compare the output of two shaping engines for one line of text.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	comparing(commando.
		Register("render").
		SetDescription("Shape text with both engines and render both glyph runs into one image, engine A on top.").
		SetShortDescription("render comparison image").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to compare, '-' to read it from --file", "-").
		AddFlag("file,F", "text file (one line; its base name names the output)", commando.String, "-").
		AddFlag("outdir,o", "output directory", commando.String, "texts").
		AddFlag("format", "image format: png|bmp|tiff", commando.String, "png").
		AddFlag("factor,x", "resolution factor for margin, line height and point size", commando.Int, shapediff.DefaultFactor).
		AddFlag("fit-widest", "size the canvas from the wider of both runs", commando.Bool, nil).
		AddFlag("outline", "outline engine: gotext|sfnt", commando.String, "gotext").
		SetAction(runRenderCommand))

	comparing(commando.
		Register("shape").
		SetDescription("Shape text with both engines, print both glyph streams and their differences.").
		SetShortDescription("compare glyph streams").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to shape", "-").
		SetAction(runShapeCommand))

	commando.
		Register("font").
		SetDescription("Print diagnostics for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("trace", "trace level: Debug|Info|Error", commando.String, "Error").
		SetAction(runFontCommand)

	comparing(commando.
		Register("repl").
		SetDescription("Interactive mode: every line entered is compared and rendered.").
		SetShortDescription("interactive comparison").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("outdir,o", "output directory", commando.String, "texts").
		AddFlag("factor,x", "resolution factor for margin, line height and point size", commando.Int, shapediff.DefaultFactor).
		SetAction(runReplCommand))

	commando.Parse(nil)
}

// comparing adds the flags shared by all commands which run two shapers.
func comparing(cmd *commando.Command) *commando.Command {
	return cmd.
		AddFlag("shaper-a,a", "engine for the top band: "+strings.Join(shape.Names(), "|"), commando.String, "gotext").
		AddFlag("shaper-b,b", "engine for the bottom band: "+strings.Join(shape.Names(), "|"), commando.String, "textlayout").
		AddFlag("variations", "variation settings (e.g. MSHQ=25,SPAC=-80), '-' for none", commando.String, "MSHQ=25,SPAC=-80").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Arab, Hebr), auto if omitted", commando.String, "auto").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, he)", commando.String, "-").
		AddFlag("direction,d", "direction: auto|ltr|rtl", commando.String, "auto").
		AddFlag("features,f", "feature list (e.g. liga=1,kern=0,+rlig,-calt)", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("trace", "trace level: Debug|Info|Error", commando.String, "Error")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

var traceKeys = []string{"shapediff", "shapediff.shape", "shapediff.outline", "shapediff.raster"}

// setupTracing routes all tracers of the module to Go's log package.
func setupTracing(flags map[string]commando.FlagValue) {
	level := mustFlagString(flags["trace"], "trace")
	tl := tracing.LevelError
	switch level {
	case "Debug":
		tl = tracing.LevelDebug
	case "Info":
		tl = tracing.LevelInfo
	case "Error":
	default:
		fatalf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tl)
	}
	tracer().Debugf("trace level is %s", level)
}

// configFromFlags collects command line settings into configuration values,
// so that flags and configuration files share one reader.
func configFromFlags(flags map[string]commando.FlagValue) shapediff.Config {
	conf := testconfig.Conf{}
	set := func(key, flag string) {
		fv, ok := flags[flag]
		if !ok {
			return
		}
		s := flagText(fv, flag)
		if s == "" || s == "-" && key != shapediff.KeyVariations {
			return
		}
		conf[key] = s
	}
	set(shapediff.KeyFactor, "factor")
	set(shapediff.KeyShaperA, "shaper-a")
	set(shapediff.KeyShaperB, "shaper-b")
	set(shapediff.KeyOutline, "outline")
	set(shapediff.KeyVariations, "variations")
	set(shapediff.KeyDirection, "direction")
	set(shapediff.KeyScript, "script")
	set(shapediff.KeyLanguage, "lang")
	set(shapediff.KeyFeatures, "features")
	set(shapediff.KeyFitWidest, "fit-widest")
	set(shapediff.KeyOutputDir, "outdir")
	set(shapediff.KeyFormat, "format")
	set(shapediff.KeyText, "file")
	cfg, err := shapediff.ConfigFrom(conf)
	if err != nil {
		fatalf("%v", err)
	}
	return cfg
}

// flagText returns the value of a string, int or bool flag as text.
func flagText(fv commando.FlagValue, name string) string {
	if s, err := fv.GetString(); err == nil {
		return strings.TrimSpace(s)
	}
	if n, err := fv.GetInt(); err == nil {
		return strconv.Itoa(n)
	}
	if b, err := fv.GetBool(); err == nil {
		return strconv.FormatBool(b)
	}
	fatalf("invalid --%s flag", name)
	return ""
}

// inputText returns the text to compare: code points from --codepoints, the
// text argument, or the contents of the text file of cfg.
func inputText(args map[string]commando.ArgValue, flags map[string]commando.FlagValue, cfg shapediff.Config) string {
	if cp := mustFlagString(flags["codepoints"], "codepoints"); cp != "" && cp != "-" {
		runes, err := shape.ParseCodepoints(cp)
		if err != nil {
			fatalf("%v", err)
		}
		return string(runes)
	}
	if text := strings.TrimSpace(args["text"].Value); text != "" && text != "-" {
		return text
	}
	if cfg.TextFile != "" {
		b, err := os.ReadFile(cfg.TextFile)
		if err != nil {
			fatalf("cannot read text: %v", err)
		}
		return string(b)
	}
	fatalf("no text given")
	return ""
}

func mustLoadFont(path string) *fontload.ScalableFont {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("font path is required")
	}
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		fatalf("%v", err)
	}
	return f
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "sd-tools: "+format+"\n", args...)
	os.Exit(1)
}
