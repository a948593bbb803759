package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/shapediff"
	"github.com/npillmayer/shapediff/glyph"
	"github.com/npillmayer/shapediff/shape"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// Intp is our interpreter object
type Intp struct {
	font  []byte
	cfg   shapediff.Config
	repl  *readline.Instance
	count int // images written so far
}

func runReplCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	cfg := configFromFlags(flags)
	f := mustLoadFont(args["font"].Value)
	repl, err := readline.New("sd > ")
	if err != nil {
		fatalf("%v", err)
	}
	defer repl.Close()
	intp := &Intp{font: f.Binary, cfg: cfg, repl: repl}
	pterm.Info.Printf("Comparing %s and %s on %s\n", cfg.ShaperA, cfg.ShaperB, f.Fontname)
	pterm.Info.Println("Enter text to compare, :help for commands, quit with <ctrl>D")
	intp.REPL()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := intp.command(line[1:])
			if err != nil {
				pterm.Error.Println(err.Error())
			}
			if quit {
				break
			}
			continue
		}
		if err := intp.compare(line); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) compare(text string) error {
	res, err := shapediff.Compare(intp.cfg, intp.font, text)
	if err != nil {
		return err
	}
	intp.count++
	out := intp.cfg.OutputPath(fmt.Sprintf("repl-%03d", intp.count))
	if err := res.Canvas.Save(out); err != nil {
		return err
	}
	pterm.Printf("%-12s %s\n", intp.cfg.ShaperA+":", glyph.Format(res.RunA))
	pterm.Printf("%-12s %s\n", intp.cfg.ShaperB+":", glyph.Format(res.RunB))
	printDiffs(intp.cfg, res.Diff())
	pterm.Info.Printf("wrote %s\n", out)
	return nil
}

// command executes ":<op> [arg]" and reports whether to quit.
func (intp *Intp) command(line string) (quit bool, err error) {
	op, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch op {
	case "quit", "q":
		return true, nil
	case "help", "h":
		help()
	case "vars":
		intp.cfg.Variations, err = glyph.ParseVariations(arg)
	case "dir":
		intp.cfg.Params.Direction, err = shape.ParseDirection(arg)
	case "script":
		intp.cfg.Params.Script, err = shape.ParseScript(arg)
	case "lang":
		intp.cfg.Params.Language, err = shape.ParseLanguage(arg)
	case "features":
		intp.cfg.Params.Features, err = shape.ParseFeatures(arg)
	case "cp":
		var runes []rune
		if runes, err = shape.ParseCodepoints(arg); err == nil {
			err = intp.compare(string(runes))
		}
	case "show":
		pterm.Printf("shapers %s / %s, outline %s, variations %v, params %+v\n",
			intp.cfg.ShaperA, intp.cfg.ShaperB, intp.cfg.Outline, intp.cfg.Variations, intp.cfg.Params)
	default:
		err = fmt.Errorf("unknown command :%s", op)
	}
	return false, err
}

func help() {
	pterm.Println(`Commands:
  <text>            compare and render a line of text
  :cp U+0627,...    compare code points
  :vars TAG=v,...   set variations ('-' for none)
  :dir auto|ltr|rtl set direction
  :script Arab      set script ('auto' to guess)
  :lang ar          set language
  :features -liga   set features
  :show             print settings
  :quit             leave`)
}
