/*
mcfgrepl is an interactive command-line sandbox for loading an MCFG rule
file and recognizing or parsing sentences against it. It is intended for
experimenting with a grammar during development, not for production use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/kvantas/mcfg"
	"github.com/kvantas/mcfg/chart"
	"github.com/kvantas/mcfg/syntax"
)

// tracer traces with key 'mcfg.repl'.
func tracer() tracing.Trace {
	return tracing.Select("mcfg.repl")
}

func traceLevel(s string) tracing.TraceLevel {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	grammarFile := flag.String("grammar", "", "Path to a rule-text grammar file")
	start := flag.String("start", "S", "Comma-separated start variable names")
	flag.Parse()

	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to mcfgrepl")

	if *grammarFile == "" {
		pterm.Error.Println("a -grammar file is required")
		os.Exit(2)
	}
	g, err := loadGrammar(*grammarFile, strings.Split(*start, ","))
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	pterm.Info.Printfln("loaded grammar: %d rules, start = %v", len(g.Rules), g.StartVariables)

	p := chart.NewParser(g)
	repl, err := readline.New("mcfg> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	pterm.Info.Println(`enter a sentence to recognize it, or "parse <sentence>" for a tree. Quit with <ctrl>D.`)
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		evalLine(p, line)
	}
}

func loadGrammar(path string, start []string) (*mcfg.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parser, err := syntax.NewParser()
	if err != nil {
		return nil, err
	}
	var rules []*mcfg.Rule
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := parser.ParseRule(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		rules = append(rules, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mcfg.NewGrammar(start, rules)
}

func evalLine(p *chart.Parser, line string) {
	parseMode := strings.HasPrefix(line, "parse ")
	sentence := line
	if parseMode {
		sentence = strings.TrimPrefix(line, "parse ")
	}
	tokens := strings.Fields(sentence)

	if !parseMode {
		if p.Recognize(tokens) {
			pterm.Info.Println("accept")
		} else {
			pterm.Error.Println("reject")
		}
		return
	}
	trees := p.Parse(tokens)
	if len(trees) == 0 {
		pterm.Error.Println("reject")
		return
	}
	for i, t := range trees {
		pterm.Info.Printfln("--- parse %d of %d ---", i+1, len(trees))
		fmt.Print(t.String())
	}
}
