package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/automaton"
	"github.com/npillmayer/nfalex/diagnostics"
	"github.com/npillmayer/nfalex/scanner"
	"github.com/npillmayer/nfalex/scanner/interp"
	"github.com/npillmayer/nfalex/scanner/lexmach"
)

// main() loads a lexer description and tokenizes either an input file or,
// interactively, lines typed by the user. It is intended as a sandbox for
// developing lexer descriptions.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	desc := flag.String("automaton", "", "Lexer description (YAML)")
	rules := flag.String("rules", "", "Rules for the lexmachine backend (YAML)")
	backendName := flag.String("backend", "nfa", "Scanner backend [nfa|lexmachine]")
	ignoreCase := flag.Bool("ignorecase", false, "Match case insensitive")
	dump := flag.Bool("dump", false, "Show the lexer description")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to NFALex")   // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up the scanner backend
	var sh *shell
	var err error
	switch *backendName {
	case "nfa":
		sh, err = nfaShell(*desc, *ignoreCase)
	case "lexmachine":
		sh, err = lexmachineShell(*rules)
	default:
		err = fmt.Errorf("unknown backend %q", *backendName)
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	setTraceLevel(*tlevel) // now set the user supplied level
	if *dump {
		sh.dump()
	}
	//
	// tokenize a file or start the REPL
	if flag.NArg() > 0 {
		input, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
		bag := sh.tokenize(flag.Arg(0), string(input))
		if bag.HasErrors() {
			os.Exit(2)
		}
		return
	}
	repl, err := readline.New("nfalex> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	sh.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	sh.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  "  Warning",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range []string{"nfalex.cli", "nfalex.automaton", "nfalex.interp",
		"nfalex.scanner", "nfalex.diagnostics"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// --- Backends --------------------------------------------------------------

// backend is what the shell needs from a scanner.
type backend interface {
	Tokenize(input string, bag *diagnostics.Bag) []nfalex.Token
}

type nfaBackend struct {
	data       *automaton.TokenizerData
	ignoreCase bool
}

func (b nfaBackend) Tokenize(input string, bag *diagnostics.Bag) []nfalex.Token {
	opts := append(bag.Options(), interp.IgnoreCase(b.ignoreCase))
	tokens, _ := interp.Tokenize(b.data, input, opts...) // errors go to bag
	return tokens
}

type lexmachineBackend struct {
	adapter *lexmach.LMAdapter
}

func (b lexmachineBackend) Tokenize(input string, bag *diagnostics.Bag) []nfalex.Token {
	sc, err := b.adapter.Scanner(input)
	if err != nil {
		bag.AddError(err)
		return nil
	}
	sc.SetErrorHandler(bag.ErrorHandler())
	var tokens []nfalex.Token
	for {
		token := sc.NextToken()
		tokens = append(tokens, token)
		if token.TokType() == scanner.EOF {
			return tokens
		}
	}
}

// shell is our interpreter object.
type shell struct {
	backend backend
	data    *automaton.TokenizerData // nil for lexmachine
	kinds   nfalex.TokTypeStringer
	repl    *readline.Instance
}

func nfaShell(path string, ignoreCase bool) (*shell, error) {
	if path == "" {
		return nil, fmt.Errorf("no lexer description given, please use flag -automaton")
	}
	data, err := automaton.LoadFile(path)
	if err != nil {
		return nil, err
	}
	pterm.Info.Printf("Lexer %s, fingerprint %s\n", data.Name(), data.Fingerprint())
	return &shell{
		backend: nfaBackend{data: data, ignoreCase: ignoreCase},
		data:    data,
		kinds:   data.KindString,
	}, nil
}

func lexmachineShell(path string) (*shell, error) {
	if path == "" {
		return nil, fmt.Errorf("no lexmachine rules given, please use flag -rules")
	}
	rules, err := lexmach.LoadRulesFile(path)
	if err != nil {
		return nil, err
	}
	adapter, err := lexmach.NewLMAdapter(rules)
	if err != nil {
		return nil, err
	}
	return &shell{
		backend: lexmachineBackend{adapter: adapter},
		kinds: func(kind nfalex.TokType) string {
			return fmt.Sprintf("<%d>", kind)
		},
	}, nil
}

// REPL starts interactive mode.
func (sh *shell) REPL() {
	lineno := 0
	for {
		line, err := sh.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineno++
		if strings.HasPrefix(line, ":") {
			if quit := sh.command(strings.TrimSpace(line)); quit {
				break
			}
			continue
		}
		sh.tokenize(fmt.Sprintf("line %d", lineno), line)
	}
	println("Good bye!")
}

func (sh *shell) command(cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":dump":
		sh.dump()
	default:
		pterm.Error.Printf("unknown command %s\n", cmd)
	}
	return false
}

// tokenize tokenizes an input and prints the tokens and diagnostics.
func (sh *shell) tokenize(source string, input string) *diagnostics.Bag {
	bag := diagnostics.NewBag(source)
	tokens := sh.backend.Tokenize(input, bag)
	bag.AddTokens(tokens)
	sh.printTokens(bag.Tokens())
	for _, d := range bag.Diagnostics() {
		switch d.Severity {
		case diagnostics.Error:
			pterm.Error.Println(d.String())
		case diagnostics.Warning:
			pterm.Warning.Println(d.String())
		default:
			pterm.Info.Println(d.String())
		}
	}
	pterm.Info.Println(bag.Summary())
	return bag
}

func (sh *shell) printTokens(tokens []nfalex.Token) {
	if len(tokens) == 0 {
		return
	}
	data := pterm.TableData{{"Kind", "", "Image", "Span"}}
	for _, t := range tokens {
		data = append(data, []string{
			fmt.Sprintf("%d", t.TokType()),
			sh.kinds(t.TokType()),
			fmt.Sprintf("%q", t.Lexeme()),
			t.Span().String(),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// dump displays the lexer description as a tree on the terminal.
func (sh *shell) dump() {
	if sh.data == nil {
		pterm.Info.Println("lexmachine backend has no lexer description to show")
		return
	}
	sh.data.Trace() // only visible in debug mode
	root := pterm.NewTreeFromLeveledList(leveledDescription(sh.data))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledDescription(td *automaton.TokenizerData) pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: td.Name()}}
	item := func(level int, format string, args ...interface{}) {
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: fmt.Sprintf(format, args...)})
	}
	for i := 0; i < td.LexStateCount(); i++ {
		ls := automaton.LexState(i)
		info, _ := td.LexStateInfo(ls)
		item(1, "lexical state %s", info.Name)
		if info.Initial != automaton.NoState {
			item(2, "initial NFA state %d", info.Initial)
		}
		if info.Wildcard != automaton.NoKind {
			item(2, "wildcard %s", td.KindString(info.Wildcard))
		}
		td.EachLiteral(func(lsl automaton.LexState, lit *automaton.Literal) {
			if lsl == ls {
				item(2, "literal %q ⇒ %d", lit.Image, lit.Kind)
			}
		})
	}
	item(1, "NFA")
	for id := 0; id < td.StateCount(); id++ {
		item(2, "%s", td.State(automaton.StateID(id)))
	}
	item(1, "kinds")
	for k := 0; k < td.KindCount(); k++ {
		m, _ := td.Match(nfalex.TokType(k))
		if m.Type == automaton.TokenMatch && !m.HasAction() && m.NewLexState == automaton.NoLexState {
			continue // plain tokens are not worth listing
		}
		item(2, "%d %s", k, m.Type)
		if m.NewLexState != automaton.NoLexState {
			item(3, "switch to %s", td.LexStateName(m.NewLexState))
		}
		if m.HasAction() {
			item(3, "action %q", m.Action)
		}
	}
	return ll
}
