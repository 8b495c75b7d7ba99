package automaton

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// Dump writes a human readable listing of a lexer description to w.
func (td *TokenizerData) Dump(w io.Writer) {
	fmt.Fprintf(w, "lexer %s, default lexical state %s\n", td.name, td.LexStateName(td.defaultLexState))
	for i, info := range td.lexStates {
		fmt.Fprintf(w, "  lexstate %d %-12s initial=%s wildcard=%s\n",
			i, info.Name, stateString(info.Initial), td.KindString(info.Wildcard))
		td.EachLiteral(func(ls LexState, lit *Literal) {
			if int(ls) == i {
				fmt.Fprintf(w, "    literal %q ⇒ %d\n", lit.Image, lit.Kind)
			}
		})
	}
	for i := range td.nfa {
		s := &td.nfa[i]
		fmt.Fprintf(w, "  %s", s)
		if len(s.Composite) > 0 {
			fmt.Fprintf(w, " +%v", s.Composite)
		}
		fmt.Fprintln(w)
	}
	for _, m := range td.matches {
		fmt.Fprintf(w, "  kind %3d %-13s", m.Kind, m.Type)
		if m.NewLexState != NoLexState {
			fmt.Fprintf(w, " → %s", td.LexStateName(m.NewLexState))
		}
		if s := td.ResumeState(m.Kind); s != NoState {
			fmt.Fprintf(w, " resume %d", s)
		}
		if m.HasAction() {
			fmt.Fprintf(w, " {action}")
		}
		fmt.Fprintln(w)
	}
}

// Trace dumps a lexer description to the tracer, if the trace level is Debug.
func (td *TokenizerData) Trace() {
	if tracer().GetTraceLevel() < tracing.LevelDebug {
		return
	}
	var b strings.Builder
	td.Dump(&b)
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		tracer().Debugf(line)
	}
}

func stateString(s StateID) string {
	if s == NoState {
		return "-"
	}
	return fmt.Sprintf("%d", s)
}
