package interp

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/automaton"
	"github.com/npillmayer/nfalex/scanner"
	"github.com/npillmayer/nfalex/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// Lexer is an NFA interpreter for a single input string.
// Create one with NewLexer.
type Lexer struct {
	data       *automaton.TokenizerData
	text       string
	input      []rune
	offsets    []int // byte offset of every rune of the input, plus len(text)
	ignoreCase bool
	curPos     int                // index into input
	lexState   automaton.LexState // current lexical state
	cur, next  *sparse.StateSet   // active NFA states, double-buffered
	err        error              // sticky lexical error
	Error      func(error)        // error handler
	Warn       func(error)        // warning handler
}

var _ scanner.Tokenizer = (*Lexer)(nil)

// Option configures a lexer.
type Option func(l *Lexer)

// IgnoreCase sets or clears case insensitive matching. Input characters are
// folded to lower case before they are tested; the lexer description is
// expected to contain lower case literals and character classes for
// case insensitive rules.
//
// The flag is fixed for the lifetime of a lexer.
func IgnoreCase(b bool) Option {
	return func(l *Lexer) {
		l.ignoreCase = b
	}
}

// ErrorHandler sets the handler for lexical errors.
func ErrorHandler(h func(error)) Option {
	return func(l *Lexer) {
		l.SetErrorHandler(h)
	}
}

// WarningHandler sets the handler for warnings about unsupported lexical actions.
func WarningHandler(h func(error)) Option {
	return func(l *Lexer) {
		if h == nil {
			l.Warn = scanner.LogWarning
			return
		}
		l.Warn = h
	}
}

// NewLexer creates a lexer for an input string. Positions reported by the lexer
// are counted in characters (runes), not bytes.
func NewLexer(data *automaton.TokenizerData, input string, opts ...Option) *Lexer {
	l := &Lexer{
		data:  data,
		text:  input,
		input: make([]rune, 0, utf8.RuneCountInString(input)),
		Error: scanner.LogError,
		Warn:  scanner.LogWarning,
	}
	l.offsets = make([]int, 0, cap(l.input)+1)
	for i, r := range input {
		l.input = append(l.input, r)
		l.offsets = append(l.offsets, i)
	}
	l.offsets = append(l.offsets, len(input))
	l.cur = sparse.NewStateSet(data.StateCount())
	l.next = sparse.NewStateSet(data.StateCount())
	for _, opt := range opts {
		opt(l)
	}
	l.Reset()
	return l
}

// SetErrorHandler sets an error handler for the lexer.
func (l *Lexer) SetErrorHandler(h func(error)) {
	if h == nil {
		l.Error = scanner.LogError
		return
	}
	l.Error = h
}

// Reset rewinds the lexer to the start of the input, in the default lexical state.
func (l *Lexer) Reset() {
	l.curPos = 0
	l.lexState = l.data.DefaultLexState()
	l.err = nil
	l.cur.Clear()
	l.next.Clear()
}

// Pos returns the current input position.
func (l *Lexer) Pos() int {
	return l.curPos
}

// LexState returns the current lexical state.
func (l *Lexer) LexState() automaton.LexState {
	return l.lexState
}

// Match is the result of a lexer step.
type Match struct {
	Kind     nfalex.TokType      // kind of the match, or scanner.EOF
	Type     automaton.MatchType // match type of the kind
	Span     nfalex.Span         // input characters covered
	Image    string              // matched input
	LexState automaton.LexState  // lexical state the match has been found in
	Action   string              // lexical action of the kind, not executed
}

// IsEOF is true for the end-of-input match.
func (m Match) IsEOF() bool {
	return m.Kind == scanner.EOF
}

func (m Match) String() string {
	if m.IsEOF() {
		return fmt.Sprintf("<EOF %s>", m.Span)
	}
	return fmt.Sprintf("<%d %s %q %s>", m.Kind, m.Type, m.Image, m.Span)
}

// Step finds the next match, which may be of any match type. At the end of
// the input, Step returns an EOF match, as often as it is called.
//
// If no rule matches, Step reports a *scanner.LexicalError to the error
// handler and returns it. Once an error occured, every subsequent call of
// Step returns the same error.
func (l *Lexer) Step() (Match, error) {
	if l.err != nil {
		return Match{Kind: scanner.EOF}, l.err
	}
	if l.curPos >= len(l.input) {
		n := uint64(len(l.input))
		return Match{Kind: scanner.EOF, Span: nfalex.Span{n, n}, LexState: l.lexState}, nil
	}
	td := l.data
	ls := l.lexState
	beg := l.curPos
	matchedPos, matchedKind := beg, automaton.NoKind
	curPos := beg
	nfaStart := td.InitialState(ls)
	if lit := l.matchLiteral(curPos); lit != nil {
		matchedKind = lit.Kind
		matchedPos = curPos + lit.Len() - 1
		nfaStart = td.ResumeState(lit.Kind)
		curPos += lit.Len()
	}
	if nfaStart != automaton.NoState && curPos < len(l.input) {
		if pos, kind := l.simulate(nfaStart, curPos); kind != automaton.NoKind {
			matchedPos, matchedKind = pos, kind
		}
	}
	if wildcard := td.WildcardKind(ls); matchedPos == beg && matchedKind > wildcard {
		matchedKind = wildcard
	}
	if matchedKind == automaton.NoKind {
		return Match{Kind: scanner.EOF}, l.fail(beg)
	}
	info, _ := td.Match(matchedKind)
	m := Match{
		Kind:     matchedKind,
		Type:     info.Type,
		Span:     nfalex.Span{uint64(beg), uint64(matchedPos + 1)},
		Image:    l.text[l.offsets[beg]:l.offsets[matchedPos+1]],
		LexState: ls,
		Action:   info.Action,
	}
	if info.HasAction() {
		l.Warn(&scanner.UnsupportedActionWarning{Kind: m.Kind, Action: m.Action, Span: m.Span})
	}
	if info.NewLexState != automaton.NoLexState {
		l.lexState = info.NewLexState
	}
	l.curPos = matchedPos + 1
	return m, nil
}

// matchLiteral returns the first string literal matching completely at pos,
// or nil.
func (l *Lexer) matchLiteral(pos int) *automaton.Literal {
	lits := l.data.Literals(l.lexState, l.charAt(pos))
	for i := range lits {
		runes := lits[i].Runes()
		if pos+len(runes) > len(l.input) {
			continue
		}
		k := 1
		for k < len(runes) && l.charAt(pos+k) == runes[k] {
			k++
		}
		if k == len(runes) {
			return &lits[i]
		}
	}
	return nil
}

// simulate runs the NFA from state start, beginning with the character at pos.
// It returns the last position where an accepting state has been active,
// together with the smallest kind accepted there, or NoKind if no state
// accepted at all.
func (l *Lexer) simulate(start automaton.StateID, pos int) (int, nfalex.TokType) {
	matchedPos, matchedKind := pos, automaton.NoKind
	l.cur.Clear()
	l.cur.Add(int(start))
	for _, c := range l.data.State(start).Composite {
		l.cur.Add(int(c))
	}
	for {
		c := l.charAt(pos)
		kind := automaton.NoKind
		for _, id := range l.cur.Values() {
			s := l.data.State(automaton.StateID(id))
			if !s.Chars.Contains(c) {
				continue
			}
			if s.Kind < kind {
				kind = s.Kind
			}
			for _, n := range s.Next {
				l.next.Add(int(n))
			}
		}
		l.cur, l.next = l.next, l.cur
		l.next.Clear()
		if kind != automaton.NoKind {
			matchedPos, matchedKind = pos, kind
		}
		pos++
		if l.cur.IsEmpty() || pos >= len(l.input) {
			break
		}
	}
	l.cur.Clear()
	return matchedPos, matchedKind
}

func (l *Lexer) charAt(pos int) rune {
	if l.ignoreCase {
		return unicode.ToLower(l.input[pos])
	}
	return l.input[pos]
}

// fail creates a lexical error at position pos and halts the lexer.
func (l *Lexer) fail(pos int) error {
	l.err = &scanner.LexicalError{
		Pos:       uint64(pos),
		Char:      l.input[pos],
		LexState:  l.lexState,
		StateName: l.data.LexStateName(l.lexState),
	}
	l.Error(l.err)
	if gconf.GetBool("panic-on-lexical-error") {
		panic(`Lexer is stuck.

Configuration flag panic-on-lexical-error is set to true. It is aimed at helping
to debug a lexer description. If you did not expect this to panic, please unset
panic-on-lexical-error to its default (false).

` + l.err.Error())
	}
	return l.err
}
