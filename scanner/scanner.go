package scanner

import (
	"fmt"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/automaton"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nfalex.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("nfalex.scanner")
}

// EOF is the token type of the end-of-input marker. It has the same value as
// text/scanner.EOF and never collides with a kind, as kinds are non-negative.
const EOF nfalex.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() nfalex.Token
	SetErrorHandler(func(error))
}

// LogError is the default error reporting function for scanners.
func LogError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// LogWarning is the default warning reporting function for scanners.
func LogWarning(e error) {
	tracer().Infof("scanner warning: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the NFA interpreter
// as well as the LexMachine scanner.
type DefaultToken struct {
	kind   nfalex.TokType
	lexeme string
	Val    interface{}
	span   nfalex.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ nfalex.TokType, lexeme string, span nfalex.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() nfalex.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() nfalex.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return fmt.Sprintf("<EOF %s>", t.span)
	}
	return fmt.Sprintf("<%d %q %s>", t.kind, t.lexeme, t.span)
}

// --- Errors ----------------------------------------------------------------

// LexicalError is reported if neither a string literal, nor an NFA rule, nor a
// wildcard matches at an input position. It halts the scanner.
type LexicalError struct {
	Pos       uint64             // position of the offending character
	Char      rune               // offending character
	LexState  automaton.LexState // lexical state the scanner was in
	StateName string             // name of the lexical state, for messages
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at position %d: unexpected character %q in lexical state %s",
		e.Pos, e.Char, e.StateName)
}

// UnsupportedActionWarning is reported if a matched rule carries a lexical
// action. Actions are never executed; the match is processed as if the action
// were absent.
type UnsupportedActionWarning struct {
	Kind   nfalex.TokType
	Action string
	Span   nfalex.Span
}

func (w *UnsupportedActionWarning) Error() string {
	return fmt.Sprintf("kind %d at %s carries a lexical action, which is not supported in interpreted mode",
		w.Kind, w.Span)
}
