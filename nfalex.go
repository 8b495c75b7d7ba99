package nfalex

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. For tokens produced from a lexer
// description, the token type is the kind of the matching rule. Kinds follow
// declaration order, which makes them a priority as well: lower kinds win ties.
type TokType int

// TokTypeStringer is a type to be provided by a lexer description to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an identifier:
//
//    TokType = 5           // kind of the rule which matched
//    Lexeme  = "iffy"      // lexeme how it appeared in the input stream
//    Value   = nil         // not set by the interpreter
//    Span    = 67…71       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input run. A span denotes
// a start position and the position just behind the end.
// For the interpreter, positions are counted in characters (runes), not bytes.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
