package automaton

import (
	"fmt"
	"math"
	"unicode"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/sparse"
)

// NoKind is the kind of "no match". It is numerically greater than every real
// kind, so that "lowest kind wins" comparisons prefer real matches.
const NoKind nfalex.TokType = math.MaxInt32

// StateID identifies an NFA state. IDs are dense, starting at 0.
type StateID int32

// NoState denotes the absence of an NFA state, e.g. for a lexical state without
// any NFA rules.
const NoState StateID = -1

// LexState identifies a lexical state. IDs are dense, starting at 0.
type LexState int

// NoLexState is used for matches which do not switch lexical states.
const NoLexState LexState = -1

// LexStateInfo describes a lexical state.
type LexStateInfo struct {
	Name     string
	Initial  StateID        // NFA state to start from, or NoState
	Wildcard nfalex.TokType // kind to use if nothing else matches, or NoKind
}

// NfaState is a node of the lexer NFA. The node carries the character test: if
// the state is active and Chars contains the next input character, the state
// contributes Kind (if accepting) and activates all of Next.
type NfaState struct {
	ID        StateID
	Chars     CharClass
	Kind      nfalex.TokType // NoKind if not accepting
	Next      []StateID      // sorted, unique
	Composite []StateID      // states activated together with this one when used as a start state
}

// IsAccepting is true if a match of this state recognizes a token kind.
func (s *NfaState) IsAccepting() bool {
	return s.Kind != NoKind
}

func (s *NfaState) String() string {
	if s.IsAccepting() {
		return fmt.Sprintf("<nfa %d %s ⇒ %d → %v>", s.ID, s.Chars, s.Kind, s.Next)
	}
	return fmt.Sprintf("<nfa %d %s → %v>", s.ID, s.Chars, s.Next)
}

// Literal is a string literal, recognized on the literal fast path.
type Literal struct {
	Image string
	Kind  nfalex.TokType
	runes []rune
}

// Runes returns the characters of the literal. Clients must not modify the slice.
func (lit *Literal) Runes() []rune {
	return lit.runes
}

// Len returns the length of the literal in characters.
func (lit *Literal) Len() int {
	return len(lit.runes)
}

// MatchType is the type of a lexical match.
type MatchType int8

// Match types for lexical rules.
const (
	TokenMatch        MatchType = iota // match produces a token
	SkipMatch                          // match is discarded
	MoreMatch                          // match continues with the next match
	SpecialTokenMatch                  // match produces a special token (e.g., a comment)
)

var matchTypeNames = [...]string{"TOKEN", "SKIP", "MORE", "SPECIAL_TOKEN"}

func (mt MatchType) String() string {
	if mt < 0 || int(mt) >= len(matchTypeNames) {
		return fmt.Sprintf("MatchType(%d)", int(mt))
	}
	return matchTypeNames[mt]
}

// ParseMatchType returns the match type for a name as printed by
// MatchType.String().
func ParseMatchType(s string) (MatchType, bool) {
	for i, name := range matchTypeNames {
		if name == s {
			return MatchType(i), true
		}
	}
	return TokenMatch, false
}

// MatchInfo holds what to do when a kind has been matched.
type MatchInfo struct {
	Kind        nfalex.TokType
	Type        MatchType
	Action      string   // lexical action code; never executed by the interpreter
	NewLexState LexState // lexical state to switch to, or NoLexState
	Image       string   // image of a string literal kind, if any
}

// HasAction is true if a lexical action is attached to this match.
func (m MatchInfo) HasAction() bool {
	return m.Action != ""
}

// --- Tokenizer data --------------------------------------------------------

// TokenizerData is the complete, immutable description of a lexer.
// Create one with a Builder or by loading a description with Load.
type TokenizerData struct {
	name            string
	decls           string
	defaultLexState LexState
	lexStates       []LexStateInfo
	nfa             []NfaState
	litIndex        *sparse.IntMatrix // (lex state, first char) → index into litGroups
	litGroups       [][]Literal
	resume          []StateID   // resume NFA state per kind
	matches         []MatchInfo // match info per kind
}

// Name returns the name of the lexer, usually the name of the parser it serves.
func (td *TokenizerData) Name() string {
	return td.name
}

// Decls returns the token manager declarations of the grammar. They are
// opaque to the interpreter.
func (td *TokenizerData) Decls() string {
	return td.decls
}

// DefaultLexState returns the lexical state a scanner starts in.
func (td *TokenizerData) DefaultLexState() LexState {
	return td.defaultLexState
}

// LexStateCount returns the number of lexical states.
func (td *TokenizerData) LexStateCount() int {
	return len(td.lexStates)
}

// LexStateInfo returns the description of lexical state ls.
func (td *TokenizerData) LexStateInfo(ls LexState) (LexStateInfo, bool) {
	if ls < 0 || int(ls) >= len(td.lexStates) {
		return LexStateInfo{Initial: NoState, Wildcard: NoKind}, false
	}
	return td.lexStates[ls], true
}

// LexStateName returns the name of lexical state ls, for debugging purposes.
func (td *TokenizerData) LexStateName(ls LexState) string {
	if info, ok := td.LexStateInfo(ls); ok {
		return info.Name
	}
	return fmt.Sprintf("<lex state %d>", ls)
}

// LexStateByName finds a lexical state by name.
func (td *TokenizerData) LexStateByName(name string) (LexState, bool) {
	for i, info := range td.lexStates {
		if info.Name == name {
			return LexState(i), true
		}
	}
	return NoLexState, false
}

// InitialState returns the NFA state to start from in lexical state ls,
// or NoState.
func (td *TokenizerData) InitialState(ls LexState) StateID {
	info, _ := td.LexStateInfo(ls)
	return info.Initial
}

// WildcardKind returns the kind to use in lexical state ls if nothing else
// matches, or NoKind.
func (td *TokenizerData) WildcardKind(ls LexState) nfalex.TokType {
	info, _ := td.LexStateInfo(ls)
	return info.Wildcard
}

// StateCount returns the number of NFA states.
func (td *TokenizerData) StateCount() int {
	return len(td.nfa)
}

// State returns NFA state id, or nil for an invalid id.
// Clients must treat the state as read-only.
func (td *TokenizerData) State(id StateID) *NfaState {
	if id < 0 || int(id) >= len(td.nfa) {
		return nil
	}
	return &td.nfa[id]
}

// Literals returns the string literals for lexical state ls starting with
// character c, in the order they have to be tried. Clients must not modify
// the returned slice.
func (td *TokenizerData) Literals(ls LexState, c rune) []Literal {
	if c < 0 || c > unicode.MaxRune {
		return nil
	}
	inx := td.litIndex.Value(int(ls), int(c))
	if inx < 0 {
		return nil
	}
	return td.litGroups[inx]
}

// EachLiteral calls f for every string literal, ordered by lexical state and
// first character, and in match order within a group.
func (td *TokenizerData) EachLiteral(f func(LexState, *Literal)) {
	td.litIndex.Each(func(ls, c int, inx int32) {
		for i := range td.litGroups[inx] {
			f(LexState(ls), &td.litGroups[inx][i])
		}
	})
}

// ResumeState returns the NFA state to continue with after the string literal
// of a kind has been matched, or NoState.
func (td *TokenizerData) ResumeState(kind nfalex.TokType) StateID {
	if kind < 0 || int(kind) >= len(td.resume) {
		return NoState
	}
	return td.resume[kind]
}

// KindCount returns the number of kinds. Kinds are dense from 0 to KindCount()-1.
func (td *TokenizerData) KindCount() int {
	return len(td.matches)
}

// Match returns the match information for a kind.
func (td *TokenizerData) Match(kind nfalex.TokType) (MatchInfo, bool) {
	if kind < 0 || int(kind) >= len(td.matches) {
		return MatchInfo{Kind: kind, NewLexState: NoLexState}, false
	}
	return td.matches[kind], true
}

// KindString is a nfalex.TokTypeStringer for kinds of this lexer.
func (td *TokenizerData) KindString(kind nfalex.TokType) string {
	if kind == NoKind {
		return "<no match>"
	}
	if m, ok := td.Match(kind); ok && m.Image != "" {
		return fmt.Sprintf("%q", m.Image)
	}
	return fmt.Sprintf("<%d>", kind)
}
