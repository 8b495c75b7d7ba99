package automaton

import (
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/sparse"
)

// Builder is a builder type for lexer descriptions. It stands in for the
// grammar compiler and is used by the description loader and by tests.
//
// Builder methods never fail; all consistency checks are deferred until
// Data() is called.
type Builder struct {
	name      string
	decls     string
	deflt     LexState
	lexStates []*LexStateBuilder
	states    map[StateID]*StateBuilder
	kinds     map[nfalex.TokType]*MatchBuilder
	literals  []literalDecl
	resume    map[nfalex.TokType]StateID
}

type literalDecl struct {
	lexState LexState
	image    string
	kind     nfalex.TokType
}

// NewBuilder creates a builder for a lexer description.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[StateID]*StateBuilder),
		kinds:  make(map[nfalex.TokType]*MatchBuilder),
		resume: make(map[nfalex.TokType]StateID),
	}
}

// Decls sets the token manager declarations.
func (b *Builder) Decls(decls string) *Builder {
	b.decls = decls
	return b
}

// Default sets the default lexical state. If not set, the lexical state
// created first is the default.
func (b *Builder) Default(ls LexState) *Builder {
	b.deflt = ls
	return b
}

// LexState returns the lexical state with the given name, creating it if
// necessary. New lexical states have neither an initial NFA state nor a
// wildcard kind.
func (b *Builder) LexState(name string) *LexStateBuilder {
	for _, ls := range b.lexStates {
		if ls.name == name {
			return ls
		}
	}
	ls := &LexStateBuilder{
		id:       LexState(len(b.lexStates)),
		name:     name,
		initial:  NoState,
		wildcard: NoKind,
	}
	b.lexStates = append(b.lexStates, ls)
	return ls
}

// LexStateBuilder configures a lexical state.
type LexStateBuilder struct {
	id       LexState
	name     string
	initial  StateID
	wildcard nfalex.TokType
}

// ID returns the lexical state.
func (lsb *LexStateBuilder) ID() LexState {
	return lsb.id
}

// Initial sets the NFA state to start from.
func (lsb *LexStateBuilder) Initial(s StateID) *LexStateBuilder {
	lsb.initial = s
	return lsb
}

// Wildcard sets the kind to use if nothing else matches.
func (lsb *LexStateBuilder) Wildcard(kind nfalex.TokType) *LexStateBuilder {
	lsb.wildcard = kind
	return lsb
}

// State returns the NFA state with the given ID, creating it if necessary.
// New states accept no characters and are not accepting.
func (b *Builder) State(id StateID) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		id:        id,
		kind:      NoKind,
		next:      treeset.NewWithIntComparator(),
		composite: treeset.NewWithIntComparator(),
	}
	b.states[id] = sb
	return sb
}

// StateBuilder configures an NFA state.
type StateBuilder struct {
	id        StateID
	chars     CharClass
	kind      nfalex.TokType
	next      *treeset.Set
	composite *treeset.Set
}

// Chars adds characters to the character class of the state.
func (sb *StateBuilder) Chars(cc CharClass) *StateBuilder {
	sb.chars = sb.chars.Union(cc)
	return sb
}

// Accept makes the state an accepting state for a kind.
func (sb *StateBuilder) Accept(kind nfalex.TokType) *StateBuilder {
	sb.kind = kind
	return sb
}

// Next adds successor states.
func (sb *StateBuilder) Next(ids ...StateID) *StateBuilder {
	for _, id := range ids {
		sb.next.Add(int(id))
	}
	return sb
}

// Composite adds states to be activated together with this state, when this
// state is used as a start state.
func (sb *StateBuilder) Composite(ids ...StateID) *StateBuilder {
	for _, id := range ids {
		sb.composite.Add(int(id))
	}
	return sb
}

// Kind declares the match information for a kind. Declaring a kind twice
// returns the builder for the first declaration, with the match type replaced.
func (b *Builder) Kind(kind nfalex.TokType, mt MatchType) *MatchBuilder {
	mb, ok := b.kinds[kind]
	if !ok {
		mb = &MatchBuilder{info: MatchInfo{Kind: kind, NewLexState: NoLexState}}
		b.kinds[kind] = mb
	}
	mb.info.Type = mt
	return mb
}

// MatchBuilder configures the match information of a kind.
type MatchBuilder struct {
	info MatchInfo
}

// Action attaches a lexical action.
func (mb *MatchBuilder) Action(code string) *MatchBuilder {
	mb.info.Action = code
	return mb
}

// SwitchTo sets the lexical state to switch to after a match.
func (mb *MatchBuilder) SwitchTo(ls LexState) *MatchBuilder {
	mb.info.NewLexState = ls
	return mb
}

// Image sets the string literal image of the kind.
func (mb *MatchBuilder) Image(image string) *MatchBuilder {
	mb.info.Image = image
	return mb
}

// Literal appends a string literal for lexical state ls. Literals starting with
// the same character are tried in the order they have been added.
func (b *Builder) Literal(ls LexState, image string, kind nfalex.TokType) *Builder {
	b.literals = append(b.literals, literalDecl{lexState: ls, image: image, kind: kind})
	return b
}

// Resume sets the NFA state to continue with after the string literal of kind
// has been matched.
func (b *Builder) Resume(kind nfalex.TokType, s StateID) *Builder {
	b.resume[kind] = s
	return b
}

// --- Building --------------------------------------------------------------

// Data creates the lexer description. It checks the invariants of
// TokenizerData and returns an error if one of them is violated.
func (b *Builder) Data() (*TokenizerData, error) {
	if len(b.lexStates) == 0 {
		return nil, errors.Errorf("lexer %q: no lexical states", b.name)
	}
	td := &TokenizerData{
		name:            b.name,
		decls:           b.decls,
		defaultLexState: b.deflt,
	}
	if !b.isLexState(td.defaultLexState) {
		return nil, errors.Errorf("lexer %q: default lexical state %d does not exist", b.name, b.deflt)
	}
	var err error
	if td.nfa, err = b.buildStates(); err != nil {
		return nil, err
	}
	maxkind, err := b.maxKind()
	if err != nil {
		return nil, err
	}
	td.matches = b.buildMatches(maxkind)
	td.lexStates = make([]LexStateInfo, len(b.lexStates))
	for i, lsb := range b.lexStates {
		td.lexStates[i] = LexStateInfo{Name: lsb.name, Initial: lsb.initial, Wildcard: lsb.wildcard}
	}
	td.resume = make([]StateID, len(td.matches))
	for i := range td.resume {
		td.resume[i] = NoState
	}
	for kind, s := range b.resume {
		if kind < 0 || int(kind) >= len(td.resume) {
			return nil, errors.Errorf("lexer %q: resume state for invalid kind %d", b.name, kind)
		}
		td.resume[kind] = s
	}
	if err = b.buildLiterals(td); err != nil {
		return nil, err
	}
	if err = validate(td); err != nil {
		return nil, errors.Wrapf(err, "lexer %q", b.name)
	}
	tracer().Debugf("lexer %q: %d lexical states, %d NFA states, %d kinds, %d literals",
		td.name, len(td.lexStates), len(td.nfa), len(td.matches), len(b.literals))
	return td, nil
}

func (b *Builder) isLexState(ls LexState) bool {
	return ls >= 0 && int(ls) < len(b.lexStates)
}

// buildStates creates the dense array of NFA states.
func (b *Builder) buildStates() ([]NfaState, error) {
	ids := maps.Keys(b.states)
	slices.Sort(ids)
	nfa := make([]NfaState, len(ids))
	for i, id := range ids {
		if id != StateID(i) {
			return nil, errors.Errorf("lexer %q: NFA state %d missing, state IDs have to be dense", b.name, i)
		}
		sb := b.states[id]
		nfa[i] = NfaState{
			ID:        id,
			Chars:     sb.chars,
			Kind:      sb.kind,
			Next:      stateIDs(sb.next),
			Composite: stateIDs(sb.composite),
		}
	}
	return nfa, nil
}

func stateIDs(set *treeset.Set) []StateID {
	ids := make([]StateID, 0, set.Size())
	for _, v := range set.Values() {
		ids = append(ids, StateID(v.(int)))
	}
	return ids
}

// maxKind finds the largest kind declared or referenced anywhere.
func (b *Builder) maxKind() (nfalex.TokType, error) {
	maxkind := nfalex.TokType(-1)
	check := func(kind nfalex.TokType, where string) error {
		if kind == NoKind {
			return nil
		}
		if kind < 0 {
			return errors.Errorf("lexer %q: negative kind %d in %s", b.name, kind, where)
		}
		if kind > maxkind {
			maxkind = kind
		}
		return nil
	}
	for kind := range b.kinds {
		if err := check(kind, "match declaration"); err != nil {
			return maxkind, err
		}
	}
	for _, sb := range b.states {
		if err := check(sb.kind, "NFA state"); err != nil {
			return maxkind, err
		}
	}
	for _, lsb := range b.lexStates {
		if err := check(lsb.wildcard, "wildcard of lexical state "+lsb.name); err != nil {
			return maxkind, err
		}
	}
	for _, lit := range b.literals {
		if err := check(lit.kind, "literal "+lit.image); err != nil {
			return maxkind, err
		}
	}
	for kind := range b.resume {
		if err := check(kind, "resume state"); err != nil {
			return maxkind, err
		}
	}
	return maxkind, nil
}

func (b *Builder) buildMatches(maxkind nfalex.TokType) []MatchInfo {
	matches := make([]MatchInfo, maxkind+1)
	for k := range matches {
		kind := nfalex.TokType(k)
		if mb, ok := b.kinds[kind]; ok {
			matches[k] = mb.info
		} else {
			tracer().Debugf("lexer %q: kind %d not declared, will be TOKEN", b.name, kind)
			matches[k] = MatchInfo{Kind: kind, Type: TokenMatch, NewLexState: NoLexState}
		}
	}
	return matches
}

// buildLiterals groups literals by lexical state and first character, keeping
// the order of declaration within a group.
func (b *Builder) buildLiterals(td *TokenizerData) error {
	td.litIndex = sparse.NewIntMatrix(len(b.lexStates), unicode.MaxRune+1, -1)
	for _, decl := range b.literals {
		if !b.isLexState(decl.lexState) {
			return errors.Errorf("lexer %q: literal %q for unknown lexical state %d",
				b.name, decl.image, decl.lexState)
		}
		if decl.image == "" {
			return errors.Errorf("lexer %q: empty literal for kind %d", b.name, decl.kind)
		}
		if decl.kind == NoKind {
			return errors.Errorf("lexer %q: literal %q without kind", b.name, decl.image)
		}
		runes := []rune(decl.image)
		lit := Literal{Image: decl.image, Kind: decl.kind, runes: runes}
		inx := td.litIndex.Value(int(decl.lexState), int(runes[0]))
		if inx < 0 {
			inx = int32(len(td.litGroups))
			td.litGroups = append(td.litGroups, nil)
			td.litIndex.Set(int(decl.lexState), int(runes[0]), inx)
		}
		td.litGroups[inx] = append(td.litGroups[inx], lit)
	}
	return nil
}
