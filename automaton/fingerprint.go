package automaton

import (
	"github.com/cnf/structhash"
)

// digest is the hashable view of a lexer description. It holds plain values
// only, with absent references encoded as NoState, NoKind and NoLexState.
type digest struct {
	Name      string
	Decls     string
	Default   int
	LexStates []LexStateInfo
	States    []stateDigest
	Literals  []literalDigest
	Matches   []MatchInfo
	Resume    []int32
}

type stateDigest struct {
	ID        int32
	Chars     []CharRange
	Kind      int
	Next      []int32
	Composite []int32
}

type literalDigest struct {
	LexState int
	Image    string
	Kind     int
}

// Fingerprint returns a hash value for a lexer description. Descriptions with
// equal fingerprints tokenize every input the same way.
// Returns an empty string if the description could not be hashed.
func (td *TokenizerData) Fingerprint() string {
	d := digest{
		Name:      td.name,
		Decls:     td.decls,
		Default:   int(td.defaultLexState),
		LexStates: td.lexStates,
		Matches:   td.matches,
	}
	for _, s := range td.nfa {
		d.States = append(d.States, stateDigest{
			ID:        int32(s.ID),
			Chars:     s.Chars,
			Kind:      int(s.Kind),
			Next:      int32s(s.Next),
			Composite: int32s(s.Composite),
		})
	}
	td.EachLiteral(func(ls LexState, lit *Literal) {
		d.Literals = append(d.Literals, literalDigest{LexState: int(ls), Image: lit.Image, Kind: int(lit.Kind)})
	})
	d.Resume = int32s(td.resume)
	h, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot hash lexer %q: %v", td.name, err)
		return ""
	}
	return h
}

func int32s(ids []StateID) []int32 {
	v := make([]int32, len(ids))
	for i, id := range ids {
		v[i] = int32(id)
	}
	return v
}
