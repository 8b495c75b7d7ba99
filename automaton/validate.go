package automaton

import (
	"github.com/pkg/errors"
)

// validate checks the referential invariants of a lexer description:
// every state reference points to an existing NFA state, every lexical state
// transition to an existing lexical state, and every kind used has match
// information.
func validate(td *TokenizerData) error {
	isState := func(id StateID) bool {
		return id >= 0 && int(id) < len(td.nfa)
	}
	for _, info := range td.lexStates {
		if info.Initial != NoState && !isState(info.Initial) {
			return errors.Errorf("lexical state %s: initial NFA state %d does not exist", info.Name, info.Initial)
		}
		if info.Wildcard != NoKind && int(info.Wildcard) >= len(td.matches) {
			return errors.Errorf("lexical state %s: wildcard kind %d has no match info", info.Name, info.Wildcard)
		}
	}
	for _, s := range td.nfa {
		for _, next := range s.Next {
			if !isState(next) {
				return errors.Errorf("NFA state %d: next state %d does not exist", s.ID, next)
			}
		}
		for _, c := range s.Composite {
			if !isState(c) {
				return errors.Errorf("NFA state %d: composite state %d does not exist", s.ID, c)
			}
		}
		if s.Kind != NoKind && int(s.Kind) >= len(td.matches) {
			return errors.Errorf("NFA state %d: kind %d has no match info", s.ID, s.Kind)
		}
	}
	for kind, s := range td.resume {
		if s != NoState && !isState(s) {
			return errors.Errorf("kind %d: resume NFA state %d does not exist", kind, s)
		}
	}
	for _, m := range td.matches {
		if m.NewLexState != NoLexState && (m.NewLexState < 0 || int(m.NewLexState) >= len(td.lexStates)) {
			return errors.Errorf("kind %d: lexical state %d to switch to does not exist", m.Kind, m.NewLexState)
		}
		if m.Type < TokenMatch || m.Type > SpecialTokenMatch {
			return errors.Errorf("kind %d: illegal match type %d", m.Kind, m.Type)
		}
	}
	return nil
}
