/*
Package automaton holds the description of a lexer, as it is consumed by the
interpreter of package scanner/interp.

A lexer description (type TokenizerData) is produced by a grammar compiler,
which is not part of this module. It consists of

■ lexical states, each with an initial NFA state and a wildcard kind,

■ string literals, grouped by lexical state and first character,

■ NFA states. States carry the character test, not the edges: an active
state whose character class contains the next input character moves to all of its
successor states at once. There are no epsilon moves.

■ match information per kind: match type (TOKEN, SKIP, MORE, SPECIAL_TOKEN), an
optional lexical action and an optional lexical state transition.

TokenizerData is immutable after construction and may be shared between any number
of concurrent scanner runs.

Building a Description

Clients either load a description (see Load) or use a builder:

    b := automaton.NewBuilder("Idents")
    def := b.LexState("DEFAULT")                      // first lex state is the default
    b.Kind(1, automaton.TokenMatch).Image("if")       // kind 1 = keyword "if"
    b.Kind(5, automaton.TokenMatch)                   // kind 5 = identifier
    b.Literal(def.ID(), "if", 1)                      // literal fast path
    b.Resume(1, 1)                                    // after "if", continue in NFA state 1
    b.State(0).Chars(automaton.Ranges('a', 'z', 'A', 'Z')).Accept(5).Next(1)
    b.State(1).Chars(automaton.Ranges('a', 'z', 'A', 'Z')).Accept(5).Next(1)
    def.Initial(0)
    data, err := b.Data()                             // checks all invariants

Kinds are dense: every kind between 0 and the largest kind referenced has a
match info, undeclared ones default to TOKEN without action.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automaton

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nfalex.automaton'.
func tracer() tracing.Trace {
	return tracing.Select("nfalex.automaton")
}
