/*
Package interp is an interpreter for lexer descriptions. It executes an
automaton.TokenizerData directly against an input string, simulating the
lexer NFA with sets of active states. There is no determinization step, which makes
it well suited for on-the-fly usage, e.g. testing a grammar without generating and
compiling a scanner.

Every step of the lexer tries to find the longest match at the current input
position:

■ String literals for the current lexical state are tried first, in the order given
by the lexer description. The first literal matching completely is taken. A literal
only determines where NFA simulation continues, so a keyword like "if" will still
lose against a longer identifier "iffy".

■ The NFA is simulated character by character. Whenever accepting states are
active, the smallest of their kinds is recorded, a later position superseding an
earlier one.

■ If nothing has been consumed, the wildcard kind of the lexical state matches a
single character. If there is no wildcard kind, scanning stops with a
scanner.LexicalError.

Usage

For most cases, a single call suffices:

    tokens, err := interp.Tokenize(data, "if iffy", interp.IgnoreCase(true))

Parsers will rather pull tokens from a Lexer, which implements scanner.Tokenizer:

    lexer := interp.NewLexer(data, input)
    for token := lexer.NextToken(); token.TokType() != scanner.EOF; token = lexer.NextToken() {
        …
    }

Lexer.Step is the low-level API, returning matches of every type, including SKIP,
MORE and SPECIAL_TOKEN matches, which produce no tokens.

Lexers are cheap and must not be shared between goroutines. Lexer descriptions are
read-only and may be shared by any number of lexers.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nfalex.interp'.
func tracer() tracing.Trace {
	return tracing.Select("nfalex.interp")
}
