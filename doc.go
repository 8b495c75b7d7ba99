/*
Package nfalex is an interpreted lexical matching engine.

NFALex executes a previously compiled lexer description directly against
text ("interpreted mode"), without generating source code and without
determinizing the automaton. Package structure is as follows:

■ automaton: Package automaton holds the immutable description of lexical
states, string literals, NFA states and match metadata (TokenizerData), together
with a builder, validation and a YAML codec.

■ scanner: Package scanner defines the tokenizer interface and the error types shared
by all backends. Sub-package interp is the NFA interpreter, sub-package lexmach
is a lexmachine-based DFA backend used for cross-checking.

■ diagnostics: Package diagnostics collects tokens, warnings and errors reported
by a scanner run.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package nfalex
