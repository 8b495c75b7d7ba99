/*
Package scanner defines an interface for scanners driven by a lexer description,
together with the token and error types shared by all scanner backends.

Two backends are provided: (1) the NFA interpreter in sub-package `interp`, which
executes an automaton.TokenizerData directly, and (2) an adapter for lexmachine,
living in sub-package `lexmach`, which compiles regular expressions to a DFA.

Scanners report two kinds of problems. A LexicalError means that no rule matches at
an input position; it halts the scanner. An UnsupportedActionWarning means that a
rule carries a lexical action, which scanners never execute; scanning continues.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner
