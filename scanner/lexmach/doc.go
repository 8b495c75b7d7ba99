/*
Package lexmach provides an adapter to use the lexmachine scanner generator as an
alternative backend to the NFA interpreter.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine compiles regular expressions to a DFA. It has no notion of lexical
states, string literal fast paths or wildcard kinds, so it is restricted to
lexers with a single lexical state. Within that restriction, a lexmachine scanner
and the interpreter of package interp produce identical token sequences for
equivalent rule sets, which makes lexmach a handy reference for cross-checking
lexer descriptions.

Rules are given as a RuleSet, either in code or loaded from YAML:

    literals:
      - { pattern: "if", kind: 1 }
      - { pattern: ":=", kind: 3 }
    patterns:
      - { pattern: "[a-zA-Z][a-zA-Z0-9_]*", kind: 11 }
      - { pattern: "( |\t|\n|\r)+", skip: true }

Literals are matched verbatim and take precedence over patterns of equal
length; patterns are regular expressions in lexmachine syntax.

	LM, err := lexmach.NewLMAdapter(rules)
	if err != nil {
		// do error handling: compiling the DFA failed
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

Unlike the interpreter, lexmachine cannot fall back to a wildcard kind. Input
which no rule matches results in a scanner.LexicalError, which halts the scanner.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
