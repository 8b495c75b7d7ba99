/*
Command nfalex tokenizes input with a lexer description, using the NFA
interpreter or, for single-state lexers, lexmachine.

Usage:

    nfalex [-trace Level] [-ignorecase] [-dump] -automaton desc.yaml [input-file]
    nfalex -backend lexmachine -rules rules.yaml [input-file]

If an input file is given, nfalex prints its tokens and diagnostics and exits
with status 2 if a lexical error occured. Without an input file, nfalex starts an
interactive session, tokenizing every line entered. Within a session, lines
starting with a colon are commands:

    :dump      show the lexer description as a tree
    :quit      end the session (same as <ctrl>D)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nfalex.cli'
func tracer() tracing.Trace {
	return tracing.Select("nfalex.cli")
}
