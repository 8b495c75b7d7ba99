/*
Package diagnostics collects the output of a scanner run: tokens, warnings and errors.

A Bag is plugged into a lexer by its handlers:

    bag := diagnostics.NewBag("input.calc")
    tokens, err := interp.Tokenize(data, input, bag.Options()...)
    bag.AddTokens(tokens)
    fmt.Println(bag.Summary())

Bags are safe for concurrent use, so several lexers may report into the same bag.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package diagnostics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nfalex.diagnostics'.
func tracer() tracing.Trace {
	return tracing.Select("nfalex.diagnostics")
}
