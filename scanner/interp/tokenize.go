package interp

import (
	"context"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/automaton"
	"github.com/npillmayer/nfalex/scanner"
)

// NextToken is part of the Tokenizer interface. Matches which are not of
// type TOKEN are consumed silently.
//
// After a lexical error, which has been reported to the error handler,
// NextToken returns EOF.
func (l *Lexer) NextToken() nfalex.Token {
	for {
		m, err := l.Step()
		if err != nil || m.IsEOF() {
			pos := uint64(l.curPos)
			return scanner.MakeDefaultToken(scanner.EOF, "", nfalex.Span{pos, pos})
		}
		if m.Type == automaton.TokenMatch {
			return m.Token()
		}
		tracer().Debugf("%s match %q for kind %d not passed on", m.Type, m.Image, m.Kind)
	}
}

// Token wraps a match into a token.
func (m Match) Token() nfalex.Token {
	return scanner.MakeDefaultToken(m.Kind, m.Image, m.Span)
}

// Tokenize splits an input string into tokens, according to a lexer
// description. The token sequence is terminated by an EOF token.
//
// If a lexical error occurs, Tokenize returns the tokens found up to the error
// position (without EOF), together with a *scanner.LexicalError.
func Tokenize(data *automaton.TokenizerData, input string, opts ...Option) ([]nfalex.Token, error) {
	return TokenizeContext(context.Background(), data, input, opts...)
}

// TokenizeContext is like Tokenize, but checks ctx for cancellation
// before each step.
func TokenizeContext(ctx context.Context, data *automaton.TokenizerData, input string,
	opts ...Option) ([]nfalex.Token, error) {
	//
	l := NewLexer(data, input, opts...)
	var tokens []nfalex.Token
	for {
		if err := ctx.Err(); err != nil {
			tracer().Infof("tokenizing stopped at position %d: %v", l.curPos, err)
			return tokens, err
		}
		m, err := l.Step()
		if err != nil {
			return tokens, err
		}
		if m.IsEOF() {
			tokens = append(tokens, m.Token())
			return tokens, nil
		}
		if m.Type == automaton.TokenMatch {
			tokens = append(tokens, m.Token())
		}
	}
}
