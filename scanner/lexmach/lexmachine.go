package lexmach

import (
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	"gopkg.in/yaml.v2"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// lexmachine adapter

// tracer traces with key 'nfalex.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("nfalex.scanner")
}

// Rule is a lexmachine rule: a literal or a regular expression, together with
// the kind of tokens it produces. Matches of skip-rules are dropped.
type Rule struct {
	Pattern string         `yaml:"pattern"`
	Kind    nfalex.TokType `yaml:"kind"`
	Skip    bool           `yaml:"skip,omitempty"`
}

// RuleSet is a set of rules for a lexmachine scanner. Within literals and
// patterns, rules added first take precedence for matches of equal length.
type RuleSet struct {
	Literals []Rule `yaml:"literals,omitempty"`
	Patterns []Rule `yaml:"patterns,omitempty"`
}

// LoadRules reads a rule set in YAML format.
func LoadRules(r io.Reader) (RuleSet, error) {
	var rules RuleSet
	raw, err := io.ReadAll(r)
	if err != nil {
		return rules, errors.Wrap(err, "cannot read lexmachine rules")
	}
	if err = yaml.UnmarshalStrict(raw, &rules); err != nil {
		return rules, errors.Wrap(err, "cannot decode lexmachine rules")
	}
	return rules, nil
}

// LoadRulesFile reads a rule set from a YAML file.
func LoadRulesFile(path string) (RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuleSet{}, errors.Wrap(err, "cannot open lexmachine rules")
	}
	defer f.Close()
	return LoadRules(f)
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter from a set of rules.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(rules RuleSet) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range rules.Literals {
		adapter.Lexer.Add([]byte(quote(lit.Pattern)), action(lit))
	}
	for _, pattern := range rules.Patterns {
		adapter.Lexer.Add([]byte(pattern.Pattern), action(pattern))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// quote escapes every character of a literal which is not a letter or a digit.
func quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func action(rule Rule) lexmachine.Action {
	if rule.Skip {
		return Skip
	}
	return MakeToken(rule.Pattern, int(rule.Kind))
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, input: input, Error: scanner.LogError}, nil
}

// Tokenize splits an input string into tokens. The token sequence is
// terminated by an EOF token.
//
// If a lexical error occurs, Tokenize returns the tokens found up to the error
// position (without EOF), together with a *scanner.LexicalError.
func (lm *LMAdapter) Tokenize(input string) ([]nfalex.Token, error) {
	lms, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	var tokens []nfalex.Token
	for {
		token, err := lms.next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
		if token.TokType() == scanner.EOF {
			return tokens, nil
		}
	}
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   string
	bytePos int    // byte position corresponding to runePos
	runePos uint64 // character position of the last token
	err     error  // sticky lexical error
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = scanner.LogError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// After a lexical error, which has been reported to the error handler,
// NextToken returns EOF.
func (lms *LMScanner) NextToken() nfalex.Token {
	token, err := lms.next()
	if err != nil {
		pos := lms.runePos
		return scanner.MakeDefaultToken(scanner.EOF, "", nfalex.Span{pos, pos})
	}
	return token
}

func (lms *LMScanner) next() (nfalex.Token, error) {
	if lms.err != nil {
		return nil, lms.err
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.err = lms.lexicalError(err)
		lms.Error(lms.err)
		return nil, lms.err
	}
	if eof {
		n := uint64(utf8.RuneCountInString(lms.input))
		return scanner.MakeDefaultToken(scanner.EOF, "", nfalex.Span{n, n}), nil
	}
	token := tok.(*lexmachine.Token)
	from := lms.advanceTo(token.TC)
	return scanner.MakeDefaultToken(
		nfalex.TokType(token.Type),
		string(token.Lexeme),
		nfalex.Span{from, from + uint64(utf8.RuneCount(token.Lexeme))},
	), nil
}

// advanceTo converts a byte position to a character position. Positions have
// to be increasing.
func (lms *LMScanner) advanceTo(tc int) uint64 {
	lms.runePos += uint64(utf8.RuneCountInString(lms.input[lms.bytePos:tc]))
	lms.bytePos = tc
	return lms.runePos
}

func (lms *LMScanner) lexicalError(err error) error {
	ui, ok := err.(*machines.UnconsumedInput)
	if !ok {
		return errors.Wrap(err, "lexmachine scanner failed")
	}
	ch, _ := utf8.DecodeRuneInString(lms.input[ui.StartTC:])
	return &scanner.LexicalError{
		Pos:       lms.advanceTo(ui.StartTC),
		Char:      ch,
		StateName: "DEFAULT",
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
