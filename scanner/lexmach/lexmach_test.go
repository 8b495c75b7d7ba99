package lexmach

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/automaton"
	"github.com/npillmayer/nfalex/scanner"
	"github.com/npillmayer/nfalex/scanner/interp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type tok struct {
	Kind  int
	Image string
	From  uint64
}

func tokensOf(tokens []nfalex.Token) []tok {
	r := make([]tok, len(tokens))
	for i, t := range tokens {
		r[i] = tok{int(t.TokType()), t.Lexeme(), t.Span().From()}
	}
	return r
}

func loadAdapter(t *testing.T) *LMAdapter {
	rules, err := LoadRulesFile("testdata/calc-rules.yaml")
	if err != nil {
		t.Fatal(err)
	}
	LM, err := NewLMAdapter(rules)
	if err != nil {
		t.Fatal(err)
	}
	return LM
}

var inputStrings = []string{
	"1",
	"1+12",
	"if iffy then",
	"x := (y1 - 42)*z_0",
	"",
}

var tokenCounts = []int{1, 3, 3, 9, 0}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.scanner")
	defer teardown()
	//
	LM := loadAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.scanner")
	defer teardown()
	//
	var reported error
	sc, err := loadAdapter(t).Scanner("ab : c")
	if err != nil {
		t.Fatal(err)
	}
	sc.SetErrorHandler(func(e error) { reported = e })
	if token := sc.NextToken(); token.Lexeme() != "ab" {
		t.Fatalf("expected identifier 'ab', have %v", token)
	}
	if token := sc.NextToken(); token.TokType() != scanner.EOF {
		t.Errorf("expected EOF after lexical error, have %v", token)
	}
	var lexerr *scanner.LexicalError
	if !errors.As(reported, &lexerr) || lexerr.Pos != 3 || lexerr.Char != ':' {
		t.Errorf("expected lexical error at position 3, have %v", reported)
	}
}

// fragments concatenate to inputs on which both backends have to agree.
var fragments = []string{
	"if", "then", "x", "y_1", "ifz", "0", "42", " ", "\t", "\n",
	":=", "=", "+", "-", "*", "/", "(", ")",
}

func TestLMAgreesWithInterpreter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.scanner")
	defer teardown()
	//
	LM := loadAdapter(t)
	data, err := automaton.LoadFile("../interp/testdata/calc.yaml")
	if err != nil {
		t.Fatal(err)
	}
	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		var b strings.Builder
		for n := rnd.Intn(30); n > 0; n-- {
			b.WriteString(fragments[rnd.Intn(len(fragments))])
		}
		input := b.String()
		dfa, err := LM.Tokenize(input)
		if err != nil {
			t.Fatalf("lexmachine failed on %q: %v", input, err)
		}
		nfa, err := interp.Tokenize(data, input)
		if err != nil {
			t.Fatalf("interpreter failed on %q: %v", input, err)
		}
		if diff := cmp.Diff(tokensOf(dfa), tokensOf(nfa)); diff != "" {
			t.Errorf("backends disagree on %q (-lexmachine +interpreter):\n%s", input, diff)
		}
	}
}
