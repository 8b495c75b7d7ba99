package interp

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/nfalex/automaton"
	"github.com/npillmayer/nfalex/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func loadCalc(t *testing.T) *automaton.TokenizerData {
	data, err := automaton.LoadFile("testdata/calc.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestCalc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	var warnings []error
	tokens, err := Tokenize(loadCalc(t), "if x1 := 42 then {note} y = x1+7",
		WarningHandler(func(w error) { warnings = append(warnings, w) }))
	if err != nil {
		t.Fatal(err)
	}
	expected := []tok{
		{1, "if"}, {11, "x1"}, {3, ":="}, {12, "42"}, {2, "then"},
		{11, "y"}, {4, "="}, {11, "x1"}, {5, "+"}, {12, "7"}, eof,
	}
	if diff := cmp.Diff(expected, tokensOf(tokens)); diff != "" {
		t.Errorf("unexpected tokens (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning for the comment action, have %d", len(warnings))
	}
	var w *scanner.UnsupportedActionWarning
	if !errors.As(warnings[0], &w) || w.Kind != 15 || w.Span.From() != 22 {
		t.Errorf("unexpected warning %v", warnings[0])
	}
}

func TestCalcSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	l := NewLexer(loadCalc(t), "äb := ü")
	var spans [][2]uint64
	for token := l.NextToken(); token.TokType() != scanner.EOF; token = l.NextToken() {
		spans = append(spans, token.Span())
	}
	// positions count characters, not bytes
	expected := [][2]uint64{{0, 1}, {1, 2}, {3, 5}, {6, 7}}
	if diff := cmp.Diff(expected, spans); diff != "" {
		t.Errorf("unexpected spans (-want +got):\n%s", diff)
	}
}

func TestIgnoreCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	data := loadCalc(t)
	tokens, err := Tokenize(data, "IF Then")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]tok{{11, "IF"}, {11, "Then"}, eof}, tokensOf(tokens)); diff != "" {
		t.Errorf("unexpected case sensitive tokens (-want +got):\n%s", diff)
	}
	tokens, err = Tokenize(data, "IF Then", IgnoreCase(true))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]tok{{1, "IF"}, {2, "Then"}, eof}, tokensOf(tokens)); diff != "" {
		t.Errorf("unexpected case insensitive tokens (-want +got):\n%s", diff)
	}
}

// randomInput creates an input string from characters the calc lexer knows
// about, plus some it does not.
func randomInput(rnd *rand.Rand, n int) string {
	const alphabet = "ifthenxy_09 \t\n:=+-*/(){}#ä"
	runes := []rune(alphabet)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(runes[rnd.Intn(len(runes))])
	}
	return b.String()
}

func TestMatchesCoverInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	data := loadCalc(t)
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 200; i++ {
		input := randomInput(rnd, rnd.Intn(40))
		l := NewLexer(data, input, WarningHandler(func(error) {}))
		var b strings.Builder
		var end uint64
		for {
			m, err := l.Step()
			if err != nil {
				t.Fatalf("input %q: %v", input, err)
			}
			if m.IsEOF() {
				break
			}
			if m.Span.From() != end || m.Span.Len() == 0 {
				t.Fatalf("input %q: match %v does not continue at %d", input, m, end)
			}
			end = m.Span.To()
			b.WriteString(m.Image)
		}
		if b.String() != input {
			t.Errorf("matches do not reconstruct input %q: %q", input, b.String())
		}
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	data := loadCalc(t)
	input := randomInput(rand.New(rand.NewSource(1)), 500)
	first, err1 := Tokenize(data, input, WarningHandler(func(error) {}))
	second, err2 := Tokenize(data, input, WarningHandler(func(error) {}))
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors %v, %v", err1, err2)
	}
	if diff := cmp.Diff(tokensOf(first), tokensOf(second)); diff != "" {
		t.Errorf("tokenizing twice differs (-first +second):\n%s", diff)
	}
}

func TestConcurrentLexers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	data := loadCalc(t)
	rnd := rand.New(rand.NewSource(42))
	inputs := make([]string, 16)
	expected := make([][]tok, len(inputs))
	for i := range inputs {
		inputs[i] = randomInput(rnd, 300)
		tokens, err := Tokenize(data, inputs[i], WarningHandler(func(error) {}))
		if err != nil {
			t.Fatal(err)
		}
		expected[i] = tokensOf(tokens)
	}
	results := make([][]tok, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens, _ := Tokenize(data, inputs[i], IgnoreCase(i%2 == 1), WarningHandler(func(error) {}))
			results[i] = tokensOf(tokens)
		}(i)
	}
	wg.Wait()
	for i := range inputs {
		if diff := cmp.Diff(expected[i], results[i]); diff != "" {
			t.Errorf("concurrent run #%d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestCancellation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tokens, err := TokenizeContext(ctx, loadCalc(t), "x := 1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected tokenizing to be canceled, have %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens from a canceled run, have %d", len(tokens))
	}
}

func TestStepDoesNotAllocate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.interp")
	defer teardown()
	//
	l := NewLexer(loadCalc(t), "if x1 := 42 then y = (x1+7) * 3 # iffy")
	allocs := testing.AllocsPerRun(20, func() {
		l.Reset()
		for {
			m, err := l.Step()
			if err != nil || m.IsEOF() {
				break
			}
		}
	})
	if allocs != 0 {
		t.Errorf("expected lexer steps not to allocate, have %.1f allocations per run", allocs)
	}
}
