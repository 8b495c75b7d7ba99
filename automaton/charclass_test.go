package automaton

import (
	"testing"
	"unicode"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCharClassContains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	cc := Ranges('a', 'z', 'A', 'Z', '_', '_')
	t.Logf("cc = %s", cc)
	for _, r := range "azAZ_mQ" {
		if !cc.Contains(r) {
			t.Errorf("expected %q to be contained in %s", r, cc)
		}
	}
	for _, r := range "09 -`{ä" {
		if cc.Contains(r) {
			t.Errorf("expected %q not to be contained in %s", r, cc)
		}
	}
	if len(cc) != 3 {
		t.Errorf("expected class to have 3 ranges, has %d", len(cc))
	}
}

func TestCharClassNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	cc := Chars("cabd").Union(Range('e', 'g')).Union(Range('x', 'w'))
	if len(cc) != 1 || cc[0] != (CharRange{'a', 'g'}) {
		t.Errorf("expected adjacent chars to merge into ['a'-'g'], is %s", cc)
	}
	var empty CharClass
	if !empty.IsEmpty() || empty.Contains('a') {
		t.Errorf("expected zero class to be empty")
	}
}

func TestCharClassNegate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	neg := Chars("\n").Negate()
	if neg.Contains('\n') {
		t.Errorf("expected ~[\\n] not to contain newline")
	}
	for _, r := range []rune{0, 'a', unicode.MaxRune} {
		if !neg.Contains(r) {
			t.Errorf("expected ~[\\n] to contain %U", r)
		}
	}
	if !AnyChar().Negate().IsEmpty() {
		t.Errorf("expected ~ANY to be empty")
	}
}
