package automaton

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	td, err := LoadFile("testdata/comments.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if td.Name() != "Comments" || td.Decls() != "int depth;" {
		t.Errorf("expected name and declarations to be loaded, have %q and %q", td.Name(), td.Decls())
	}
	if td.LexStateCount() != 2 || td.StateCount() != 4 || td.KindCount() != 100 {
		t.Errorf("expected 2 lexical states, 4 NFA states, 100 kinds; have %d, %d, %d",
			td.LexStateCount(), td.StateCount(), td.KindCount())
	}
	comment, ok := td.LexStateByName("COMMENT")
	if !ok || td.InitialState(comment) != NoState || td.WildcardKind(comment) != 6 {
		t.Errorf("lexical state COMMENT not loaded correctly")
	}
	if m, _ := td.Match(4); m.Type != SpecialTokenMatch || !m.HasAction() || m.NewLexState != td.DefaultLexState() {
		t.Errorf("match info for kind 4 not loaded correctly: %+v", m)
	}
	if td.ResumeState(1) != 1 {
		t.Errorf("expected resume state 1 for keyword 'if', is %d", td.ResumeState(1))
	}
	if s := td.State(1); !s.Chars.Contains('7') || s.Chars.Contains('_') {
		t.Errorf("character class of state 1 not loaded correctly: %s", s.Chars)
	}
	if td.KindString(1) != `"if"` || td.KindString(5) != "<5>" {
		t.Errorf("unexpected kind strings %s and %s", td.KindString(1), td.KindString(5))
	}
}

func TestStoreAndLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	td, err := LoadFile("testdata/comments.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = td.Store(&buf); err != nil {
		t.Fatal(err)
	}
	t.Logf("stored description:\n%s", buf.String())
	reloaded, err := Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	fp1, fp2 := td.Fingerprint(), reloaded.Fingerprint()
	if fp1 == "" || fp1 != fp2 {
		t.Errorf("expected fingerprints to be equal after round trip, are %q and %q", fp1, fp2)
	}
}

func TestFingerprintDiffers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	build := func(wildcard int) *TokenizerData {
		b := NewBuilder("fp")
		b.LexState("DEFAULT").Initial(0).Wildcard(nfalex.TokType(wildcard))
		b.State(0).Chars(Chars("a")).Accept(0)
		td, err := b.Data()
		if err != nil {
			t.Fatal(err)
		}
		return td
	}
	if build(1).Fingerprint() == build(2).Fingerprint() {
		t.Errorf("expected different descriptions to have different fingerprints")
	}
	if build(1).Fingerprint() != build(1).Fingerprint() {
		t.Errorf("expected fingerprint to be deterministic")
	}
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	broken := []string{
		"name: x\nlexstates: [{name: A}]\nunknown: 1\n",
		"name: x\nlexstates: [{name: A}, {name: A}]\n",
		"name: x\nlexstates: [{name: A}]\ndefault: B\n",
		"name: x\nlexstates: [{name: A}]\nkinds: [{kind: 1, type: TOKN}]\n",
		"name: x\nlexstates: [{name: A}]\nliterals: [{lexstate: B, image: x, kind: 1}]\n",
		"name: x\nlexstates: [{name: A, initial: 0}]\nstates: [{id: 0, chars: [[z, a]]}]\n",
		"name: x\nlexstates: [{name: A, initial: 0}]\nstates: [{id: 0, chars: [[ab]]}]\n",
		"name: x\nlexstates: [{name: A, initial: 1}]\nstates: [{id: 0}]\n",
	}
	for i, desc := range broken {
		if _, err := Load(strings.NewReader(desc)); err == nil {
			t.Errorf("expected description #%d to be rejected", i)
		} else {
			t.Logf("#%d: %v", i, err)
		}
	}
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex.automaton")
	defer teardown()
	//
	td, err := LoadFile("testdata/comments.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	td.Dump(&buf)
	out := buf.String()
	for _, s := range []string{"lexstate 1 COMMENT", `literal "*)" ⇒ 4`, "resume 1", "{action}"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected dump to contain %q", s)
		}
	}
	tracer().SetTraceLevel(tracing.LevelDebug)
	td.Trace()
}
