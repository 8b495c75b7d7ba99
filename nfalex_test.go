package nfalex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nfalex")
	defer teardown()
	//
	s := Span{3, 7}
	if s.From() != 3 || s.To() != 7 || s.Len() != 4 {
		t.Errorf("unexpected span values for %s", s)
	}
	if s.IsNull() || !(Span{}).IsNull() {
		t.Errorf("only the zero span should be null")
	}
	if x := s.Extend(Span{1, 4}); x != (Span{1, 7}) {
		t.Errorf("expected extended span (1…7), is %s", x)
	}
	if s.String() != "(3…7)" {
		t.Errorf("unexpected span string %q", s.String())
	}
}
