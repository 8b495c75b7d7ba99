package automaton

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// CharRange is an inclusive range of characters.
type CharRange struct {
	Lo, Hi rune
}

// CharClass is the set of characters an NFA state accepts. It is stored as
// a sorted list of non-overlapping, non-adjacent ranges.
// Create one with Chars, Range, Ranges or AnyChar; the zero value is the empty class.
type CharClass []CharRange

// Chars creates a character class containing every character of s.
func Chars(s string) CharClass {
	rr := make([]CharRange, 0, len(s))
	for _, r := range s {
		rr = append(rr, CharRange{r, r})
	}
	return normalize(rr)
}

// Range creates a character class lo…hi (inclusive).
func Range(lo, hi rune) CharClass {
	return normalize([]CharRange{{lo, hi}})
}

// Ranges creates a character class from pairs of bounds:
//
//     Ranges('a', 'z', 'A', 'Z', '_', '_')
//
// Panics if given an odd number of bounds.
func Ranges(bounds ...rune) CharClass {
	if len(bounds)%2 != 0 {
		panic("automaton.Ranges: odd number of bounds")
	}
	rr := make([]CharRange, 0, len(bounds)/2)
	for i := 0; i < len(bounds); i += 2 {
		rr = append(rr, CharRange{bounds[i], bounds[i+1]})
	}
	return normalize(rr)
}

// AnyChar is the class of all characters.
func AnyChar() CharClass {
	return CharClass{{0, unicode.MaxRune}}
}

// Contains checks if r is a member of cc.
func (cc CharClass) Contains(r rune) bool {
	// ranges are sorted => binary search for the first range ending at or after r
	i := sort.Search(len(cc), func(i int) bool {
		return cc[i].Hi >= r
	})
	return i < len(cc) && cc[i].Lo <= r
}

// Union returns a class containing the characters of both cc and other.
func (cc CharClass) Union(other CharClass) CharClass {
	rr := make([]CharRange, 0, len(cc)+len(other))
	rr = append(rr, cc...)
	rr = append(rr, other...)
	return normalize(rr)
}

// Negate returns the complement of cc, i.e. ~[...].
func (cc CharClass) Negate() CharClass {
	neg := make(CharClass, 0, len(cc)+1)
	var next rune
	for _, r := range cc {
		if r.Lo > next {
			neg = append(neg, CharRange{next, r.Lo - 1})
		}
		next = r.Hi + 1
	}
	if next <= unicode.MaxRune {
		neg = append(neg, CharRange{next, unicode.MaxRune})
	}
	return neg
}

// IsEmpty is true for a class without characters.
func (cc CharClass) IsEmpty() bool {
	return len(cc) == 0
}

func (cc CharClass) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, r := range cc {
		if i > 0 {
			b.WriteString(",")
		}
		if r.Lo == r.Hi {
			b.WriteString(fmt.Sprintf("%q", r.Lo))
		} else {
			b.WriteString(fmt.Sprintf("%q-%q", r.Lo, r.Hi))
		}
	}
	b.WriteString("]")
	return b.String()
}

// normalize sorts ranges and merges overlapping or adjacent ones.
// Ranges with Lo > Hi are dropped.
func normalize(rr []CharRange) CharClass {
	sort.Slice(rr, func(i, j int) bool {
		return rr[i].Lo < rr[j].Lo
	})
	cc := make(CharClass, 0, len(rr))
	for _, r := range rr {
		if r.Lo > r.Hi {
			continue
		}
		if n := len(cc); n > 0 && r.Lo <= cc[n-1].Hi+1 {
			if r.Hi > cc[n-1].Hi {
				cc[n-1].Hi = r.Hi
			}
			continue
		}
		cc = append(cc, r)
	}
	return cc
}
