package automaton

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/npillmayer/nfalex"
)

// Lexer descriptions may be stored as YAML (or JSON, which is a subset of YAML):
//
//    name: Idents
//    default: DEFAULT
//    lexstates:
//      - name: DEFAULT
//        initial: 0
//        wildcard: 99
//    kinds:
//      - kind: 1
//        type: TOKEN
//        image: if
//        resume: 1
//    literals:
//      - lexstate: DEFAULT
//        image: if
//        kind: 1
//    states:
//      - id: 0
//        chars: [[a, z], [A, Z]]
//        kind: 5
//        next: [1]
//
// Character ranges are given as one- or two-element lists of single characters.
// Optional state references and kinds are omitted if not present.

type description struct {
	Name      string         `yaml:"name"`
	Decls     string         `yaml:"decls,omitempty"`
	Default   string         `yaml:"default,omitempty"`
	LexStates []lexStateDesc `yaml:"lexstates"`
	Kinds     []kindDesc     `yaml:"kinds,omitempty"`
	Literals  []literalDesc  `yaml:"literals,omitempty"`
	States    []stateDesc    `yaml:"states,omitempty"`
}

type lexStateDesc struct {
	Name     string `yaml:"name"`
	Initial  *int   `yaml:"initial,omitempty"`
	Wildcard *int   `yaml:"wildcard,omitempty"`
}

type kindDesc struct {
	Kind     int    `yaml:"kind"`
	Type     string `yaml:"type,omitempty"`
	Action   string `yaml:"action,omitempty"`
	SwitchTo string `yaml:"switch,omitempty"`
	Image    string `yaml:"image,omitempty"`
	Resume   *int   `yaml:"resume,omitempty"`
}

type literalDesc struct {
	LexState string `yaml:"lexstate"`
	Image    string `yaml:"image"`
	Kind     int    `yaml:"kind"`
}

type stateDesc struct {
	ID        int        `yaml:"id"`
	Chars     [][]string `yaml:"chars,omitempty"`
	Kind      *int       `yaml:"kind,omitempty"`
	Next      []int      `yaml:"next,flow,omitempty"`
	Composite []int      `yaml:"composite,flow,omitempty"`
}

// Load reads a lexer description in YAML format.
func Load(r io.Reader) (*TokenizerData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read lexer description")
	}
	var desc description
	if err = yaml.UnmarshalStrict(raw, &desc); err != nil {
		return nil, errors.Wrap(err, "cannot decode lexer description")
	}
	return desc.build()
}

// LoadFile reads a lexer description from a YAML file.
func LoadFile(path string) (*TokenizerData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open lexer description")
	}
	defer f.Close()
	td, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "file %s", path)
	}
	return td, nil
}

// Store writes a lexer description in YAML format.
func (td *TokenizerData) Store(w io.Writer) error {
	out, err := yaml.Marshal(td.describe())
	if err != nil {
		return errors.Wrap(err, "cannot encode lexer description")
	}
	_, err = w.Write(out)
	return err
}

// --- Decoding --------------------------------------------------------------

func (desc *description) build() (*TokenizerData, error) {
	b := NewBuilder(desc.Name).Decls(desc.Decls)
	lexStates := make(map[string]LexState, len(desc.LexStates))
	for _, lsd := range desc.LexStates {
		if _, dup := lexStates[lsd.Name]; dup {
			return nil, errors.Errorf("lexical state %q declared twice", lsd.Name)
		}
		lsb := b.LexState(lsd.Name)
		lexStates[lsd.Name] = lsb.ID()
		if lsd.Initial != nil {
			lsb.Initial(StateID(*lsd.Initial))
		}
		if lsd.Wildcard != nil {
			lsb.Wildcard(nfalex.TokType(*lsd.Wildcard))
		}
	}
	lookup := func(name string) (LexState, error) {
		if ls, ok := lexStates[name]; ok {
			return ls, nil
		}
		return NoLexState, errors.Errorf("unknown lexical state %q", name)
	}
	if desc.Default != "" {
		ls, err := lookup(desc.Default)
		if err != nil {
			return nil, err
		}
		b.Default(ls)
	}
	for _, kd := range desc.Kinds {
		mt := TokenMatch
		if kd.Type != "" {
			var ok bool
			if mt, ok = ParseMatchType(kd.Type); !ok {
				return nil, errors.Errorf("kind %d: unknown match type %q", kd.Kind, kd.Type)
			}
		}
		mb := b.Kind(nfalex.TokType(kd.Kind), mt).Action(kd.Action).Image(kd.Image)
		if kd.SwitchTo != "" {
			ls, err := lookup(kd.SwitchTo)
			if err != nil {
				return nil, errors.Wrapf(err, "kind %d", kd.Kind)
			}
			mb.SwitchTo(ls)
		}
		if kd.Resume != nil {
			b.Resume(nfalex.TokType(kd.Kind), StateID(*kd.Resume))
		}
	}
	for _, ld := range desc.Literals {
		ls, err := lookup(ld.LexState)
		if err != nil {
			return nil, errors.Wrapf(err, "literal %q", ld.Image)
		}
		b.Literal(ls, ld.Image, nfalex.TokType(ld.Kind))
	}
	for _, sd := range desc.States {
		sb := b.State(StateID(sd.ID))
		for _, bounds := range sd.Chars {
			cc, err := decodeRange(bounds)
			if err != nil {
				return nil, errors.Wrapf(err, "NFA state %d", sd.ID)
			}
			sb.Chars(cc)
		}
		if sd.Kind != nil {
			sb.Accept(nfalex.TokType(*sd.Kind))
		}
		for _, n := range sd.Next {
			sb.Next(StateID(n))
		}
		for _, c := range sd.Composite {
			sb.Composite(StateID(c))
		}
	}
	return b.Data()
}

func decodeRange(bounds []string) (CharClass, error) {
	if len(bounds) < 1 || len(bounds) > 2 {
		return nil, errors.Errorf("character range %v must have 1 or 2 bounds", bounds)
	}
	var rr [2]rune
	for i, s := range bounds {
		if utf8.RuneCountInString(s) != 1 {
			return nil, errors.Errorf("character range bound %q is not a single character", s)
		}
		rr[i], _ = utf8.DecodeRuneInString(s)
	}
	if len(bounds) == 1 {
		rr[1] = rr[0]
	}
	if rr[0] > rr[1] {
		return nil, errors.Errorf("character range %q-%q is empty", rr[0], rr[1])
	}
	return Range(rr[0], rr[1]), nil
}

// --- Encoding --------------------------------------------------------------

func (td *TokenizerData) describe() *description {
	desc := &description{
		Name:    td.name,
		Decls:   td.decls,
		Default: td.LexStateName(td.defaultLexState),
	}
	for _, info := range td.lexStates {
		lsd := lexStateDesc{Name: info.Name}
		if info.Initial != NoState {
			lsd.Initial = intRef(int(info.Initial))
		}
		if info.Wildcard != NoKind {
			lsd.Wildcard = intRef(int(info.Wildcard))
		}
		desc.LexStates = append(desc.LexStates, lsd)
	}
	for _, m := range td.matches {
		kd := kindDesc{
			Kind:   int(m.Kind),
			Type:   m.Type.String(),
			Action: m.Action,
			Image:  m.Image,
		}
		if m.NewLexState != NoLexState {
			kd.SwitchTo = td.LexStateName(m.NewLexState)
		}
		if s := td.ResumeState(m.Kind); s != NoState {
			kd.Resume = intRef(int(s))
		}
		desc.Kinds = append(desc.Kinds, kd)
	}
	td.EachLiteral(func(ls LexState, lit *Literal) {
		desc.Literals = append(desc.Literals, literalDesc{
			LexState: td.LexStateName(ls),
			Image:    lit.Image,
			Kind:     int(lit.Kind),
		})
	})
	for _, s := range td.nfa {
		sd := stateDesc{ID: int(s.ID)}
		for _, r := range s.Chars {
			if r.Lo == r.Hi {
				sd.Chars = append(sd.Chars, []string{string(r.Lo)})
			} else {
				sd.Chars = append(sd.Chars, []string{string(r.Lo), string(r.Hi)})
			}
		}
		if s.Kind != NoKind {
			sd.Kind = intRef(int(s.Kind))
		}
		for _, n := range s.Next {
			sd.Next = append(sd.Next, int(n))
		}
		for _, c := range s.Composite {
			sd.Composite = append(sd.Composite, int(c))
		}
		desc.States = append(desc.States, sd)
	}
	return desc
}

func intRef(n int) *int {
	return &n
}
