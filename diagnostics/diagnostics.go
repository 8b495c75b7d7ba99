package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/nfalex"
	"github.com/npillmayer/nfalex/scanner"
	"github.com/npillmayer/nfalex/scanner/interp"
)

// Severity represents the severity level of a diagnostic.
type Severity int

// Severity levels, from most to least severe.
const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is a message from a scanner run.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     nfalex.Span // input characters concerned, may be null
	Err      error       // error reported by the scanner, if any
}

func (d *Diagnostic) String() string {
	if d.Span.IsNull() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Span, d.Severity, d.Message)
}

// Bag collects diagnostics and tokens of scanner runs.
type Bag struct {
	mu          sync.Mutex
	source      string
	diagnostics []*Diagnostic
	tokens      []nfalex.Token
	errorCount  int
	warnCount   int
}

// NewBag creates a new diagnostic bag for an input source.
func NewBag(source string) *Bag {
	return &Bag{source: source}
}

// Source returns the name of the input source.
func (bag *Bag) Source() string {
	return bag.source
}

// Add adds a diagnostic to the bag.
func (bag *Bag) Add(d *Diagnostic) {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	bag.diagnostics = append(bag.diagnostics, d)
	switch d.Severity {
	case Error:
		bag.errorCount++
	case Warning:
		bag.warnCount++
	}
}

// AddError adds an error reported by a scanner.
func (bag *Bag) AddError(err error) {
	bag.Add(&Diagnostic{Severity: Error, Message: err.Error(), Span: spanOf(err), Err: err})
}

// AddWarning adds a warning reported by a scanner.
func (bag *Bag) AddWarning(err error) {
	bag.Add(&Diagnostic{Severity: Warning, Message: err.Error(), Span: spanOf(err), Err: err})
}

// AddInfo adds an informational message.
func (bag *Bag) AddInfo(msg string) {
	bag.Add(&Diagnostic{Severity: Info, Message: msg})
}

func spanOf(err error) nfalex.Span {
	var lexerr *scanner.LexicalError
	if errors.As(err, &lexerr) {
		return nfalex.Span{lexerr.Pos, lexerr.Pos + 1}
	}
	var w *scanner.UnsupportedActionWarning
	if errors.As(err, &w) {
		return w.Span
	}
	return nfalex.Span{}
}

// AddToken adds a token. EOF tokens are not collected.
func (bag *Bag) AddToken(token nfalex.Token) {
	if token.TokType() == scanner.EOF {
		return
	}
	bag.mu.Lock()
	defer bag.mu.Unlock()
	bag.tokens = append(bag.tokens, token)
}

// AddTokens adds a sequence of tokens.
func (bag *Bag) AddTokens(tokens []nfalex.Token) {
	for _, token := range tokens {
		bag.AddToken(token)
	}
}

// ErrorHandler returns an error handler for scanners, reporting into the bag.
func (bag *Bag) ErrorHandler() func(error) {
	return bag.AddError
}

// WarningHandler returns a warning handler for scanners, reporting into the bag.
func (bag *Bag) WarningHandler() func(error) {
	return bag.AddWarning
}

// Options returns the options to make an interpreter report into the bag.
func (bag *Bag) Options() []interp.Option {
	return []interp.Option{
		interp.ErrorHandler(bag.AddError),
		interp.WarningHandler(bag.AddWarning),
	}
}

// HasErrors returns true if there are any errors.
func (bag *Bag) HasErrors() bool {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	return bag.errorCount > 0
}

// ErrorCount returns the number of errors.
func (bag *Bag) ErrorCount() int {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	return bag.errorCount
}

// WarningCount returns the number of warnings.
func (bag *Bag) WarningCount() int {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	return bag.warnCount
}

// Diagnostics returns all diagnostics, in the order they have been added.
func (bag *Bag) Diagnostics() []*Diagnostic {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	d := make([]*Diagnostic, len(bag.diagnostics))
	copy(d, bag.diagnostics)
	return d
}

// Tokens returns all tokens, in the order they have been added.
func (bag *Bag) Tokens() []nfalex.Token {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	t := make([]nfalex.Token, len(bag.tokens))
	copy(t, bag.tokens)
	return t
}

// Summary returns a one-line summary of the bag's content.
func (bag *Bag) Summary() string {
	bag.mu.Lock()
	defer bag.mu.Unlock()
	return fmt.Sprintf("%s: %d tokens, %d errors, %d warnings",
		bag.source, len(bag.tokens), bag.errorCount, bag.warnCount)
}

// Emit writes all diagnostics to w, one per line, followed by the summary.
func (bag *Bag) Emit(w io.Writer) {
	for _, d := range bag.Diagnostics() {
		fmt.Fprintf(w, "%s:%s\n", bag.source, d)
	}
	fmt.Fprintln(w, bag.Summary())
	tracer().Debugf("emitted diagnostics for %s", bag.source)
}
