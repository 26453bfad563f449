package diag

import "fmt"

// Bag accumulates diagnostics across compiler stages. Diagnostics are
// kept in the order they were recorded; callers render them at the end
// of a stage. Appends only, never reorders.
type Bag struct {
	diags     []Diagnostic
	numErrors int
}

// NewBag creates an empty diagnostic accumulator.
func NewBag() *Bag {
	return &Bag{}
}

// Add records a fully formed diagnostic.
func (b *Bag) Add(d Diagnostic) {
	if d.Severity == SeverityError {
		b.numErrors++
	}
	b.diags = append(b.diags, d)
}

// Errorf records an error diagnostic with a formatted message.
func (b *Bag) Errorf(stage Stage, code Code, span Span, format string, args ...any) {
	b.Add(Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Warnf records a warning diagnostic with a formatted message.
func (b *Bag) Warnf(stage Stage, code Code, span Span, format string, args ...any) {
	b.Add(Diagnostic{
		Stage:    stage,
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
// Warnings never halt compilation.
func (b *Bag) HasErrors() bool {
	return b.numErrors > 0
}

// Diagnostics returns the recorded diagnostics in recording order.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diags
}

// Len returns the number of recorded diagnostics.
func (b *Bag) Len() int {
	return len(b.diags)
}
