package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageParser    Stage = "parser"
	StageTypeCheck Stage = "typecheck"
	StageCodegen   Stage = "codegen"
	StageDriver    Stage = "driver"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic, independent of the
// rendered message text.
type Code string

const (
	// Parser errors
	CodeParseExpected   Code = "PARSE_EXPECTED"
	CodeParseExpression Code = "PARSE_EXPECTED_EXPRESSION"
	CodeParseFunction   Code = "PARSE_EXPECTED_FUNCTION"

	// Type checker errors
	CodeUndefinedVariable Code = "TYPE_UNDEFINED_VARIABLE"
	CodeUndefinedStruct   Code = "TYPE_UNDEFINED_STRUCT"
	CodeAmbiguousStruct   Code = "TYPE_AMBIGUOUS_STRUCT"
	CodeTemplateArity     Code = "TYPE_TEMPLATE_ARITY"
	CodeNoMatchingFunc    Code = "TYPE_NO_MATCHING_FUNCTION"
	CodeAmbiguousFunc     Code = "TYPE_AMBIGUOUS_FUNCTION"
	CodeTypeMismatch      Code = "TYPE_MISMATCH"
	CodeInvalidBinary     Code = "TYPE_INVALID_BINARY_EXPRESSION"
	CodeExpectedName      Code = "TYPE_EXPECTED_NAME"
	CodeExpectedStruct    Code = "TYPE_EXPECTED_STRUCT"
	CodeUnknownField      Code = "TYPE_UNKNOWN_FIELD"
	CodeInvalidType       Code = "TYPE_INVALID_TYPE_EXPRESSION"

	// Driver errors
	CodeReadFailed  Code = "DRIVER_READ_FAILED"
	CodeWriteFailed Code = "DRIVER_WRITE_FAILED"
)

// Span represents a half-open [Start, End) byte range in source code.
type Span struct {
	Filename string
	Line     int // 1-based line of Start
	Column   int // 1-based column of Start
	Start    int // byte offset
	End      int // exclusive end offset
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has usable location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Merge returns a span covering both s and other. The receiver's start
// position wins; only the end may grow.
func (s Span) Merge(other Span) Span {
	if s.Filename == "" {
		s.Filename = other.Filename
	}
	if s.Line == 0 && other.Line != 0 {
		s.Line = other.Line
		s.Column = other.Column
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
}
