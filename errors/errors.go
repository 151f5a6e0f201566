package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which subsystem produced the error
type Phase string

const (
	PhaseDecode Phase = "decode" // compiled database parsing
	PhaseExpand Phase = "expand" // parameter expansion
	PhaseSearch Phase = "search" // database discovery
)

// Kind categorizes the error
type Kind string

const (
	KindBadMagic       Kind = "bad_magic"
	KindTruncated      Kind = "truncated"
	KindOutOfRange     Kind = "out_of_range"
	KindEmptyNames     Kind = "empty_names"
	KindStackUnderflow Kind = "stack_underflow"
	KindMissingArg     Kind = "missing_arg"
	KindBadDirective   Kind = "bad_directive"
	KindUnbalancedCond Kind = "unbalanced_conditional"
	KindBadFormat      Kind = "bad_format"
	KindTypeMismatch   Kind = "type_mismatch"
	KindNotFound       Kind = "not_found"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Section    string // decoder: section being read when the error occurred
	Capability string // capability short code, when one is in scope
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
		b.WriteString(" section")
	}

	if e.Capability != "" {
		b.WriteString(" (cap ")
		b.WriteString(e.Capability)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Section names the database section being decoded
func (b *Builder) Section(s string) *Builder {
	b.err.Section = s
	return b
}

// Capability names the capability short code in scope
func (b *Builder) Capability(name string) *Builder {
	b.err.Capability = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BadMagic creates an unrecognized-magic-number error
func BadMagic(magic uint16) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindBadMagic,
		Section: "header",
		Detail:  fmt.Sprintf("unrecognized magic number 0x%04x", magic),
		Value:   magic,
	}
}

// Truncated creates a truncated-section error
func Truncated(section string, want, have int) *Error {
	return &Error{
		Phase:   PhaseDecode,
		Kind:    KindTruncated,
		Section: section,
		Detail:  fmt.Sprintf("need %d bytes, %d remain", want, have),
	}
}

// OutOfRange creates an out-of-range string-table offset error
func OutOfRange(capName string, offset, tableLen int) *Error {
	return &Error{
		Phase:      PhaseDecode,
		Kind:       KindOutOfRange,
		Section:    "string table",
		Capability: capName,
		Detail:     fmt.Sprintf("offset %d out of range (table length %d)", offset, tableLen),
		Value:      offset,
	}
}

// StackUnderflow creates a stack underflow error for a directive
func StackUnderflow(directive byte) *Error {
	return &Error{
		Phase:  PhaseExpand,
		Kind:   KindStackUnderflow,
		Detail: fmt.Sprintf("directive %%%c popped an empty stack", directive),
	}
}

// MissingArg creates an unsupplied-positional-argument error
func MissingArg(index, supplied int) *Error {
	return &Error{
		Phase:  PhaseExpand,
		Kind:   KindMissingArg,
		Detail: fmt.Sprintf("%%p%d references argument %d but only %d supplied", index, index, supplied),
		Value:  index,
	}
}

// BadDirective creates an unrecognized-directive error
func BadDirective(c byte) *Error {
	return &Error{
		Phase:  PhaseExpand,
		Kind:   KindBadDirective,
		Detail: fmt.Sprintf("unrecognized directive character %q after %%", c),
		Value:  c,
	}
}

// NotFound creates a database-not-found error
func NotFound(term string) *Error {
	return &Error{
		Phase:  PhaseSearch,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("no terminfo entry for %q", term),
		Value:  term,
	}
}
