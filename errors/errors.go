package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // reading the source encoding
	PhaseEncode Phase = "encode" // producing the target encoding
	PhaseOpen   Phase = "open"   // opening a conversion context
	PhaseLift   Phase = "lift"   // guest memory to Go
	PhaseLower  Phase = "lower"  // Go to guest memory
	PhaseConfig Phase = "config" // configuration
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidEncoding     Kind = "invalid_encoding"
	KindEncodingUnsupported Kind = "encoding_unsupported"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindAllocation          Kind = "allocation"
	KindNilPointer          Kind = "nil_pointer"
	KindInvalidInput        Kind = "invalid_input"
)

// Sentinels for errors.Is checks that ignore the phase.
var (
	ErrInvalidEncoding     = &Error{Kind: KindInvalidEncoding, Offset: -1}
	ErrEncodingUnsupported = &Error{Kind: KindEncodingUnsupported, Offset: -1}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	From   string
	To     string
	Detail string
	// Offset is the index of the offending code unit in the input, or -1.
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.From != "" || e.To != "" {
		b.WriteString(": ")
		switch {
		case e.From != "" && e.To != "":
			b.WriteString(e.From)
			b.WriteString(" -> ")
			b.WriteString(e.To)
		case e.From != "":
			b.WriteString("from ")
			b.WriteString(e.From)
		default:
			b.WriteString("to ")
			b.WriteString(e.To)
		}
	}

	if e.Offset >= 0 {
		b.WriteString(" at unit ")
		b.WriteString(fmt.Sprint(e.Offset))
	}

	if e.Detail != "" {
		if e.From != "" || e.To != "" || e.Offset >= 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Is reports whether target matches this error.
// Kinds must be equal; phases are compared only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// From sets the source encoding name
func (b *Builder) From(name string) *Builder {
	b.err.From = name
	return b
}

// To sets the target encoding name
func (b *Builder) To(name string) *Builder {
	b.err.To = name
	return b
}

// Offset sets the offending unit index
func (b *Builder) Offset(i int) *Builder {
	b.err.Offset = i
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

// InvalidEncoding creates an invalid encoding error for input that does not
// form a valid sequence in the named encoding.
func InvalidEncoding(phase Phase, encoding string, offset int, detail string) *Error {
	e := &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Offset: offset,
		Detail: detail,
	}
	if phase == PhaseEncode {
		e.To = encoding
	} else {
		e.From = encoding
	}
	return e
}

// InvalidUnit creates an invalid encoding error for a single offending code unit
func InvalidUnit(phase Phase, encoding string, offset int, unit uint32, detail string) *Error {
	e := InvalidEncoding(phase, encoding, offset, fmt.Sprintf("%s 0x%04X", detail, unit))
	e.Value = unit
	return e
}

// Unsupported creates an encoding-unsupported error for a name the active
// backend cannot open.
func Unsupported(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEncodingUnsupported,
		Offset: -1,
		Detail: fmt.Sprintf("encoding %q is not supported", name),
		Value:  name,
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds error for guest memory access
func OutOfBounds(phase Phase, ptr, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Offset: -1,
		Detail: fmt.Sprintf("ptr=%d len=%d out of bounds", ptr, length),
		Value:  ptr,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Offset: -1,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Offset: -1,
		Detail: fmt.Sprintf("nil %s", what),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: -1,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}

// IsInvalidEncoding reports whether err is an invalid encoding error
func IsInvalidEncoding(err error) bool {
	return is(err, KindInvalidEncoding)
}

// IsUnsupported reports whether err is an encoding-unsupported error
func IsUnsupported(err error) bool {
	return is(err, KindEncodingUnsupported)
}

func is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Is reports whether any error in err's tree matches target.
// It forwards to the standard library so callers need only one errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
