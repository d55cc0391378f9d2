package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild    Phase = "build"    // encoding values into a buffer
	PhaseDecode   Phase = "decode"   // reading values back from bytes
	PhaseValidate Phase = "validate" // structural validation
)

// Kind categorizes the error
type Kind string

const (
	// KindOverflow means the target buffer was too small. Expected and
	// recoverable: resize the buffer and replay the identical call sequence.
	KindOverflow Kind = "overflow"

	// KindInvalidArgument is a caller programming error: a NUL byte in a
	// string, an array length inconsistent with its element size, a pop
	// that does not match the innermost open frame.
	KindInvalidArgument Kind = "invalid_argument"

	// KindMalformed means the bytes being decoded are structurally
	// inconsistent. The error carries the offset where detection occurred.
	KindMalformed Kind = "malformed"

	KindUnknownType Kind = "unknown_type"
	KindUnsupported Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset uint32
	// HasOffset distinguishes offset 0 from no offset.
	HasOffset bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HasOffset {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
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

// Path sets the value-tree path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset where the fault was detected
func (b *Builder) Offset(off uint32) *Builder {
	b.err.Offset = off
	b.err.HasOffset = true
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

// Overflow creates a buffer-too-small error reporting the required size
func Overflow(need, have uint32) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("buffer too small: need %d bytes, have %d", need, have),
		Value:  need,
	}
}

// InvalidArgument creates a caller programming error
func InvalidArgument(phase Phase, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Malformed creates a decode fault carrying the detection offset
func Malformed(off uint32, format string, args ...any) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindMalformed,
		Offset:    off,
		HasOffset: true,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// UnknownType creates an unknown type tag error
func UnknownType(phase Phase, off uint32, tag uint32) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindUnknownType,
		Offset:    off,
		HasOffset: true,
		Detail:    fmt.Sprintf("unknown type tag %d", tag),
		Value:     tag,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsOverflow reports whether err is (or wraps) an overflow error.
func IsOverflow(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == KindOverflow {
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
