package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrUnboundVariable     = NewError("unbound variable")
	ErrFieldNotFound       = NewError("field not found")
	ErrInvalidFieldAccess  = NewError("field access on non-record value")
	ErrTypeMismatch        = NewError("operand type mismatch")
	ErrUnsupportedOperator = NewError("unsupported operator")
	ErrNotSupported        = NewError("not supported")
	ErrDivisionByZero      = NewError("division by zero")
	ErrMaxDepthExceeded    = NewError("maximum evaluation depth exceeded")
	ErrNonFiniteDouble     = NewError("non-finite double value")
	ErrReadInput           = NewError("failed to read input")
	ErrTrailingInput       = NewError("unexpected input after expression")
)

// String decoding errors.
var (
	errStringDelim        = NewError("expected opening quote")
	errStringUnterminated = NewError("unterminated string literal")
	errStringEscape       = NewError("invalid escape sequence")
	errStringTrailing     = NewError("unexpected input after string literal")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is this sentinel or matches the wrapped chain.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if errors.As(target, &te) {
		return e == te || (e.msg != "" && e.msg == te.msg)
	}

	return false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError reports a syntax error with source position and context.
type ParseError struct {
	Source   string   // The original source input
	Offset   int      // Byte offset of the failure
	Line     int      // 1-based line of the failure
	Column   int      // 1-based column of the failure
	Expected []string // Tokens or constructs that would have been accepted
}

// NewParseError builds a ParseError for the given byte offset into source.
func NewParseError(source string, offset int, expected ...string) *ParseError {
	line, column := 1, 1

	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}

	return &ParseError{
		Source:   source,
		Offset:   offset,
		Line:     line,
		Column:   column,
		Expected: expected,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))
	buf.WriteString(":\n")
	buf.WriteString(e.Snippet())

	if len(e.Expected) > 0 {
		buf.WriteString("\texpected: " + strings.Join(e.Expected, ", "))
	}

	return buf.String()
}

// Snippet renders the offending source line with a caret under the failure
// column.
func (e *ParseError) Snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	line := lines[e.Line-1]

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Line))
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Line))+5)
	if e.Column > 0 {
		padding += strings.Repeat(" ", e.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
