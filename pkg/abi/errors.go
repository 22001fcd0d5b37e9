package abi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCodec represents a type without registered codec.
	ErrNoCodec = errors.New("no codec found")
	// ErrBufferTooLarge represents input exceeding MaxBufferSize.
	ErrBufferTooLarge = errors.New("buffer too large")
	// ErrInvalidShape represents a value not matching its own type.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrInvalidFormat represents bytes not matching the expected wire format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnsupported represents an operation not defined for the kind.
	ErrUnsupported = errors.New("unsupported operation")
)

// ErrorKind categorizes the Error.
type ErrorKind string

const (
	LookupFailure      ErrorKind = "lookup"
	SizeLimitFailure   ErrorKind = "size_limit"
	ShapeFailure       ErrorKind = "shape"
	FormatFailure      ErrorKind = "decode_format"
	UnsupportedFailure ErrorKind = "unsupported"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case LookupFailure:
		return ErrNoCodec
	case SizeLimitFailure:
		return ErrBufferTooLarge
	case ShapeFailure:
		return ErrInvalidShape
	case FormatFailure:
		return ErrInvalidFormat
	case UnsupportedFailure:
		return ErrUnsupported
	default:
		return nil
	}
}

// Error is returned by constructors and the codec.
type Error struct {
	Kind   ErrorKind
	Type   string
	Path   []string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')
	if e.Type != "" {
		b.WriteByte(' ')
		b.WriteString(e.Type)
	}
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
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

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel error of the kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && sentinel == target
}

func newError(kind ErrorKind, typ *Type, detail string, args ...interface{}) *Error {
	err := &Error{
		Kind:   kind,
		Detail: detail,
	}
	if len(args) > 0 {
		err.Detail = fmt.Sprintf(detail, args...)
	}
	if typ != nil {
		err.Type = typ.String()
	}
	return err
}

func shapeError(typ *Type, detail string, args ...interface{}) *Error {
	return newError(ShapeFailure, typ, detail, args...)
}

func formatError(typ *Type, cause error, detail string, args ...interface{}) *Error {
	err := newError(FormatFailure, typ, detail, args...)
	err.Cause = cause
	return err
}

// withPath prefixes the path of err with name.
func withPath(err error, name string) error {
	var abiErr *Error
	if errors.As(err, &abiErr) {
		abiErr.Path = append([]string{name}, abiErr.Path...)
	}
	return err
}
