package obj

import (
	"errors"
	"fmt"
)

// Kind classifies a load failure.
type Kind int

const (
	KindIO           Kind = iota // source could not be opened or read
	KindSyntax                   // malformed number, wrong field count, bad index
	KindNotSupported             // valid OBJ this loader does not handle
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSyntax:
		return "syntax"
	case KindNotSupported:
		return "not supported"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrIO           = errors.New("obj: io error")
	ErrSyntax       = errors.New("obj: syntax error")
	ErrNotSupported = errors.New("obj: feature not supported")
)

// Error is returned by every failing load. Line is 1-based and zero when
// the failure is not tied to a line.
type Error struct {
	Kind Kind
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var s string
	if e.Line > 0 {
		s = fmt.Sprintf("obj: %s error on line %d", e.Kind, e.Line)
	} else {
		s = fmt.Sprintf("obj: %s error", e.Kind)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes the underlying cause, typically an *fs.PathError.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrNotSupported:
		return e.Kind == KindNotSupported
	}
	return false
}

func syntaxErrorf(line int, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func notSupportedf(line int, format string, args ...any) *Error {
	return &Error{Kind: KindNotSupported, Line: line, Msg: fmt.Sprintf(format, args...)}
}
