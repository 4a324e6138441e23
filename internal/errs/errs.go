package errs

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Kind classifies an error for callers that translate errors into responses.
type Kind int

const (
	// KindInternal is any failure not classified otherwise (store, context, wiring).
	KindInternal Kind = iota
	// KindValidation marks missing or malformed caller input. Never reaches the store.
	KindValidation
	// KindDataQuality marks stored text that could not be cast or parsed.
	KindDataQuality
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDataQuality:
		return "data_quality"
	default:
		return "internal"
	}
}

// KindError attaches a Kind to an error.
type KindError struct {
	kind Kind
	err  error
}

func (e *KindError) Error() string { return e.err.Error() }
func (e *KindError) Unwrap() error { return e.err }
func (e *KindError) Kind() Kind    { return e.kind }

// WithKind classifies err. A nil err stays nil.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return &KindError{kind: kind, err: err}
}

// Validationf builds a validation error whose message is safe to show to callers.
func Validationf(format string, args ...any) error {
	return &KindError{kind: KindValidation, err: fmt.Errorf(format, args...)}
}

// DataQualityf builds a data-quality error for malformed stored values.
func DataQualityf(format string, args ...any) error {
	return &KindError{kind: KindDataQuality, err: fmt.Errorf(format, args...)}
}

// KindOf returns the outermost Kind found in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindInternal
}

// PublicMessage returns the innermost message of a validation error, so wrapping
// context added on the way up is not shown to callers.
func PublicMessage(err error) string {
	var ke *KindError
	if !errors.As(err, &ke) {
		return ""
	}
	return ke.err.Error()
}

// Wrap adds context and preserves the error chain (errors.Is/As works).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context and preserves the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	args = append(args, err)
	return fmt.Errorf(format+": %w", args...)
}

// WithStack captures a stack trace once, at the root cause boundary.
func WithStack(err error) error {
	if err == nil {
		return nil
	}

	var se *StackError
	if errors.As(err, &se) {
		return err
	}

	return &StackError{
		err:   err,
		stack: debug.Stack(),
	}
}

// StackError wraps an error and stores a stack trace.
type StackError struct {
	err   error
	stack []byte
}

func (e *StackError) Error() string { return e.err.Error() }
func (e *StackError) Unwrap() error { return e.err }
func (e *StackError) Stack() []byte { return e.stack }

type loggable struct{ err error }

// Loggable makes slog encode the error as structured fields.
// Usage: slog.Any("err", errs.Loggable(err))
func Loggable(err error) slog.LogValuer { return loggable{err: err} }

func (l loggable) LogValue() slog.Value {
	if l.err == nil {
		return slog.GroupValue()
	}

	attrs := []slog.Attr{
		slog.String("message", l.err.Error()),
		slog.String("kind", KindOf(l.err).String()),
		slog.Any("chain", ErrorChainStrings(l.err)),
	}

	var se *StackError
	if errors.As(l.err, &se) {
		attrs = append(attrs, slog.String("stack", string(se.Stack())))
	}

	return slog.GroupValue(attrs...)
}

// ErrorChainStrings returns the unwrap chain as strings (outer -> inner).
func ErrorChainStrings(err error) []string {
	if err == nil {
		return nil
	}

	out := make([]string, 0, 8)
	for e := err; e != nil; e = errors.Unwrap(e) {
		out = append(out, e.Error())
	}
	return out
}
