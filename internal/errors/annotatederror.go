package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// AnnotatedError includes more context than a plain error that is useful for troubleshooting.
type AnnotatedError struct {
	// msg is the error message.
	msg string
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
	// wrapped is the underlying cause, if any.
	wrapped error
}

func annotate(msg string, wrapped error, attrs []slog.Attr) AnnotatedError {
	var pcs [1]uintptr
	// Skip runtime.Callers, this function and the exported constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return AnnotatedError{
		msg:     msg,
		pc:      pcs[0],
		attrs:   attrs,
		wrapped: wrapped,
	}
}

// New creates a new AnnotatedError with the given message and attributes.
func New(msg string, attrs ...slog.Attr) error {
	return annotate(msg, nil, attrs)
}

// NewSentinel creates a plain error without other context that can be used as sentinel error that can be detected
// with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap adds a message and attributes to err. The result matches err with Is and As. Wrapping a nil error returns nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return annotate(msg, err, attrs)
}

// Error implements error interface.
func (err AnnotatedError) Error() string {
	if err.wrapped == nil {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.msg, err.wrapped.Error())
}

// Unwrap returns the wrapped cause.
func (err AnnotatedError) Unwrap() error {
	return err.wrapped
}

// LogValue formats the error for useful logging.
//
// The attributes of annotated causes further down the chain are included after the error's own attributes.
func (err AnnotatedError) LogValue() slog.Value {
	// Retrieve the source location of the error so that developers can locate it faster.
	frames := runtime.CallersFrames([]uintptr{err.pc})
	source, _ := frames.Next()
	sourceAttr := slog.String("source", fmt.Sprintf("%s:%d", source.File, source.Line))

	attrs := append(
		[]slog.Attr{sourceAttr},
		err.attrs...,
	)
	for cause := err.wrapped; cause != nil; cause = errors.Unwrap(cause) {
		if annotated, ok := cause.(AnnotatedError); ok {
			attrs = append(attrs, annotated.attrs...)
		}
	}

	return slog.GroupValue(attrs...)
}

// SlogError renders err as an "error" group attribute with the message and, for annotated errors, the source and
// attributes. A nil error yields an empty attribute which slog ignores.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	attrs := []slog.Attr{slog.String("msg", err.Error())}
	var annotated AnnotatedError
	if errors.As(err, &annotated) {
		attrs = append(attrs, annotated.LogValue().Group()...)
	}
	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
