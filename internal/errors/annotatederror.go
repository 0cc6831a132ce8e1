package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError includes more context than a plain error that is useful for troubleshooting.
type annotatedError struct {
	// msg is the error message.
	msg string
	// pc is the program counter for the location of the error provided by runtime.Callers.
	pc uintptr
	// attrs are slog attributes that are added to the log event to provide more context for the error.
	attrs []slog.Attr
	// wrapped is the underlying error, nil for errors created with New.
	wrapped error
}

// New creates a new error with the given message and attributes.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:     msg,
		pc:      callerPC(),
		attrs:   attrs,
		wrapped: nil,
	}
}

// NewSentinel creates a plain error without other context that can be used as sentinel error
// that can be detected with errors.Is.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap adds the message and the attributes to err. The source location of the caller is recorded.
//
// Wrapping a nil error returns nil so that it's safe to use in deferred cleanup.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{
		msg:     msg,
		pc:      callerPC(),
		attrs:   attrs,
		wrapped: err,
	}
}

func callerPC() uintptr {
	var pcs [1]uintptr
	// Skip runtime.Callers, callerPC and the constructor.
	runtime.Callers(3, pcs[:]) //nolint:mnd // see above
	return pcs[0]
}

// Error implements error interface.
func (err *annotatedError) Error() string {
	if err.wrapped == nil {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.msg, err.wrapped.Error())
}

// Unwrap makes the wrapped error visible to errors.Is and errors.As.
func (err *annotatedError) Unwrap() error {
	return err.wrapped
}

// LogValue formats the error for useful logging.
func (err *annotatedError) LogValue() slog.Value {
	return logValue(err.Error(), err)
}

// logValue collects the attributes of all annotated errors in the chain starting from err. The source points to
// the innermost annotated error so that developers can locate the origin faster.
func logValue(msg string, err *annotatedError) slog.Value {
	var (
		attrs []slog.Attr
		pc    = err.pc
	)
	for annotated := err; annotated != nil; {
		pc = annotated.pc
		attrs = append(attrs, annotated.attrs...)
		if !errors.As(annotated.wrapped, &annotated) {
			break
		}
	}

	frames := runtime.CallersFrames([]uintptr{pc})
	source, _ := frames.Next()

	return slog.GroupValue(append(
		[]slog.Attr{
			slog.String("msg", msg),
			slog.String("source", fmt.Sprintf("%s:%d", source.File, source.Line)),
		},
		attrs...,
	)...)
}

// SlogError returns an attribute for logging err under the "error" key.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	var annotated *annotatedError
	if errors.As(err, &annotated) {
		return slog.Any("error", logValue(err.Error(), annotated))
	}
	return slog.String("error", err.Error())
}

// As exposes stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is exposes stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap exposes stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
