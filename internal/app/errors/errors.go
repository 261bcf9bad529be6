package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"ecohspeech/internal/app/model"
)

// Sentinel errors for the transcription taxonomy.
var (
	// ErrUnrecognized means the speech capability could not extract speech.
	// Only user action (clearer audio, different language) recovers it.
	ErrUnrecognized = New("could not understand the audio")

	// ErrServiceUnavailable is a transient remote failure.
	ErrServiceUnavailable = New("transcription service unavailable")

	// ErrQuotaExceeded specializes ErrServiceUnavailable for user messaging.
	// No behavioral branching depends on it.
	ErrQuotaExceeded = New("transcription quota exceeded")
)

// Error is a message plus optional cause, comparable by message via Is.
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// ConversionExhaustedError is returned when every strategy in the fallback
// chain failed or produced an artifact that failed validation. It carries the
// full per-strategy attempt log for diagnostics.
type ConversionExhaustedError struct {
	Filename string
	Attempts []model.ConversionAttempt
}

func (e *ConversionExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all conversion strategies failed for %q:", e.Filename)
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, " [%d] %s: %s (%s);", a.Ordinal, a.StrategyName, a.Outcome, a.Diagnostic)
	}
	return strings.TrimSuffix(b.String(), ";")
}

// IsConversionExhausted reports whether err is a chain exhaustion and, if
// so, returns it.
func IsConversionExhausted(err error) (*ConversionExhaustedError, bool) {
	var ce *ConversionExhaustedError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
