// Package byteqerr defines the error taxonomy shared by every component
// of the comparison engine. All errors that cross a package boundary are
// in-band values of type Error; nothing panics across the library edge.
package byteqerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies an Error into one of the kinds the spec distinguishes.
type Code int

const (
	// CodeUnknown is the zero value; never constructed deliberately.
	CodeUnknown Code = iota
	// CodeNotFound covers missing files and 404/410 HTTP responses.
	CodeNotFound
	// CodeOpenFailed covers connection refused, unsupported protocol, SSRF block.
	CodeOpenFailed
	// CodeRead covers truncation, network errors mid-stream, non-2xx mid-read.
	CodeRead
	// CodeSizeAnomaly covers a server that ignored a Range request.
	CodeSizeAnomaly
	// CodePolicy covers archive bombs, unsafe entry paths, bad headers, non-regular files.
	CodePolicy
	// CodeOOM covers allocation failures.
	CodeOOM
	// CodeNotReady is returned by Task.Result when called before readiness.
	CodeNotReady
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "not_found"
	case CodeOpenFailed:
		return "open_failed"
	case CodeRead:
		return "read_error"
	case CodeSizeAnomaly:
		return "size_anomaly"
	case CodePolicy:
		return "policy"
	case CodeOOM:
		return "out_of_memory"
	case CodeNotReady:
		return "not_ready"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned across the public API.
type Error struct {
	code    Code
	message string
	cause   error
}

// New builds an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap builds an Error that wraps cause with a stack-annotated trace via
// github.com/pkg/errors, preserving the original for errors.Cause/errors.As.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{code: code, message: message, cause: errors.Wrap(cause, message)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.code, e.cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Code returns the error's classification.
func (e *Error) Code() Code { return e.code }

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same Code, so errors.Is
// matches by classification regardless of message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == other.code
}
