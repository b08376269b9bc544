package members

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeMalformedInput   = "MALFORMED_INPUT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeIdentityConflict = "IDENTITY_CONFLICT"
	ErrCodeBackendFailure   = "BACKEND_FAILURE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

var (
	// ErrMalformedInput marks request bodies that could not be decoded.
	ErrMalformedInput = errors.New("malformed input")

	// ErrBackend marks failures reported by the storage backend.
	ErrBackend = errors.New("backend failure")
)

// MemberError carries a failure together with the member it concerns
type MemberError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	MemberID string `json:"memberId,omitempty"`
	Err      error  `json:"-"`
}

// Error implements the error interface
func (e *MemberError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.MemberID != "" {
		msg = fmt.Sprintf("%s (member: %s)", msg, e.MemberID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause
func (e *MemberError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel belonging to the error's code, so callers can use
// errors.Is(err, ErrMalformedInput) regardless of wrapping.
func (e *MemberError) Is(target error) bool {
	switch target {
	case ErrMalformedInput:
		return e.Code == ErrCodeMalformedInput
	case ErrBackend:
		return e.Code == ErrCodeBackendFailure
	}
	return false
}

// NewMalformedInputError creates an error for an undecodable request body
func NewMalformedInputError(message string, cause error) *MemberError {
	return &MemberError{
		Code:    ErrCodeMalformedInput,
		Message: message,
		Err:     cause,
	}
}

// NewBackendError creates an error for a failed storage operation
func NewBackendError(operation, memberID string, cause error) *MemberError {
	return &MemberError{
		Code:     ErrCodeBackendFailure,
		Message:  fmt.Sprintf("failed to %s", operation),
		MemberID: memberID,
		Err:      cause,
	}
}

// IsMalformedInput checks if an error was caused by an undecodable body
func IsMalformedInput(err error) bool {
	return err != nil && errors.Is(err, ErrMalformedInput)
}

// IsBackendFailure checks if an error came from the storage backend
func IsBackendFailure(err error) bool {
	return err != nil && errors.Is(err, ErrBackend)
}

// StatusCodeForError maps an error escaping a handler to the status code the
// transport should answer with.
func StatusCodeForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsMalformedInput(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the code of a MemberError, or ErrCodeInternalError for
// anything else.
func ErrorCode(err error) string {
	var me *MemberError
	if errors.As(err, &me) {
		return me.Code
	}
	return ErrCodeInternalError
}
