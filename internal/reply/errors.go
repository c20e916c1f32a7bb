package reply

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredData = errors.New("missing required data: email, businessInfo, or tone")
	ErrEmptyCompletion     = errors.New("provider returned no choices")
)

// Error codes
const (
	CodeMissingRequiredData = "MISSING_REQUIRED_DATA"
	CodePromptError         = "PROMPT_ERROR"
	CodeProviderError       = "PROVIDER_ERROR"
)

// Error carries the failure kind of a reply generation together with its cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsValidationError reports whether err was caused by an incomplete request.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingRequiredData)
}
