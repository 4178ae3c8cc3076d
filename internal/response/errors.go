package response

import "fmt"

// AppError is a domain error carrying a machine-readable code.
// Services return AppError values; the handler layer maps codes to HTTP status.
type AppError struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError with the given code, message and details
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates an AppError for a missing resource
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, "")
}

// NewForbiddenError creates an AppError for a denied operation
func NewForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, "")
}

// NewValidationError creates an AppError for malformed input
func NewValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, "")
}

// NewStorageError wraps a persistence failure. The underlying error goes into
// Details for server-side logging; it is never rendered to the caller.
func NewStorageError(message string, err error) *AppError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewAppError(ErrCodeStorage, message, details)
}
