package vitrin

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeService    ErrorType = "service"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes
const (
	ErrCodeUnknownCategory    = "UNKNOWN_CATEGORY"
	ErrCodeDuplicateCategory  = "DUPLICATE_CATEGORY"
	ErrCodeDuplicateField     = "DUPLICATE_FIELD"
	ErrCodeRangeKeyCollision  = "RANGE_KEY_COLLISION"
	ErrCodeMissingSchema      = "MISSING_SCHEMA"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeListingNotFound    = "LISTING_NOT_FOUND"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRequestFailed      = "REQUEST_FAILED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Error is the unified error type returned by the engine.
type Error struct {
	Type     ErrorType  `json:"type"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Category CategoryID `json:"category,omitempty"`
	Field    string     `json:"field,omitempty"`
	Fields   ErrorMap   `json:"fields,omitempty"`
	Status   int        `json:"status,omitempty"`
	Cause    error      `json:"-"`
}

func (e *Error) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("[%s:%s] category %s: %s", e.Type, e.Code, e.Category, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithField adds field context to the error
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// NewError creates a new Error
func NewError(errorType ErrorType, code, message string) *Error {
	return &Error{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// NewUnknownCategoryError creates the fatal error for an unresolvable
// category identifier. Rendering cannot proceed past it.
func NewUnknownCategoryError(id CategoryID) *Error {
	return &Error{
		Type:     ErrorTypeConfig,
		Code:     ErrCodeUnknownCategory,
		Message:  "unknown category",
		Category: id,
	}
}

// NewValidationError wraps a non-empty error map into a recoverable
// validation error.
func NewValidationError(category CategoryID, fields ErrorMap) *Error {
	return &Error{
		Type:     ErrorTypeValidation,
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("validation failed for %d field(s)", len(fields)),
		Category: category,
		Fields:   fields,
	}
}

// NewListingNotFoundError creates the distinct not-found error for code
// lookups; the UI shows it as "no listing found" rather than a failure.
func NewListingNotFoundError(listingNo string) *Error {
	return &Error{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeListingNotFound,
		Message: fmt.Sprintf("no listing found for '%s'", listingNo),
		Status:  404,
	}
}

// NewServiceError creates a service-layer failure error.
func NewServiceError(message string, status int, cause error) *Error {
	return &Error{
		Type:    ErrorTypeService,
		Code:    ErrCodeRequestFailed,
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternalError,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrorTypeConfig
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrorTypeValidation
	}
	return false
}

// IsNotFoundError checks if an error is a not-found error
func IsNotFoundError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrorTypeNotFound || e.Status == 404
	}
	return false
}

// ValidationFields extracts the error map from a validation error, or nil.
func ValidationFields(err error) ErrorMap {
	if e, ok := err.(*Error); ok && e.Type == ErrorTypeValidation {
		return e.Fields
	}
	return nil
}
