package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches DomainErrors by code and message, so a WithCause copy still
// compares equal to its sentinel under errors.Is.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code && e.Message == de.Message
}

// WithCause returns a copy of the error carrying an underlying cause.
// Sentinels stay untouched so errors.Is comparisons keep working.
func (e *DomainError) WithCause(err error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnavailable      = "UNAVAILABLE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// Validation errors
var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrInvalidEntry         = NewDomainError(ErrCodeValidation, "invalid knowledge entry")
	ErrInvalidIntent        = NewDomainError(ErrCodeValidation, "invalid intent definition")
	ErrDuplicateIntentName  = NewDomainError(ErrCodeValidation, "duplicate intent name")
	ErrEmptySynthesisText   = NewDomainError(ErrCodeValidation, "synthesis text is empty")
)

// Unavailable-feature errors: optional collaborators that were not configured
var (
	ErrSpeechNotConfigured  = NewDomainError(ErrCodeUnavailable, "speech service not configured: GRIDVOICE_SPEECH_KEY required")
	ErrArchiveNotConfigured = NewDomainError(ErrCodeUnavailable, "report archive not configured: GRIDVOICE_S3_ENDPOINT required")
)

// Operation errors
var (
	ErrSpeechSynthesisFailed   = NewDomainError(ErrCodeInternalError, "speech synthesis failed")
	ErrSpeechRecognitionFailed = NewDomainError(ErrCodeInternalError, "speech recognition failed")
	ErrStorageOperationFail    = NewDomainError(ErrCodeInternalError, "storage operation failed")
)
