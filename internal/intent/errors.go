package intent

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes intent errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates an add-one form with a missing or invalid field.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeParse indicates an import file that is not a JSON array.
	ErrCodeParse ErrorCode = "PARSE"
)

// ValidationError is returned by AddOne when a form field is missing or
// invalid. No record is added.
type ValidationError struct {
	// Field is the offending form field: "name", "age" or "email".
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCodeValidation, e.Field, e.Message)
}

// Code returns ErrCodeValidation.
func (e *ValidationError) Code() ErrorCode {
	return ErrCodeValidation
}

// ParseError is returned by Import when the content is not valid JSON or
// its root is not an array. Nothing is imported.
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrCodeParse, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrCodeParse, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Code returns ErrCodeParse.
func (e *ParseError) Code() ErrorCode {
	return ErrCodeParse
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// CodeOf returns the ErrorCode carried by err, or "" if it has none.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
