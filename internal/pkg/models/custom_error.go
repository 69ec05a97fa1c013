package models

import "errors"

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeStore      = "STORE_ERROR"
)

// CustomError carries a message safe to return to the caller and, for
// store failures, the underlying cause.
type CustomError struct {
	Code    string
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *CustomError {
	return &CustomError{Code: ErrorCodeValidation, Message: message}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{Code: ErrorCodeNotFound, Message: message}
}

func NewStoreError(message string, err error) *CustomError {
	return &CustomError{Code: ErrorCodeStore, Message: message, Err: err}
}

// ErrorCodeOf returns the code of the first CustomError in err's chain.
// Errors outside the taxonomy are store errors.
func ErrorCodeOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrorCodeStore
}

func IsValidationError(err error) bool { return err != nil && ErrorCodeOf(err) == ErrorCodeValidation }

func IsNotFoundError(err error) bool { return err != nil && ErrorCodeOf(err) == ErrorCodeNotFound }
