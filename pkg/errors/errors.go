package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("resource not found")
	ErrConflict             = errors.New("resource already exists")
	ErrRepaymentAlreadyPaid = errors.New("repayment is already marked as paid")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDatabase             = errors.New("database operation failed")
	ErrCache                = errors.New("cache operation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeRepaymentAlreadyPaid = "REPAYMENT_ALREADY_PAID"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// CodeOf returns the business code carried by err, or "" when err is not a BusinessError.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// MessageOf returns the client-facing message carried by err.
func MessageOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return "internal error"
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(ErrCodeValidation, message, ErrValidation)
}

// WrapNotFound builds the error for a missing entity, e.g. WrapNotFound("Loan", 7).
func WrapNotFound(entity string, id interface{}) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s with ID %v not found", entity, id),
		ErrNotFound,
	)
}

// WrapDanglingReference reports a write that pointed at a record which no
// longer exists
func WrapDanglingReference(entity string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s references a record that does not exist", entity),
		ErrNotFound,
	)
}

func WrapConflict(message string) *BusinessError {
	return NewBusinessError(ErrCodeConflict, message, ErrConflict)
}

func WrapRepaymentAlreadyPaid(repaymentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeRepaymentAlreadyPaid,
		fmt.Sprintf("Repayment with ID %d is already marked as paid", repaymentID),
		ErrRepaymentAlreadyPaid,
	)
}

func WrapUnauthorized(message string) *BusinessError {
	return NewBusinessError(ErrCodeUnauthorized, message, ErrUnauthorized)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		fmt.Errorf("%w: %w", ErrDatabase, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		fmt.Errorf("%w: %w", ErrCache, err),
	)
}
