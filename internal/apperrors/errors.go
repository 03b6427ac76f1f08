package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRequestNotPending indicates a disbursement request is missing or already
// in a terminal state; approving or rejecting it must fail loudly.
var ErrRequestNotPending = errors.New("disbursement request not found or not pending")

// ErrInsufficientBudget indicates a budget deduction would drive the
// remaining amount negative. The whole approval aborts; nothing is applied.
var ErrInsufficientBudget = errors.New("insufficient budget remaining")

// ErrUnbalancedEntry indicates a journal entry whose debits do not equal its
// credits. Checked on every posting, including auto-generated ones.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// ErrCallbackDelivery indicates the outbound payroll callback failed.
// Logged by callers, never propagated as an operation failure.
var ErrCallbackDelivery = errors.New("payroll callback delivery failed")

// AppError wraps a lower-level error with an HTTP-ish status code and message.
// Repositories use it for persistence failures that should surface generically.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
