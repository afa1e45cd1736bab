package entity

import "fmt"

// NotFoundError signals that an account, bank, user or exchange rate does
// not exist. Handlers map it to a 404 response.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError builds a NotFoundError with a formatted message.
func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// BadRequestError signals a violated business rule: closed account,
// currency mismatch or insufficient funds. The first violated rule aborts
// the operation before any mutation. Handlers map it to a 400 response.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// NewBadRequestError builds a BadRequestError with a formatted message.
func NewBadRequestError(format string, args ...interface{}) *BadRequestError {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError aggregates field-shape violations collected at the
// request boundary. Unlike business-rule checks it is not fail-fast: all
// violations are reported together.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d violation(s)", len(e.Violations))
}
