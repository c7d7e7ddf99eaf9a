package errors

import "fmt"

// Code identifies a category of failure. Codes are stable: the HTTP layer maps
// them to statuses without parsing message text.
type Code string

const (
	CodeValidation           Code = "VALIDATION"
	CodeNotFound             Code = "NOT_FOUND"
	CodeInsufficientFunds    Code = "INSUFFICIENT_FUNDS"
	CodeInsufficientHoldings Code = "INSUFFICIENT_HOLDINGS"
	CodePersistence          Code = "PERSISTENCE"
)

// DomainError is a typed business or storage failure with a stable message.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.cause }

// Is matches any DomainError carrying the same code, so wrapped persistence
// errors still satisfy errors.Is(err, ErrPersistence).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Business-rule rejections and storage failures surfaced by the trade engine.
var (
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "insufficient cash balance to cover trade cost",
	}
	ErrInsufficientHoldings = &DomainError{
		Code:    CodeInsufficientHoldings,
		Message: "insufficient holdings to cover sell quantity",
	}
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}
	ErrPersistence = &DomainError{
		Code:    CodePersistence,
		Message: "storage operation failed",
	}
)

// NotFound returns a not-found error naming the missing resource.
func NotFound(resource, id string) error {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// Persistence wraps a storage-layer failure. The trade is not considered
// executed when one of these surfaces.
func Persistence(err error) error {
	return &DomainError{
		Code:    CodePersistence,
		Message: "storage operation failed",
		cause:   err,
	}
}

// ErrValidation reports a single invalid request field.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}
