package budget

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyItems       = errors.New("budget has no items")
	ErrPaymentMismatch  = errors.New("payment methods do not reconcile with the budget total")
	ErrValidationFailed = errors.New("budget validation failed")
)

// PaymentMismatchError carries the grand total and the sum of the splits.
type PaymentMismatchError struct {
	Expected float64
	Actual   float64
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %.2f, got %.2f", ErrPaymentMismatch, e.Expected, e.Actual)
}

func (e *PaymentMismatchError) Is(target error) bool {
	return target == ErrPaymentMismatch
}

// ValidationError lists the required fields that are missing or invalid.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d field(s)", ErrValidationFailed, len(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
