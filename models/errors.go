package models

import (
	"errors"
	"strings"
)

var (
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")

	// ErrMerchantNotFound is returned when a merchant is not found.
	ErrMerchantNotFound = errors.New("merchant not found")

	// ErrIncompleteSubmission is matched by every ValidationError.
	ErrIncompleteSubmission = errors.New("incomplete submission")
)

// ValidationError lists the required fields that were missing, blank or
// out of range.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "incomplete submission: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrIncompleteSubmission
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
