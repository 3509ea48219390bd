package billing

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName       = errors.New("item name is empty")
	ErrInvalidQuantity = errors.New("quantity must be a whole number between 1 and 9999")
	ErrInvalidPrice    = errors.New("price must be a number between 0 and 999999.99")
	ErrPricePrecision  = errors.New("price must have at most 2 decimal places")
	ErrNoItems         = errors.New("add at least one item")
	ErrMissingCustomer = errors.New("name and phone are required")
	ErrInvalidEmail    = errors.New("please enter a valid email address")
)

// ValidationError reports bad user input. Row is 1-based and zero when the
// error is not tied to an item row.
type ValidationError struct {
	Row   int
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Field, e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
