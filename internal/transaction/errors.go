package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrCorruptState is returned by a Repository when a stored collection cannot be decoded.
// Services recover from it by starting with an empty collection.
var ErrCorruptState = errors.New("corrupt stored collection")

// ValidationError rejects user input before any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

func validateAmount(d decimal.Decimal) error {
	if d.Sign() <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	return nil
}

// ParseAmount converts user input into an amount, rejecting blank, non-numeric and
// non-positive values.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "is required"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must be a number"}
	}

	if err := validateAmount(d); err != nil {
		return decimal.Zero, err
	}

	return d, nil
}
