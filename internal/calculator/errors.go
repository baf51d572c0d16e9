package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports malformed or inconsistent caller input, such as
// splits that do not add up to the expense amount.
type ValidationError struct {
	Field  string // e.g. "expense[exp-1].splits"
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a member id that is absent from the supplied membership.
type NotFoundError struct {
	Kind string // "member"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvariantError reports a conservation violation in caller-supplied balances.
type InvariantError struct {
	Reason string
	Sum    decimal.Decimal
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s (sum=%s)", e.Reason, e.Sum.String())
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func memberNotFound(id string) error {
	return &NotFoundError{Kind: "member", ID: id}
}
