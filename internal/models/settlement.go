package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between group members to clear debts.
// Settlements are recorded verbatim as entered.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `db:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `db:"group_id"`

	// PaidBy is the user who paid (debtor settling up).
	PaidBy string `db:"paid_by"`

	// PaidTo is the user who received payment (creditor being paid).
	PaidTo string `db:"paid_to"`

	// Amount is the payment amount.
	Amount decimal.Decimal `db:"amount"`

	// Note is an optional description for the settlement.
	Note string `db:"note"`

	// CreatedBy is the user ID who recorded this settlement, if known.
	CreatedBy string `db:"created_by"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `db:"created_at"`
}
