package models

import "github.com/shopspring/decimal"

// SplitMethod describes how an expense's amount was divided.
type SplitMethod string

const (
	// SplitEqual divides the amount equally among the selected members.
	SplitEqual SplitMethod = "equal"
	// SplitCustom uses shares entered by the user.
	SplitCustom SplitMethod = "custom"
	// SplitItemized assigns line items to members and spreads tax proportionally.
	SplitItemized SplitMethod = "itemized"
)

// Valid reports whether m is a known split method.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitCustom, SplitItemized:
		return true
	}
	return false
}

// Expense represents a payment made by one member on behalf of the group.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `db:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `db:"group_id"`

	// PaidBy is the user ID of the member who paid.
	PaidBy string `db:"paid_by"`

	// Description is a short label, e.g. "Groceries".
	Description string `db:"description"`

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal `db:"amount"`

	// SplitMethod records how Splits were produced.
	SplitMethod SplitMethod `db:"split_method"`

	// Splits are the per-member shares. They sum to Amount within one cent.
	Splits []Split `db:"-"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `db:"created_at"`
}

// Split is one member's share of an expense.
type Split struct {
	ExpenseID string          `db:"expense_id"`
	UserID    string          `db:"user_id"`
	Share     decimal.Decimal `db:"share"`
}

// ShareOf returns the share assigned to userID, or zero.
func (e *Expense) ShareOf(userID string) decimal.Decimal {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s.Share
		}
	}
	return decimal.Zero
}
