package api

import "github.com/shopspring/decimal"

// CreateExpenseRequest records an expense. How the shares are produced depends on
// SplitMethod:
//
//   - "equal": Amount is split in whole cents among Participants (all members when empty)
//   - "custom": Splits are taken as given
//   - "itemized": Items are assigned to members and tax (Amount - Subtotal) is spread
//     in proportion to each member's subtotal
type CreateExpenseRequest struct {
	GroupID      string          `json:"group_id"`
	PaidBy       string          `json:"paid_by"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	SplitMethod  string          `json:"split_method"`
	Participants []string        `json:"participants,omitempty"`
	Splits       []*Split        `json:"splits,omitempty"`
	Items        []*Item         `json:"items,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesByGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesByGroupResponse struct {
	Expenses []*Expense `json:"expenses"`
}
