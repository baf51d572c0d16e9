package models

import "github.com/shopspring/decimal"

// ActivityKind distinguishes the entries of a user's activity feed.
type ActivityKind string

const (
	ActivityExpense    ActivityKind = "expense"
	ActivitySettlement ActivityKind = "settlement"
)

// Activity is one entry in a user's activity feed: an expense they paid or
// took part in, or a settlement they sent or received.
type Activity struct {
	Kind        ActivityKind
	ID          string
	GroupID     string
	GroupName   string
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	PaidTo      string          // settlements only
	UserShare   decimal.Decimal // expenses only: the user's own share
	CreatedAt   int64
}
