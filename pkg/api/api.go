// Package api defines the request and response messages of the splitly.v1 services.
//
// Messages are plain structs encoded as JSON by the codec in package apiconnect.
// Field names are snake_case on the wire. Money is a decimal.Decimal and travels as
// a JSON string such as "12.50", so no precision is lost between client and server.
package api

import "github.com/shopspring/decimal"

// User is a person using Splitly.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Member is a user's membership in a group.
type Member struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinedAt int64  `json:"joined_at"`
}

// Group is a set of members sharing expenses.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   int64     `json:"created_at"`
	Members     []*Member `json:"members"`
}

// Split is one member's share of an expense.
type Split struct {
	UserID string          `json:"user_id"`
	Share  decimal.Decimal `json:"share"`
}

// Item is a line item of an itemized expense.
type Item struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	AssignedTo  []string        `json:"assigned_to"`
}

// Expense is a payment made by one member on behalf of the group.
type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	PaidBy      string          `json:"paid_by"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitMethod string          `json:"split_method"`
	Splits      []*Split        `json:"splits"`
	CreatedAt   int64           `json:"created_at"`
}

// Settlement is a direct payment between two members.
type Settlement struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	PaidBy    string          `json:"paid_by"`
	PaidTo    string          `json:"paid_to"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

// MemberBalance is a member's position within a group.
// Net is positive when the member is owed money and negative when they owe.
type MemberBalance struct {
	UserID  string          `json:"user_id"`
	Name    string          `json:"name"`
	Net     decimal.Decimal `json:"net"`
	Paid    decimal.Decimal `json:"paid"`
	Share   decimal.Decimal `json:"share"`
	Settled bool            `json:"settled"`
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From     string          `json:"from"`
	FromName string          `json:"from_name"`
	To       string          `json:"to"`
	ToName   string          `json:"to_name"`
	Amount   decimal.Decimal `json:"amount"`
}

// Activity is one entry of a user's activity feed.
type Activity struct {
	Kind        string          `json:"kind"` // "expense" or "settlement"
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	GroupName   string          `json:"group_name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	PaidTo      string          `json:"paid_to,omitempty"`
	UserShare   decimal.Decimal `json:"user_share"`
	CreatedAt   int64           `json:"created_at"`
}
