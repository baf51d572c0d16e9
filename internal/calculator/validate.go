package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// memberIndex maps member id to its position in the input slice.
type memberIndex map[string]int

func indexMembers(members []Member) (memberIndex, string, error) {
	idx := make(memberIndex, len(members))
	groupID := ""
	for i, m := range members {
		field := fmt.Sprintf("members[%d]", i)
		if m.ID == "" {
			return nil, "", invalid(field, "member id is empty")
		}
		if _, dup := idx[m.ID]; dup {
			return nil, "", invalid(field, "duplicate member %s", m.ID)
		}
		if i == 0 {
			groupID = m.GroupID
		} else if m.GroupID != groupID {
			return nil, "", invalid(field, "member %s belongs to group %q, expected %q", m.ID, m.GroupID, groupID)
		}
		idx[m.ID] = i
	}
	return idx, groupID, nil
}

func (idx memberIndex) has(id string) bool {
	_, ok := idx[id]
	return ok
}

// ValidateExpense checks a single expense against the group membership.
// It runs the same checks ComputeBalances applies to every expense.
func ValidateExpense(members []Member, expense Expense) error {
	idx, groupID, err := indexMembers(members)
	if err != nil {
		return err
	}
	return validateExpense(idx, groupID, expense)
}

// ValidateSettlement checks a single settlement against the group membership.
func ValidateSettlement(members []Member, settlement Settlement) error {
	idx, groupID, err := indexMembers(members)
	if err != nil {
		return err
	}
	return validateSettlement(idx, groupID, settlement)
}

func validateExpense(idx memberIndex, groupID string, e Expense) error {
	field := fmt.Sprintf("expense[%s]", e.ID)

	if len(idx) > 0 && e.GroupID != "" && e.GroupID != groupID {
		return invalid(field, "belongs to group %q, expected %q", e.GroupID, groupID)
	}
	if !e.Amount.IsPositive() {
		return invalid(field+".amount", "must be positive, got %s", e.Amount.String())
	}
	if e.PaidBy == "" {
		return invalid(field+".paid_by", "payer is required")
	}
	if !idx.has(e.PaidBy) {
		return memberNotFound(e.PaidBy)
	}
	if len(e.Splits) == 0 {
		return invalid(field+".splits", "at least one split is required")
	}

	seen := make(map[string]bool, len(e.Splits))
	sum := decimal.Zero
	for i, s := range e.Splits {
		splitField := fmt.Sprintf("%s.splits[%d]", field, i)
		if s.UserID == "" {
			return invalid(splitField, "user id is empty")
		}
		if !idx.has(s.UserID) {
			return invalid(splitField, "user %s is not a member of the group", s.UserID)
		}
		if seen[s.UserID] {
			return invalid(splitField, "duplicate split for user %s", s.UserID)
		}
		seen[s.UserID] = true
		if s.Share.IsNegative() {
			return invalid(splitField, "share must not be negative, got %s", s.Share.String())
		}
		sum = sum.Add(s.Share)
	}

	if sum.Sub(e.Amount).Abs().GreaterThan(Tolerance) {
		return invalid(field+".splits", "shares sum to %s, expected %s", sum.String(), e.Amount.String())
	}
	return nil
}

func validateSettlement(idx memberIndex, groupID string, s Settlement) error {
	field := fmt.Sprintf("settlement[%s]", s.ID)

	if len(idx) > 0 && s.GroupID != "" && s.GroupID != groupID {
		return invalid(field, "belongs to group %q, expected %q", s.GroupID, groupID)
	}
	if !s.Amount.IsPositive() {
		return invalid(field+".amount", "must be positive, got %s", s.Amount.String())
	}
	if s.PaidBy == "" || s.PaidTo == "" {
		return invalid(field, "paid_by and paid_to are required")
	}
	if s.PaidBy == s.PaidTo {
		return invalid(field, "paid_by and paid_to must differ")
	}
	if !idx.has(s.PaidBy) {
		return memberNotFound(s.PaidBy)
	}
	if !idx.has(s.PaidTo) {
		return memberNotFound(s.PaidTo)
	}
	return nil
}
