package calculator

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places money is rounded to.
const CurrencyPlaces = 2

// Tolerance is the largest difference treated as rounding noise (one cent).
var Tolerance = decimal.New(1, -CurrencyPlaces)

// Member is one participant of a group. ID is the member's user id.
type Member struct {
	ID      string
	GroupID string
}

// Split is one member's share of an expense.
type Split struct {
	UserID string
	Share  decimal.Decimal
}

// Expense represents an expense with the minimal information needed for balance calculations.
type Expense struct {
	ID      string
	GroupID string
	PaidBy  string
	Amount  decimal.Decimal
	Splits  []Split
}

// Settlement represents a settlement with the minimal information needed for balance calculations.
type Settlement struct {
	ID      string
	GroupID string
	PaidBy  string // debtor settling up
	PaidTo  string // creditor being paid
	Amount  decimal.Decimal
}

// Balance is one member's net position within a group.
type Balance struct {
	MemberID string
	Net      decimal.Decimal // Positive = owed money, Negative = owes money
	Paid     decimal.Decimal // Total credited for expenses this member paid
	Share    decimal.Decimal // Total of this member's expense shares
}

// Settled reports whether the member's net is within one cent of zero.
func (b Balance) Settled() bool {
	return b.Net.Abs().LessThan(Tolerance)
}

// Balances holds one entry per member, in the order the members were supplied.
type Balances []Balance

// Get returns the balance for the given member.
func (bs Balances) Get(memberID string) (Balance, bool) {
	for _, b := range bs {
		if b.MemberID == memberID {
			return b, true
		}
	}
	return Balance{}, false
}

// Map returns member id -> net balance.
func (bs Balances) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(bs))
	for _, b := range bs {
		m[b.MemberID] = b.Net
	}
	return m
}

// Sum returns the sum of all net balances.
func (bs Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bs {
		sum = sum.Add(b.Net)
	}
	return sum
}

// ComputeBalances computes every member's net balance from a consistent snapshot
// of a group's members, expenses and settlements.
//
// Algorithm:
//   - Validate all inputs first; nothing is computed if any input is bad
//   - For each expense: payer is credited the amount, each split participant is debited their share
//   - For each settlement: payer's balance goes down, receiver's balance goes up
//   - Round every net to cents, half away from zero
//
// Splits may differ from the expense amount by up to one cent, so the nets sum
// to zero only within one cent per such expense.
func ComputeBalances(members []Member, expenses []Expense, settlements []Settlement) (Balances, error) {
	idx, groupID, err := indexMembers(members)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		if err := validateExpense(idx, groupID, e); err != nil {
			return nil, err
		}
	}
	for _, s := range settlements {
		if err := validateSettlement(idx, groupID, s); err != nil {
			return nil, err
		}
	}

	net := make([]decimal.Decimal, len(members))
	paid := make([]decimal.Decimal, len(members))
	share := make([]decimal.Decimal, len(members))

	for _, e := range expenses {
		p := idx[e.PaidBy]
		net[p] = net[p].Add(e.Amount)
		paid[p] = paid[p].Add(e.Amount)
		for _, s := range e.Splits {
			i := idx[s.UserID]
			net[i] = net[i].Sub(s.Share)
			share[i] = share[i].Add(s.Share)
		}
	}

	for _, s := range settlements {
		from, to := idx[s.PaidBy], idx[s.PaidTo]
		net[from] = net[from].Sub(s.Amount)
		net[to] = net[to].Add(s.Amount)
	}

	out := make(Balances, len(members))
	for i, m := range members {
		out[i] = Balance{
			MemberID: m.ID,
			Net:      net[i].Round(CurrencyPlaces),
			Paid:     paid[i].Round(CurrencyPlaces),
			Share:    share[i].Round(CurrencyPlaces),
		}
	}
	return out, nil
}
