package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

type party struct {
	id     string
	amount decimal.Decimal // magnitude, always positive
}

// SuggestSettlements returns a short list of payments that brings every member
// to zero. It greedily matches the largest creditor with the largest debtor,
// transfers the smaller of the two magnitudes, and repeats until every remaining
// magnitude is below one cent. Equal magnitudes are ordered by member id.
//
// The result never has more than len(balances)-1 transfers. Balances that do not
// sum to zero within one cent produce an *InvariantError. A leftover of at most
// one cent on one side is left in place once the other side is exhausted.
func SuggestSettlements(balances Balances) ([]Transfer, error) {
	seen := make(map[string]bool, len(balances))
	var creditors, debtors []party
	sum := decimal.Zero
	for i, b := range balances {
		if b.MemberID == "" {
			return nil, invalid(fmt.Sprintf("balances[%d]", i), "member id is empty")
		}
		if seen[b.MemberID] {
			return nil, invalid(fmt.Sprintf("balances[%d]", i), "duplicate member %s", b.MemberID)
		}
		seen[b.MemberID] = true
		sum = sum.Add(b.Net)

		switch {
		case b.Net.IsPositive():
			creditors = append(creditors, party{id: b.MemberID, amount: b.Net})
		case b.Net.IsNegative():
			debtors = append(debtors, party{id: b.MemberID, amount: b.Net.Neg()})
		}
	}

	if sum.Abs().GreaterThan(Tolerance) {
		return nil, &InvariantError{Reason: "balances do not sum to zero", Sum: sum}
	}

	var transfers []Transfer
	for {
		creditors = outstanding(creditors)
		debtors = outstanding(debtors)
		if len(creditors) == 0 || len(debtors) == 0 {
			break
		}

		creditor, debtor := &creditors[0], &debtors[0]
		amount := decimal.Min(creditor.amount, debtor.amount)

		transfers = append(transfers, Transfer{
			From:   debtor.id,
			To:     creditor.id,
			Amount: amount,
		})

		creditor.amount = creditor.amount.Sub(amount)
		debtor.amount = debtor.amount.Sub(amount)
	}

	return transfers, nil
}

// outstanding drops parties below one cent and orders the rest largest first,
// ties by id ascending.
func outstanding(parties []party) []party {
	kept := parties[:0]
	for _, p := range parties {
		if p.amount.GreaterThanOrEqual(Tolerance) {
			kept = append(kept, p)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if c := kept[i].amount.Cmp(kept[j].amount); c != 0 {
			return c > 0
		}
		return kept[i].id < kept[j].id
	})
	return kept
}

// ApplyTransfers returns a copy of balances with the given payments applied:
// the payer's net goes up and the receiver's net goes down.
func ApplyTransfers(balances Balances, transfers []Transfer) (Balances, error) {
	out := make(Balances, len(balances))
	copy(out, balances)

	pos := make(map[string]int, len(out))
	for i, b := range out {
		pos[b.MemberID] = i
	}

	for i, t := range transfers {
		if !t.Amount.IsPositive() {
			return nil, invalid(fmt.Sprintf("transfers[%d].amount", i), "must be positive, got %s", t.Amount.String())
		}
		from, ok := pos[t.From]
		if !ok {
			return nil, memberNotFound(t.From)
		}
		to, ok := pos[t.To]
		if !ok {
			return nil, memberNotFound(t.To)
		}
		out[from].Net = out[from].Net.Add(t.Amount)
		out[to].Net = out[to].Net.Sub(t.Amount)
	}
	return out, nil
}
