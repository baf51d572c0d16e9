package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Item represents a single line item on an itemized expense.
type Item struct {
	Description string
	Amount      decimal.Decimal
	AssignedTo  []string
}

// SplitEqually divides amount among participants in whole cents. Leftover cents
// go one each to the earliest participants, so the shares always sum to amount.
func SplitEqually(amount decimal.Decimal, participants []string) ([]Split, error) {
	if err := checkParticipants(participants); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, invalid("amount", "must be positive, got %s", amount.String())
	}
	if !isWholeCents(amount) {
		return nil, invalid("amount", "%s has more than %d decimal places", amount.String(), CurrencyPlaces)
	}

	exact := make([]decimal.Decimal, len(participants))
	per := amount.Div(decimal.NewFromInt(int64(len(participants))))
	for i := range exact {
		exact[i] = per
	}
	return toSplits(participants, allocateCents(exact, amount)), nil
}

// SplitByItems computes how much each participant owes for an itemized expense,
// including a proportional share of tax and fees.
// Based on: person_total = person_subtotal × (1 + (total_tax / bill_subtotal))
//
// Each item is split equally among the people it is assigned to. With no items
// the total is split equally among all participants.
func SplitByItems(items []Item, total, subtotal decimal.Decimal, participants []string) ([]Split, error) {
	if err := checkParticipants(participants); err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, invalid("total", "must be positive, got %s", total.String())
	}
	if !isWholeCents(total) {
		return nil, invalid("total", "%s has more than %d decimal places", total.String(), CurrencyPlaces)
	}
	if len(items) == 0 {
		return SplitEqually(total, participants)
	}
	if !subtotal.IsPositive() {
		return nil, invalid("subtotal", "must be positive, got %s", subtotal.String())
	}

	pos := make(map[string]int, len(participants))
	for i, p := range participants {
		pos[p] = i
	}

	subtotals := make([]decimal.Decimal, len(participants))
	itemsSum := decimal.Zero
	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		if !item.Amount.IsPositive() {
			return nil, invalid(field+".amount", "must be positive, got %s", item.Amount.String())
		}
		if len(item.AssignedTo) == 0 {
			return nil, invalid(field, "item %q is not assigned to anyone", item.Description)
		}
		perPerson := item.Amount.Div(decimal.NewFromInt(int64(len(item.AssignedTo))))
		for _, person := range item.AssignedTo {
			j, ok := pos[person]
			if !ok {
				return nil, invalid(field, "%s is not a participant", person)
			}
			subtotals[j] = subtotals[j].Add(perPerson)
		}
		itemsSum = itemsSum.Add(item.Amount)
	}

	if itemsSum.Sub(subtotal).Abs().GreaterThan(Tolerance) {
		return nil, invalid("items", "items sum to %s, expected subtotal %s", itemsSum.String(), subtotal.String())
	}

	// Apply proportional tax: each person pays their subtotal scaled by total/subtotal
	ratio := total.Div(itemsSum)
	exact := make([]decimal.Decimal, len(participants))
	for i, sub := range subtotals {
		exact[i] = sub.Mul(ratio)
	}
	return toSplits(participants, allocateCents(exact, total)), nil
}

func checkParticipants(participants []string) error {
	if len(participants) == 0 {
		return invalid("participants", "must have at least one participant")
	}
	seen := make(map[string]bool, len(participants))
	for i, p := range participants {
		if p == "" {
			return invalid(fmt.Sprintf("participants[%d]", i), "participant id is empty")
		}
		if seen[p] {
			return invalid(fmt.Sprintf("participants[%d]", i), "duplicate participant %s", p)
		}
		seen[p] = true
	}
	return nil
}

func isWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(CurrencyPlaces))
}

func toSplits(participants []string, shares []decimal.Decimal) []Split {
	splits := make([]Split, len(participants))
	for i, p := range participants {
		splits[i] = Split{UserID: p, Share: shares[i]}
	}
	return splits
}

// allocateCents rounds exact shares down to cents and hands the remaining cents
// of total to the shares with the largest fractional parts (earlier index wins
// ties). The result sums to total exactly.
func allocateCents(exact []decimal.Decimal, total decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(exact))
	frac := make([]decimal.Decimal, len(exact))
	allocated := decimal.Zero
	for i, e := range exact {
		cents := e.Shift(CurrencyPlaces)
		floor := cents.Floor()
		frac[i] = cents.Sub(floor)
		out[i] = floor.Shift(-CurrencyPlaces)
		allocated = allocated.Add(out[i])
	}

	remaining := total.Sub(allocated).Shift(CurrencyPlaces).Round(0).IntPart()
	if remaining == 0 || len(exact) == 0 {
		return out
	}

	order := make([]int, len(exact))
	for i := range order {
		order[i] = i
	}
	step := Tolerance
	if remaining < 0 {
		step = Tolerance.Neg()
		remaining = -remaining
		sort.SliceStable(order, func(a, b int) bool { return frac[order[a]].LessThan(frac[order[b]]) })
	} else {
		sort.SliceStable(order, func(a, b int) bool { return frac[order[a]].GreaterThan(frac[order[b]]) })
	}

	for k := int64(0); k < remaining; k++ {
		i := order[k%int64(len(order))]
		out[i] = out[i].Add(step)
	}
	return out
}
