package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Epsilon is the smallest amount treated as a real debt (0.01 currency unit).
// Balances closer to zero than this count as settled.
var Epsilon = decimal.New(1, -2)

// PaymentSuggestion is one debtor-to-creditor transfer.
type PaymentSuggestion struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

type position struct {
	name   string
	amount decimal.Decimal // Always positive
}

// SuggestSettlements turns net balances into payments that settle them.
// For whole-cent balances every residual is within Epsilon of zero; with
// finer balances the sub-Epsilon remainders of dropped sides can collect on
// one participant.
//
// This is a greedy heuristic, not a proven minimum: the largest remaining
// debtor pays the largest remaining creditor min(debt, credit), and a side
// is dropped once its remainder falls below Epsilon. It produces at most
// |debtors| + |creditors| - 1 payments. Ties are ordered by name so the
// output is deterministic.
func SuggestSettlements(balances []Balance) []PaymentSuggestion {
	var debtors, creditors []position
	for _, b := range balances {
		if b.Net.Abs().LessThan(Epsilon) {
			continue
		}
		if b.Net.IsNegative() {
			debtors = append(debtors, position{name: b.Name, amount: b.Net.Neg()})
		} else {
			creditors = append(creditors, position{name: b.Name, amount: b.Net})
		}
	}

	largestFirst := func(a, b position) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	}
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	var suggestions []PaymentSuggestion
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		suggestions = append(suggestions, PaymentSuggestion{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.LessThan(Epsilon) {
			i++
		}
		if creditor.amount.LessThan(Epsilon) {
			j++
		}
	}

	return suggestions
}

// ApplySettlements returns each participant's net balance after every
// suggestion is paid: the payer's balance rises, the receiver's falls.
func ApplySettlements(balances []Balance, suggestions []PaymentSuggestion) map[string]decimal.Decimal {
	residual := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		residual[b.Name] = b.Net
	}
	for _, s := range suggestions {
		residual[s.From] = residual[s.From].Add(s.Amount)
		residual[s.To] = residual[s.To].Sub(s.Amount)
	}
	return residual
}

// Settled reports whether every residual is within Epsilon of zero.
func Settled(residual map[string]decimal.Decimal) bool {
	for _, v := range residual {
		if v.Abs().GreaterThanOrEqual(Epsilon) {
			return false
		}
	}
	return true
}
