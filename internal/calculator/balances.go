package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/apperrors"
	"github.com/mmynk/tripsplit/internal/models"
)

// Balance is the derived position of one participant.
type Balance struct {
	Name     string
	Mode     models.ContributionMode
	Spent    decimal.Decimal // Sum of this participant's expenses
	Expected decimal.Decimal // Fixed amount, or the equal share of the pool
	Net      decimal.Decimal // Positive = owed money, Negative = owes money
}

// Summary holds the trip-wide totals behind a set of balances.
type Summary struct {
	TotalExpense        decimal.Decimal
	FixedTotal          decimal.Decimal
	SharedPool          decimal.Decimal // May be negative when fixed contributions exceed spend
	SharePerParticipant decimal.Decimal
	FixedCount          int
	SharedCount         int

	// Degenerate is set when nobody is in the shared pool but the pool is
	// non-zero. The pool is then left unallocated and the balances do not
	// sum to zero.
	Degenerate bool
}

// Report is the output of ComputeBalances.
type Report struct {
	Summary  Summary
	Balances []Balance // In roster order
}

// ComputeBalances derives every participant's expected share, spend and net
// balance from one trip's roster and ledger.
//
// Algorithm:
//   - total_expense = sum of all expense amounts
//   - fixed_total = sum of fixed contributions
//   - shared_pool = total_expense - fixed_total (not clamped)
//   - share = shared_pool / |shared| or 0 when nobody shares
//   - net = spent - expected
//
// It returns a validation error if the roster has empty or duplicate names,
// a negative amount, or an expense paid by someone not on the roster.
func ComputeBalances(participants []models.Participant, expenses []models.Expense) (Report, error) {
	if err := validateRoster(participants); err != nil {
		return Report{}, err
	}

	spent := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		spent[p.Name] = decimal.Zero
	}

	var summary Summary
	for _, e := range expenses {
		if e.Amount.IsNegative() {
			return Report{}, apperrors.Validation("expense %q has negative amount %s", e.ID, e.Amount)
		}
		current, ok := spent[e.SpentBy]
		if !ok {
			return Report{}, apperrors.Validation("expense %q spent by unknown participant %q", e.ID, e.SpentBy)
		}
		spent[e.SpentBy] = current.Add(e.Amount)
		summary.TotalExpense = summary.TotalExpense.Add(e.Amount)
	}

	for _, p := range participants {
		if p.Contribution.IsFixed() {
			summary.FixedCount++
			summary.FixedTotal = summary.FixedTotal.Add(p.Contribution.FixedAmount)
		} else {
			summary.SharedCount++
		}
	}

	summary.SharedPool = summary.TotalExpense.Sub(summary.FixedTotal)
	if summary.SharedCount > 0 {
		summary.SharePerParticipant = summary.SharedPool.Div(decimal.NewFromInt(int64(summary.SharedCount)))
	} else {
		summary.SharePerParticipant = decimal.Zero
		summary.Degenerate = !summary.SharedPool.IsZero()
	}

	balances := make([]Balance, 0, len(participants))
	for _, p := range participants {
		expected := summary.SharePerParticipant
		if p.Contribution.IsFixed() {
			expected = p.Contribution.FixedAmount
		}
		balances = append(balances, Balance{
			Name:     p.Name,
			Mode:     p.Contribution.Mode,
			Spent:    spent[p.Name],
			Expected: expected,
			Net:      spent[p.Name].Sub(expected),
		})
	}

	return Report{Summary: summary, Balances: balances}, nil
}

func validateRoster(participants []models.Participant) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if strings.TrimSpace(p.Name) == "" {
			return apperrors.Validation("participant name cannot be empty")
		}
		if seen[p.Name] {
			return apperrors.Validation("participant %q listed twice", p.Name)
		}
		seen[p.Name] = true
		if p.Contribution.FixedAmount.IsNegative() {
			return apperrors.Validation("participant %q has negative fixed amount %s", p.Name, p.Contribution.FixedAmount)
		}
	}
	return nil
}
