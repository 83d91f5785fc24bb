package models

import (
	"strings"

	"github.com/mmynk/tripsplit/internal/apperrors"
)

// Validate checks the trip's name and odometer readings.
func (t *Trip) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return apperrors.Validation("trip name cannot be empty")
	}
	if t.StartKM < 0 || t.EndKM < 0 {
		return apperrors.Validation("odometer readings cannot be negative")
	}
	if t.EndKM != 0 && t.EndKM < t.StartKM {
		return apperrors.Validation("end km %d is before start km %d", t.EndKM, t.StartKM)
	}
	return nil
}

// Validate checks a participant before it is added to a roster.
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.TripName) == "" {
		return apperrors.Validation("trip name cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Validation("participant name cannot be empty")
	}
	switch p.Contribution.Mode {
	case ModeShared:
	case ModeFixed:
		if !p.Contribution.FixedAmount.IsPositive() {
			return apperrors.Validation("participant %q: fixed amount must be positive, got %s", p.Name, p.Contribution.FixedAmount)
		}
	default:
		return apperrors.Validation("participant %q: unknown contribution mode %v", p.Name, p.Contribution.Mode)
	}
	return nil
}

// Validate checks an expense's own fields. Whether SpentBy is on the roster
// is checked by whoever holds the roster.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.TripName) == "" {
		return apperrors.Validation("trip name cannot be empty")
	}
	if strings.TrimSpace(e.SpentBy) == "" {
		return apperrors.Validation("spent_by cannot be empty")
	}
	if e.Amount.IsNegative() {
		return apperrors.Validation("amount cannot be negative, got %s", e.Amount)
	}
	if e.Date.IsZero() {
		return apperrors.Validation("expense date is required")
	}
	return nil
}
