package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for expense dates on the wire
// and in storage.
const DateLayout = "2006-01-02"

// Expense is one payment a participant made on behalf of the group.
// Expenses are immutable once recorded; they can only be deleted.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripName is the trip this expense belongs to.
	TripName string

	// Date is the calendar day of the expense (time component is zero, UTC).
	Date time.Time

	// SpentBy is the name of the participant who paid.
	// Must reference an existing participant of the same trip.
	SpentBy string

	// Amount is the money spent. Never negative.
	Amount decimal.Decimal

	// Reason describes what the money was spent on (e.g., "Fuel", "Hotel").
	Reason string

	// Remarks is an optional free-form note.
	Remarks string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ParseDate parses a calendar day in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
