package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ContributionMode says how a participant's expected share is computed.
type ContributionMode int

const (
	// ModeShared participants split the remaining cost equally.
	ModeShared ContributionMode = iota
	// ModeFixed participants owe exactly their FixedAmount.
	ModeFixed
)

// String returns the wire/storage name of the mode.
func (m ContributionMode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeShared:
		return "shared"
	default:
		return fmt.Sprintf("ContributionMode(%d)", int(m))
	}
}

// ParseContributionMode converts a wire/storage name into a mode.
func ParseContributionMode(s string) (ContributionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return ModeFixed, nil
	case "shared", "":
		return ModeShared, nil
	default:
		return ModeShared, fmt.Errorf("unknown contribution mode %q", s)
	}
}

// Contribution is a participant's contribution mode together with the fixed
// amount it carries. The amount is meaningful only for ModeFixed.
type Contribution struct {
	Mode        ContributionMode
	FixedAmount decimal.Decimal
}

// Shared returns the shared-pool contribution.
func Shared() Contribution {
	return Contribution{Mode: ModeShared}
}

// Fixed returns a fixed contribution of amount.
// An amount of exactly zero yields the shared contribution, matching the
// legacy tabular encoding where a zero Fixed_Amount meant "shared".
func Fixed(amount decimal.Decimal) Contribution {
	if amount.IsZero() {
		return Shared()
	}
	return Contribution{Mode: ModeFixed, FixedAmount: amount}
}

// IsFixed reports whether the contribution is a fixed amount.
func (c Contribution) IsFixed() bool {
	return c.Mode == ModeFixed
}

// Participant is a family or person on a trip.
type Participant struct {
	// TripName is the trip this participant belongs to.
	TripName string

	// Name is the display key, unique within a trip.
	// Expenses reference participants by this name.
	Name string

	// Contact is free-form contact information (e.g., an email address).
	// Optional and never validated.
	Contact string

	// Contribution is how much this participant is expected to pay.
	Contribution Contribution

	// CreatedAt is the Unix timestamp when the participant was added.
	CreatedAt int64
}
