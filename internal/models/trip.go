package models

// Trip partitions all participants and expenses.
// Deleting a trip removes everything it owns.
type Trip struct {
	// Name is the unique identifier of the trip (e.g., "Goa 2025").
	Name string

	// StartKM is the odometer reading when the trip started.
	StartKM int64

	// EndKM is the odometer reading when the trip ended.
	// Zero until the trip is over; never less than StartKM once set.
	EndKM int64

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Distance returns the kilometres driven, or 0 if the end reading is not
// recorded yet.
func (t Trip) Distance() int64 {
	if t.EndKM < t.StartKM {
		return 0
	}
	return t.EndKM - t.StartKM
}
