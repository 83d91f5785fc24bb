package models

// Snapshot is the complete state of one trip: the trip record, its roster
// and its ledger. Storage loads and replaces snapshots as a unit.
type Snapshot struct {
	Trip         Trip
	Participants []Participant
	Expenses     []Expense
}
