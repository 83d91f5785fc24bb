// Package tripapi defines the wire messages of the tripsplit.v1 TripService.
//
// Request amounts accept JSON numbers or strings and are parsed as exact
// decimals. Response amounts are strings with two fractional digits.
package tripapi

import "github.com/shopspring/decimal"

// Contribution modes on the wire.
const (
	ModeShared = "shared"
	ModeFixed  = "fixed"
)

type Trip struct {
	Name       string `json:"name"`
	StartKm    int64  `json:"start_km"`
	EndKm      int64  `json:"end_km"`
	DistanceKm int64  `json:"distance_km"`
	CreatedAt  int64  `json:"created_at"`
}

type Participant struct {
	TripName    string          `json:"trip_name"`
	Name        string          `json:"name"`
	Contact     string          `json:"contact,omitempty"`
	Mode        string          `json:"mode"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
	CreatedAt   int64           `json:"created_at,omitempty"`
}

type Expense struct {
	Id        string          `json:"id,omitempty"`
	TripName  string          `json:"trip_name"`
	Date      string          `json:"date"` // YYYY-MM-DD
	SpentBy   string          `json:"spent_by"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Remarks   string          `json:"remarks,omitempty"`
	CreatedAt int64           `json:"created_at,omitempty"`
}

type Balance struct {
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	Spent    string `json:"spent"`
	Expected string `json:"expected"`
	Net      string `json:"net"`
}

type PaymentSuggestion struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type Summary struct {
	TotalExpense        string `json:"total_expense"`
	FixedTotal          string `json:"fixed_total"`
	SharedPool          string `json:"shared_pool"`
	SharePerParticipant string `json:"share_per_participant"`
	FixedCount          int32  `json:"fixed_count"`
	SharedCount         int32  `json:"shared_count"`
	Degenerate          bool   `json:"degenerate"`
}

type CreateTripRequest struct {
	Name    string `json:"name"`
	StartKm int64  `json:"start_km"`
	EndKm   int64  `json:"end_km"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type GetTripRequest struct {
	Name string `json:"name"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type UpdateTripDistanceRequest struct {
	Name    string `json:"name"`
	StartKm int64  `json:"start_km"`
	EndKm   int64  `json:"end_km"`
}

type UpdateTripDistanceResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	Name string `json:"name"`
}

type DeleteTripResponse struct{}

type AddParticipantRequest struct {
	Participant *Participant `json:"participant"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type ListParticipantsRequest struct {
	TripName string `json:"trip_name"`
}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type DeleteParticipantRequest struct {
	TripName string `json:"trip_name"`
	Name     string `json:"name"`
}

type DeleteParticipantResponse struct{}

type AddExpenseRequest struct {
	Expense *Expense `json:"expense"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	TripName string `json:"trip_name"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	TripName string `json:"trip_name"`
	Id       string `json:"id"`
}

type DeleteExpenseResponse struct{}

type GetReportRequest struct {
	TripName string `json:"trip_name"`
}

type GetReportResponse struct {
	Trip        *Trip                `json:"trip"`
	Summary     *Summary             `json:"summary"`
	Balances    []*Balance           `json:"balances"`
	Suggestions []*PaymentSuggestion `json:"suggestions"`
	CostPerKm   string               `json:"cost_per_km"`
	// Settled is false when paying every suggestion would still leave
	// someone off by a cent or more, as happens in a degenerate report.
	Settled bool `json:"settled"`
}

type ExportTripRequest struct {
	TripName string `json:"trip_name"`
}

type ExportTripResponse struct {
	Trip         *Trip          `json:"trip"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
}

type ImportTripRequest struct {
	Trip         *Trip          `json:"trip"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
}

type ImportTripResponse struct {
	ParticipantCount int32 `json:"participant_count"`
	ExpenseCount     int32 `json:"expense_count"`
}
