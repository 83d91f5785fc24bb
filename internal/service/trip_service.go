package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/tripapi"
	"github.com/mmynk/tripsplit/pkg/tripapi/tripapiconnect"
)

// Ensure TripService implements the Connect handler interface.
var _ tripapiconnect.TripServiceHandler = (*TripService)(nil)

// TripService implements the Connect TripService.
type TripService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewTripService creates a new TripService with the given storage backend.
// m may be nil, in which case nothing is recorded.
func NewTripService(store storage.Store, m *metrics.Metrics) *TripService {
	return &TripService{store: store, metrics: m}
}

// CreateTrip registers a new trip.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.CreateTripResponse], error) {
	slog.Info("CreateTrip request received", "name", req.Msg.Name)

	trip := &models.Trip{
		Name:    req.Msg.Name,
		StartKM: req.Msg.StartKm,
		EndKM:   req.Msg.EndKm,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip created", "name", trip.Name)

	return connect.NewResponse(&tripapi.CreateTripResponse{Trip: tripToAPI(trip)}), nil
}

// ListTrips returns every trip.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, toConnectError(err)
	}

	apiTrips := make([]*tripapi.Trip, len(trips))
	for i, trip := range trips {
		apiTrips[i] = tripToAPI(trip)
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&tripapi.ListTripsResponse{Trips: apiTrips}), nil
}

// GetTrip retrieves a trip by name.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.GetTripResponse], error) {
	slog.Info("GetTrip request received", "name", req.Msg.Name)

	trip, err := s.store.GetTrip(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("GetTrip failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&tripapi.GetTripResponse{Trip: tripToAPI(trip)}), nil
}

// UpdateTripDistance records the trip's odometer readings.
func (s *TripService) UpdateTripDistance(ctx context.Context, req *connect.Request[tripapi.UpdateTripDistanceRequest]) (*connect.Response[tripapi.UpdateTripDistanceResponse], error) {
	slog.Info("UpdateTripDistance request received",
		"name", req.Msg.Name,
		"start_km", req.Msg.StartKm,
		"end_km", req.Msg.EndKm,
	)

	if err := s.store.UpdateTripDistance(ctx, req.Msg.Name, req.Msg.StartKm, req.Msg.EndKm); err != nil {
		slog.Error("UpdateTripDistance failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	// Fetch updated trip to get CreatedAt
	trip, err := s.store.GetTrip(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("Failed to fetch updated trip", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&tripapi.UpdateTripDistanceResponse{Trip: tripToAPI(trip)}), nil
}

// DeleteTrip removes a trip with its participants and expenses.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "name", req.Msg.Name)

	if err := s.store.DeleteTrip(ctx, req.Msg.Name); err != nil {
		slog.Error("DeleteTrip failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip deleted", "name", req.Msg.Name)

	return connect.NewResponse(&tripapi.DeleteTripResponse{}), nil
}

// GetReport computes balances and settlement suggestions for a trip from its
// current roster and ledger.
func (s *TripService) GetReport(ctx context.Context, req *connect.Request[tripapi.GetReportRequest]) (*connect.Response[tripapi.GetReportResponse], error) {
	tripName := req.Msg.TripName
	slog.Info("GetReport request received", "trip", tripName)

	if tripName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip_name required"))
	}

	snapshot, err := s.store.LoadSnapshot(ctx, tripName)
	if err != nil {
		slog.Error("GetReport failed - could not load trip", "trip", tripName, "error", err)
		return nil, toConnectError(err)
	}

	report, err := calculator.ComputeBalances(snapshot.Participants, snapshot.Expenses)
	if err != nil {
		// Storage rejects such records at insert time, so this means the
		// database was edited behind our back.
		slog.Error("GetReport failed - calculation error", "trip", tripName, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if report.Summary.Degenerate {
		slog.Warn("No shared participants; shared pool left unallocated",
			"trip", tripName,
			"shared_pool", report.Summary.SharedPool.String(),
		)
	}

	suggestions := calculator.SuggestSettlements(report.Balances)
	settled := calculator.Settled(calculator.ApplySettlements(report.Balances, suggestions))
	if s.metrics != nil {
		s.metrics.Suggestions.Observe(float64(len(suggestions)))
	}

	apiBalances := make([]*tripapi.Balance, len(report.Balances))
	for i, b := range report.Balances {
		apiBalances[i] = balanceToAPI(b)
	}

	apiSuggestions := make([]*tripapi.PaymentSuggestion, len(suggestions))
	for i, sg := range suggestions {
		apiSuggestions[i] = suggestionToAPI(sg)
	}

	costPerKm := decimal.Zero
	if distance := snapshot.Trip.Distance(); distance > 0 {
		costPerKm = report.Summary.TotalExpense.Div(decimal.NewFromInt(distance))
	}

	slog.Info("GetReport successful",
		"trip", tripName,
		"participants_count", len(report.Balances),
		"expenses_count", len(snapshot.Expenses),
		"suggestions_count", len(suggestions),
		"settled", settled,
	)

	return connect.NewResponse(&tripapi.GetReportResponse{
		Trip:        tripToAPI(&snapshot.Trip),
		Summary:     summaryToAPI(report.Summary),
		Balances:    apiBalances,
		Suggestions: apiSuggestions,
		CostPerKm:   money(costPerKm),
		Settled:     settled,
	}), nil
}

// ExportTrip returns the full snapshot of a trip.
func (s *TripService) ExportTrip(ctx context.Context, req *connect.Request[tripapi.ExportTripRequest]) (*connect.Response[tripapi.ExportTripResponse], error) {
	slog.Info("ExportTrip request received", "trip", req.Msg.TripName)

	snapshot, err := s.store.LoadSnapshot(ctx, req.Msg.TripName)
	if err != nil {
		slog.Error("ExportTrip failed", "trip", req.Msg.TripName, "error", err)
		return nil, toConnectError(err)
	}

	resp := &tripapi.ExportTripResponse{
		Trip:         tripToAPI(&snapshot.Trip),
		Participants: make([]*tripapi.Participant, len(snapshot.Participants)),
		Expenses:     make([]*tripapi.Expense, len(snapshot.Expenses)),
	}
	for i := range snapshot.Participants {
		resp.Participants[i] = participantToAPI(&snapshot.Participants[i])
	}
	for i := range snapshot.Expenses {
		resp.Expenses[i] = expenseToAPI(&snapshot.Expenses[i])
	}

	return connect.NewResponse(resp), nil
}

// ImportTrip replaces a trip's roster and ledger with the given snapshot,
// creating the trip if needed. The snapshot is validated as a whole first;
// on any error the stored trip is left unchanged.
func (s *TripService) ImportTrip(ctx context.Context, req *connect.Request[tripapi.ImportTripRequest]) (*connect.Response[tripapi.ImportTripResponse], error) {
	if req.Msg.Trip == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("trip required"))
	}
	tripName := req.Msg.Trip.Name
	slog.Info("ImportTrip request received",
		"trip", tripName,
		"participants_count", len(req.Msg.Participants),
		"expenses_count", len(req.Msg.Expenses),
	)

	snapshot := &models.Snapshot{
		Trip: models.Trip{
			Name:      tripName,
			StartKM:   req.Msg.Trip.StartKm,
			EndKM:     req.Msg.Trip.EndKm,
			CreatedAt: req.Msg.Trip.CreatedAt,
		},
	}
	for _, p := range req.Msg.Participants {
		participant, err := participantFromAPI(p, tripName)
		if err != nil {
			return nil, toConnectError(err)
		}
		snapshot.Participants = append(snapshot.Participants, participant)
	}
	for _, e := range req.Msg.Expenses {
		expense, err := expenseFromAPI(e, tripName)
		if err != nil {
			return nil, toConnectError(err)
		}
		snapshot.Expenses = append(snapshot.Expenses, expense)
	}

	// Catches duplicate names and unknown spenders before touching storage.
	if _, err := calculator.ComputeBalances(snapshot.Participants, snapshot.Expenses); err != nil {
		slog.Warn("ImportTrip rejected", "trip", tripName, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.ReplaceSnapshot(ctx, snapshot); err != nil {
		slog.Error("ImportTrip failed", "trip", tripName, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip imported", "trip", tripName)

	return connect.NewResponse(&tripapi.ImportTripResponse{
		ParticipantCount: int32(len(snapshot.Participants)),
		ExpenseCount:     int32(len(snapshot.Expenses)),
	}), nil
}
