package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/tripapi"
)

// AddParticipant adds a participant to a trip's roster.
func (s *TripService) AddParticipant(ctx context.Context, req *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.AddParticipantResponse], error) {
	participant, err := participantFromAPI(req.Msg.Participant, "")
	if err != nil {
		slog.Error("AddParticipant validation failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("AddParticipant request received",
		"trip", participant.TripName,
		"name", participant.Name,
		"mode", participant.Contribution.Mode.String(),
	)

	if err := s.store.AddParticipant(ctx, &participant); err != nil {
		slog.Error("AddParticipant failed", "trip", participant.TripName, "name", participant.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Participant added", "trip", participant.TripName, "name", participant.Name)

	return connect.NewResponse(&tripapi.AddParticipantResponse{
		Participant: participantToAPI(&participant),
	}), nil
}

// ListParticipants returns a trip's roster.
func (s *TripService) ListParticipants(ctx context.Context, req *connect.Request[tripapi.ListParticipantsRequest]) (*connect.Response[tripapi.ListParticipantsResponse], error) {
	slog.Info("ListParticipants request received", "trip", req.Msg.TripName)

	participants, err := s.store.ListParticipants(ctx, req.Msg.TripName)
	if err != nil {
		slog.Error("ListParticipants failed", "trip", req.Msg.TripName, "error", err)
		return nil, toConnectError(err)
	}

	apiParticipants := make([]*tripapi.Participant, len(participants))
	for i, p := range participants {
		apiParticipants[i] = participantToAPI(p)
	}

	return connect.NewResponse(&tripapi.ListParticipantsResponse{Participants: apiParticipants}), nil
}

// DeleteParticipant removes a participant who has no recorded expenses.
func (s *TripService) DeleteParticipant(ctx context.Context, req *connect.Request[tripapi.DeleteParticipantRequest]) (*connect.Response[tripapi.DeleteParticipantResponse], error) {
	slog.Info("DeleteParticipant request received", "trip", req.Msg.TripName, "name", req.Msg.Name)

	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name required"))
	}

	if err := s.store.DeleteParticipant(ctx, req.Msg.TripName, req.Msg.Name); err != nil {
		slog.Error("DeleteParticipant failed", "trip", req.Msg.TripName, "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Participant deleted", "trip", req.Msg.TripName, "name", req.Msg.Name)

	return connect.NewResponse(&tripapi.DeleteParticipantResponse{}), nil
}

// AddExpense records an expense against an existing participant.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.AddExpenseResponse], error) {
	expense, err := expenseFromAPI(req.Msg.Expense, "")
	if err != nil {
		slog.Error("AddExpense validation failed", "error", err)
		return nil, toConnectError(err)
	}
	// IDs are always assigned by the store.
	expense.ID = ""

	slog.Debug("AddExpense request received",
		"trip", expense.TripName,
		"spent_by", expense.SpentBy,
		"amount", expense.Amount.String(),
		"reason", expense.Reason,
	)

	if err := s.store.AddExpense(ctx, &expense); err != nil {
		slog.Error("AddExpense failed", "trip", expense.TripName, "spent_by", expense.SpentBy, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "trip", expense.TripName, "expense_id", expense.ID)

	return connect.NewResponse(&tripapi.AddExpenseResponse{Expense: expenseToAPI(&expense)}), nil
}

// ListExpenses returns a trip's ledger.
func (s *TripService) ListExpenses(ctx context.Context, req *connect.Request[tripapi.ListExpensesRequest]) (*connect.Response[tripapi.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "trip", req.Msg.TripName)

	expenses, err := s.store.ListExpenses(ctx, req.Msg.TripName)
	if err != nil {
		slog.Error("ListExpenses failed", "trip", req.Msg.TripName, "error", err)
		return nil, toConnectError(err)
	}

	apiExpenses := make([]*tripapi.Expense, len(expenses))
	for i, e := range expenses {
		apiExpenses[i] = expenseToAPI(e)
	}

	return connect.NewResponse(&tripapi.ListExpensesResponse{Expenses: apiExpenses}), nil
}

// DeleteExpense removes an expense.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[tripapi.DeleteExpenseRequest]) (*connect.Response[tripapi.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "trip", req.Msg.TripName, "expense_id", req.Msg.Id)

	if req.Msg.Id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.TripName, req.Msg.Id); err != nil {
		slog.Error("DeleteExpense failed", "trip", req.Msg.TripName, "expense_id", req.Msg.Id, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&tripapi.DeleteExpenseResponse{}), nil
}
