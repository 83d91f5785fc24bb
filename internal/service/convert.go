package service

import (
	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/apperrors"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/tripapi"
)

// toConnectError maps an error kind onto a Connect status code.
func toConnectError(err error) *connect.Error {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return connect.NewError(connect.CodeInvalidArgument, err)
	case apperrors.KindDuplicate:
		return connect.NewError(connect.CodeAlreadyExists, err)
	case apperrors.KindReferentialIntegrity:
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case apperrors.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// money renders an amount with two fractional digits.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func tripToAPI(t *models.Trip) *tripapi.Trip {
	return &tripapi.Trip{
		Name:       t.Name,
		StartKm:    t.StartKM,
		EndKm:      t.EndKM,
		DistanceKm: t.Distance(),
		CreatedAt:  t.CreatedAt,
	}
}

func participantToAPI(p *models.Participant) *tripapi.Participant {
	return &tripapi.Participant{
		TripName:    p.TripName,
		Name:        p.Name,
		Contact:     p.Contact,
		Mode:        p.Contribution.Mode.String(),
		FixedAmount: p.Contribution.FixedAmount,
		CreatedAt:   p.CreatedAt,
	}
}

// participantFromAPI converts a wire participant. An empty mode follows the
// legacy encoding: a positive fixed amount means fixed, zero means shared.
func participantFromAPI(p *tripapi.Participant, tripName string) (models.Participant, error) {
	if p == nil {
		return models.Participant{}, apperrors.Validation("participant is required")
	}

	var contribution models.Contribution
	switch p.Mode {
	case "":
		contribution = models.Fixed(p.FixedAmount)
	case tripapi.ModeFixed:
		contribution = models.Contribution{Mode: models.ModeFixed, FixedAmount: p.FixedAmount}
	case tripapi.ModeShared:
		if !p.FixedAmount.IsZero() {
			return models.Participant{}, apperrors.Validation("participant %q: shared mode cannot carry a fixed amount", p.Name)
		}
		contribution = models.Shared()
	default:
		return models.Participant{}, apperrors.Validation("participant %q: unknown contribution mode %q", p.Name, p.Mode)
	}

	if tripName == "" {
		tripName = p.TripName
	}
	return models.Participant{
		TripName:     tripName,
		Name:         p.Name,
		Contact:      p.Contact,
		Contribution: contribution,
		CreatedAt:    p.CreatedAt,
	}, nil
}

func expenseToAPI(e *models.Expense) *tripapi.Expense {
	return &tripapi.Expense{
		Id:        e.ID,
		TripName:  e.TripName,
		Date:      e.Date.Format(models.DateLayout),
		SpentBy:   e.SpentBy,
		Amount:    e.Amount,
		Reason:    e.Reason,
		Remarks:   e.Remarks,
		CreatedAt: e.CreatedAt,
	}
}

func expenseFromAPI(e *tripapi.Expense, tripName string) (models.Expense, error) {
	if e == nil {
		return models.Expense{}, apperrors.Validation("expense is required")
	}
	date, err := models.ParseDate(e.Date)
	if err != nil {
		return models.Expense{}, &apperrors.Error{
			Kind:    apperrors.KindValidation,
			Message: "date must be YYYY-MM-DD",
			Cause:   err,
		}
	}

	if tripName == "" {
		tripName = e.TripName
	}
	return models.Expense{
		ID:        e.Id,
		TripName:  tripName,
		Date:      date,
		SpentBy:   e.SpentBy,
		Amount:    e.Amount,
		Reason:    e.Reason,
		Remarks:   e.Remarks,
		CreatedAt: e.CreatedAt,
	}, nil
}

func summaryToAPI(s calculator.Summary) *tripapi.Summary {
	return &tripapi.Summary{
		TotalExpense:        money(s.TotalExpense),
		FixedTotal:          money(s.FixedTotal),
		SharedPool:          money(s.SharedPool),
		SharePerParticipant: money(s.SharePerParticipant),
		FixedCount:          int32(s.FixedCount),
		SharedCount:         int32(s.SharedCount),
		Degenerate:          s.Degenerate,
	}
}

func balanceToAPI(b calculator.Balance) *tripapi.Balance {
	return &tripapi.Balance{
		Name:     b.Name,
		Mode:     b.Mode.String(),
		Spent:    money(b.Spent),
		Expected: money(b.Expected),
		Net:      money(b.Net),
	}
}

func suggestionToAPI(s calculator.PaymentSuggestion) *tripapi.PaymentSuggestion {
	return &tripapi.PaymentSuggestion{
		From:   s.From,
		To:     s.To,
		Amount: money(s.Amount),
	}
}
