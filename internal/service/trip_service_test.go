package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/tripapi"
	"github.com/mmynk/tripsplit/pkg/tripapi/tripapiconnect"
)

// setupTestServer creates a TripService backed by a temporary database and
// returns a client talking to it over HTTP.
func setupTestServer(t *testing.T) tripapiconnect.TripServiceClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New()
	svc := NewTripService(store, m)

	interceptors := connect.WithInterceptors(
		middleware.RequestID(),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)
	path, handler := tripapiconnect.NewTripServiceHandler(svc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return tripapiconnect.NewTripServiceClient(http.DefaultClient, server.URL)
}

func createTrip(t *testing.T, client tripapiconnect.TripServiceClient, name string) {
	t.Helper()
	_, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateTrip(%q) failed: %v", name, err)
	}
}

func addParticipant(t *testing.T, client tripapiconnect.TripServiceClient, trip, name, fixedAmount string) {
	t.Helper()
	p := &tripapi.Participant{TripName: trip, Name: name, Mode: tripapi.ModeShared}
	if fixedAmount != "" {
		p.Mode = tripapi.ModeFixed
		p.FixedAmount = decimal.RequireFromString(fixedAmount)
	}
	_, err := client.AddParticipant(context.Background(), connect.NewRequest(&tripapi.AddParticipantRequest{Participant: p}))
	if err != nil {
		t.Fatalf("AddParticipant(%q) failed: %v", name, err)
	}
}

func addExpense(t *testing.T, client tripapiconnect.TripServiceClient, trip, spentBy, amount string) string {
	t.Helper()
	resp, err := client.AddExpense(context.Background(), connect.NewRequest(&tripapi.AddExpenseRequest{
		Expense: &tripapi.Expense{
			TripName: trip,
			Date:     "2024-03-01",
			SpentBy:  spentBy,
			Amount:   decimal.RequireFromString(amount),
			Reason:   "misc",
		},
	}))
	if err != nil {
		t.Fatalf("AddExpense(%s, %s) failed: %v", spentBy, amount, err)
	}
	return resp.Msg.Expense.Id
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}

func TestCreateTrip(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{
		Name:    "Goa",
		StartKm: 12000,
		EndKm:   12850,
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	if resp.Msg.Trip == nil {
		t.Fatal("expected trip in response")
	}
	if resp.Msg.Trip.Name != "Goa" {
		t.Errorf("name: expected 'Goa', got '%s'", resp.Msg.Trip.Name)
	}
	if resp.Msg.Trip.DistanceKm != 850 {
		t.Errorf("distance: expected 850, got %d", resp.Msg.Trip.DistanceKm)
	}
	if resp.Msg.Trip.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestCreateTripErrors(t *testing.T) {
	client := setupTestServer(t)
	createTrip(t, client, "Goa")

	t.Run("duplicate name", func(t *testing.T) {
		_, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{Name: "Goa"}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{
			Name:    "Backwards",
			StartKm: 500,
			EndKm:   100,
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestGetAndListTrips(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	createTrip(t, client, "Goa")
	createTrip(t, client, "Manali")

	getResp, err := client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{Name: "Manali"}))
	if err != nil {
		t.Fatalf("GetTrip failed: %v", err)
	}
	if getResp.Msg.Trip.Name != "Manali" {
		t.Errorf("expected 'Manali', got '%s'", getResp.Msg.Trip.Name)
	}

	listResp, err := client.ListTrips(ctx, connect.NewRequest(&tripapi.ListTripsRequest{}))
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(listResp.Msg.Trips) != 2 {
		t.Errorf("expected 2 trips, got %d", len(listResp.Msg.Trips))
	}

	_, err = client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{Name: "Nowhere"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestUpdateTripDistance(t *testing.T) {
	client := setupTestServer(t)
	createTrip(t, client, "Goa")

	resp, err := client.UpdateTripDistance(context.Background(), connect.NewRequest(&tripapi.UpdateTripDistanceRequest{
		Name:    "Goa",
		StartKm: 1000,
		EndKm:   1400,
	}))
	if err != nil {
		t.Fatalf("UpdateTripDistance failed: %v", err)
	}
	if resp.Msg.Trip.DistanceKm != 400 {
		t.Errorf("distance: expected 400, got %d", resp.Msg.Trip.DistanceKm)
	}
	if resp.Msg.Trip.CreatedAt == 0 {
		t.Error("expected CreatedAt to survive the update")
	}

	_, err = client.UpdateTripDistance(context.Background(), connect.NewRequest(&tripapi.UpdateTripDistanceRequest{
		Name:  "Unknown",
		EndKm: 10,
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteTrip(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	createTrip(t, client, "Goa")
	addParticipant(t, client, "Goa", "Family A", "")
	addExpense(t, client, "Goa", "Family A", "100")

	if _, err := client.DeleteTrip(ctx, connect.NewRequest(&tripapi.DeleteTripRequest{Name: "Goa"})); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	_, err := client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{Name: "Goa"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = client.DeleteTrip(ctx, connect.NewRequest(&tripapi.DeleteTripRequest{Name: "Goa"}))
	assertCode(t, err, connect.CodeNotFound)

	// The name is free again and the new trip starts empty.
	createTrip(t, client, "Goa")
	listResp, err := client.ListParticipants(ctx, connect.NewRequest(&tripapi.ListParticipantsRequest{TripName: "Goa"}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(listResp.Msg.Participants) != 0 {
		t.Errorf("expected empty roster after recreate, got %d", len(listResp.Msg.Participants))
	}
}

func TestGetReport(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	createTrip(t, client, "Goa")
	addParticipant(t, client, "Goa", "Family A", "500")
	addParticipant(t, client, "Goa", "Family B", "300")
	addParticipant(t, client, "Goa", "Family C", "")
	addParticipant(t, client, "Goa", "Family D", "")
	addExpense(t, client, "Goa", "Family C", "1500")
	addExpense(t, client, "Goa", "Family A", "500")

	resp, err := client.GetReport(ctx, connect.NewRequest(&tripapi.GetReportRequest{TripName: "Goa"}))
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}

	s := resp.Msg.Summary
	if s.TotalExpense != "2000.00" {
		t.Errorf("total: expected 2000.00, got %s", s.TotalExpense)
	}
	if s.FixedTotal != "800.00" {
		t.Errorf("fixed total: expected 800.00, got %s", s.FixedTotal)
	}
	if s.SharedPool != "1200.00" {
		t.Errorf("shared pool: expected 1200.00, got %s", s.SharedPool)
	}
	if s.SharePerParticipant != "600.00" {
		t.Errorf("share: expected 600.00, got %s", s.SharePerParticipant)
	}
	if s.Degenerate {
		t.Error("expected non-degenerate report")
	}

	wantNet := map[string]string{
		"Family A": "0.00",
		"Family B": "-300.00",
		"Family C": "900.00",
		"Family D": "-600.00",
	}
	if len(resp.Msg.Balances) != len(wantNet) {
		t.Fatalf("expected %d balances, got %d", len(wantNet), len(resp.Msg.Balances))
	}
	for _, b := range resp.Msg.Balances {
		if b.Net != wantNet[b.Name] {
			t.Errorf("%s net: expected %s, got %s", b.Name, wantNet[b.Name], b.Net)
		}
	}

	want := []tripapi.PaymentSuggestion{
		{From: "Family D", To: "Family C", Amount: "600.00"},
		{From: "Family B", To: "Family C", Amount: "300.00"},
	}
	if len(resp.Msg.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(resp.Msg.Suggestions))
	}
	for i, w := range want {
		if *resp.Msg.Suggestions[i] != w {
			t.Errorf("suggestion %d: expected %+v, got %+v", i, w, *resp.Msg.Suggestions[i])
		}
	}

	if !resp.Msg.Settled {
		t.Error("expected suggestions to settle every balance")
	}
	if resp.Msg.CostPerKm != "0.00" {
		t.Errorf("cost per km without distance: expected 0.00, got %s", resp.Msg.CostPerKm)
	}
}

func TestGetReportCostPerKm(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	_, err := client.CreateTrip(ctx, connect.NewRequest(&tripapi.CreateTripRequest{
		Name:    "Road Trip",
		StartKm: 100,
		EndKm:   500,
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	addParticipant(t, client, "Road Trip", "Asha", "")
	addParticipant(t, client, "Road Trip", "Ravi", "")
	addExpense(t, client, "Road Trip", "Asha", "1000")

	resp, err := client.GetReport(ctx, connect.NewRequest(&tripapi.GetReportRequest{TripName: "Road Trip"}))
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if resp.Msg.CostPerKm != "2.50" {
		t.Errorf("cost per km: expected 2.50, got %s", resp.Msg.CostPerKm)
	}
	if len(resp.Msg.Suggestions) != 1 || resp.Msg.Suggestions[0].Amount != "500.00" {
		t.Errorf("expected Ravi to pay Asha 500.00, got %+v", resp.Msg.Suggestions)
	}
}

func TestGetReportDegenerate(t *testing.T) {
	client := setupTestServer(t)

	createTrip(t, client, "Goa")
	addParticipant(t, client, "Goa", "Family A", "100")
	addExpense(t, client, "Goa", "Family A", "400")

	resp, err := client.GetReport(context.Background(), connect.NewRequest(&tripapi.GetReportRequest{TripName: "Goa"}))
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if !resp.Msg.Summary.Degenerate {
		t.Error("expected degenerate flag with no shared participants")
	}
	if resp.Msg.Summary.SharePerParticipant != "0.00" {
		t.Errorf("share: expected 0.00, got %s", resp.Msg.Summary.SharePerParticipant)
	}
	if resp.Msg.Settled {
		t.Error("expected unallocated pool to leave balances unsettled")
	}
}

func TestGetReportErrors(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	_, err := client.GetReport(ctx, connect.NewRequest(&tripapi.GetReportRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = client.GetReport(ctx, connect.NewRequest(&tripapi.GetReportRequest{TripName: "Nowhere"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestExportImportRoundTrip(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	createTrip(t, client, "Goa")
	addParticipant(t, client, "Goa", "Family A", "250.50")
	addParticipant(t, client, "Goa", "Family B", "")
	addExpense(t, client, "Goa", "Family B", "1000")

	exported, err := client.ExportTrip(ctx, connect.NewRequest(&tripapi.ExportTripRequest{TripName: "Goa"}))
	if err != nil {
		t.Fatalf("ExportTrip failed: %v", err)
	}
	if len(exported.Msg.Participants) != 2 || len(exported.Msg.Expenses) != 1 {
		t.Fatalf("export: expected 2 participants and 1 expense, got %d/%d",
			len(exported.Msg.Participants), len(exported.Msg.Expenses))
	}

	// The snapshot goes back unchanged apart from the trip name.
	trip := *exported.Msg.Trip
	trip.Name = "Goa Copy"
	imported, err := client.ImportTrip(ctx, connect.NewRequest(&tripapi.ImportTripRequest{
		Trip:         &trip,
		Participants: exported.Msg.Participants,
		Expenses:     exported.Msg.Expenses,
	}))
	if err != nil {
		t.Fatalf("ImportTrip failed: %v", err)
	}
	if imported.Msg.ParticipantCount != 2 || imported.Msg.ExpenseCount != 1 {
		t.Errorf("import counts: expected 2/1, got %d/%d",
			imported.Msg.ParticipantCount, imported.Msg.ExpenseCount)
	}

	original, err := client.GetReport(ctx, connect.NewRequest(&tripapi.GetReportRequest{TripName: "Goa"}))
	if err != nil {
		t.Fatalf("GetReport(Goa) failed: %v", err)
	}
	copied, err := client.GetReport(ctx, connect.NewRequest(&tripapi.GetReportRequest{TripName: "Goa Copy"}))
	if err != nil {
		t.Fatalf("GetReport(Goa Copy) failed: %v", err)
	}
	if *original.Msg.Summary != *copied.Msg.Summary {
		t.Errorf("summaries differ: %+v vs %+v", *original.Msg.Summary, *copied.Msg.Summary)
	}
}

func TestImportTripExpenseIDs(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	createTrip(t, client, "Goa")
	addParticipant(t, client, "Goa", "Family A", "")
	originalID := addExpense(t, client, "Goa", "Family A", "300")

	t.Run("ids owned by another trip get fresh ones", func(t *testing.T) {
		exported, err := client.ExportTrip(ctx, connect.NewRequest(&tripapi.ExportTripRequest{TripName: "Goa"}))
		if err != nil {
			t.Fatalf("ExportTrip failed: %v", err)
		}
		trip := *exported.Msg.Trip
		trip.Name = "Goa Copy"

		_, err = client.ImportTrip(ctx, connect.NewRequest(&tripapi.ImportTripRequest{
			Trip:         &trip,
			Participants: exported.Msg.Participants,
			Expenses:     exported.Msg.Expenses,
		}))
		if err != nil {
			t.Fatalf("ImportTrip failed: %v", err)
		}

		resp, err := client.ListExpenses(ctx, connect.NewRequest(&tripapi.ListExpensesRequest{TripName: "Goa Copy"}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 1 || resp.Msg.Expenses[0].Id == originalID {
			t.Errorf("expected one expense with a new ID, got %+v", resp.Msg.Expenses)
		}
	})

	t.Run("same trip keeps its ids", func(t *testing.T) {
		exported, err := client.ExportTrip(ctx, connect.NewRequest(&tripapi.ExportTripRequest{TripName: "Goa"}))
		if err != nil {
			t.Fatalf("ExportTrip failed: %v", err)
		}
		_, err = client.ImportTrip(ctx, connect.NewRequest(&tripapi.ImportTripRequest{
			Trip:         exported.Msg.Trip,
			Participants: exported.Msg.Participants,
			Expenses:     exported.Msg.Expenses,
		}))
		if err != nil {
			t.Fatalf("ImportTrip failed: %v", err)
		}

		resp, err := client.ListExpenses(ctx, connect.NewRequest(&tripapi.ListExpensesRequest{TripName: "Goa"}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 1 || resp.Msg.Expenses[0].Id != originalID {
			t.Errorf("expected ID %s to survive, got %+v", originalID, resp.Msg.Expenses)
		}
	})

	t.Run("repeated id in one snapshot", func(t *testing.T) {
		_, err := client.ImportTrip(ctx, connect.NewRequest(&tripapi.ImportTripRequest{
			Trip:         &tripapi.Trip{Name: "Coorg"},
			Participants: []*tripapi.Participant{{Name: "Asha", Mode: tripapi.ModeShared}},
			Expenses: []*tripapi.Expense{
				{Id: "same", Date: "2024-03-01", SpentBy: "Asha", Amount: decimal.NewFromInt(10)},
				{Id: "same", Date: "2024-03-02", SpentBy: "Asha", Amount: decimal.NewFromInt(20)},
			},
		}))
		assertCode(t, err, connect.CodeAlreadyExists)

		_, err = client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{Name: "Coorg"}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestImportTripRejectsInvalidSnapshot(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	createTrip(t, client, "Goa")
	addParticipant(t, client, "Goa", "Family A", "")

	_, err := client.ImportTrip(ctx, connect.NewRequest(&tripapi.ImportTripRequest{
		Trip: &tripapi.Trip{Name: "Goa"},
		Participants: []*tripapi.Participant{
			{Name: "Family B", Mode: tripapi.ModeShared},
		},
		Expenses: []*tripapi.Expense{
			{Date: "2024-03-01", SpentBy: "Stranger", Amount: decimal.NewFromInt(10)},
		},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	// The existing roster is untouched.
	resp, err := client.ListParticipants(ctx, connect.NewRequest(&tripapi.ListParticipantsRequest{TripName: "Goa"}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(resp.Msg.Participants) != 1 || resp.Msg.Participants[0].Name != "Family A" {
		t.Errorf("expected original roster, got %+v", resp.Msg.Participants)
	}

	_, err = client.ImportTrip(ctx, connect.NewRequest(&tripapi.ImportTripRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
