// Package tripapiconnect wires the tripsplit.v1.TripService messages to
// Connect handlers and clients. Messages travel as JSON over the Connect
// protocol, so any Connect or plain HTTP/JSON client can call the service.
package tripapiconnect

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/tripapi"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripsplit.v1.TripService"

// Procedure paths of the TripService RPCs.
const (
	TripServiceCreateTripProcedure         = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceListTripsProcedure          = "/tripsplit.v1.TripService/ListTrips"
	TripServiceGetTripProcedure            = "/tripsplit.v1.TripService/GetTrip"
	TripServiceUpdateTripDistanceProcedure = "/tripsplit.v1.TripService/UpdateTripDistance"
	TripServiceDeleteTripProcedure         = "/tripsplit.v1.TripService/DeleteTrip"
	TripServiceAddParticipantProcedure     = "/tripsplit.v1.TripService/AddParticipant"
	TripServiceListParticipantsProcedure   = "/tripsplit.v1.TripService/ListParticipants"
	TripServiceDeleteParticipantProcedure  = "/tripsplit.v1.TripService/DeleteParticipant"
	TripServiceAddExpenseProcedure         = "/tripsplit.v1.TripService/AddExpense"
	TripServiceListExpensesProcedure       = "/tripsplit.v1.TripService/ListExpenses"
	TripServiceDeleteExpenseProcedure      = "/tripsplit.v1.TripService/DeleteExpense"
	TripServiceGetReportProcedure          = "/tripsplit.v1.TripService/GetReport"
	TripServiceExportTripProcedure         = "/tripsplit.v1.TripService/ExportTrip"
	TripServiceImportTripProcedure         = "/tripsplit.v1.TripService/ImportTrip"
)

// jsonCodec marshals plain Go structs; it replaces Connect's default
// protojson codec under the same "json" name.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// TripServiceHandler is implemented by the server side of the TripService.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.CreateTripResponse], error)
	ListTrips(context.Context, *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error)
	GetTrip(context.Context, *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.GetTripResponse], error)
	UpdateTripDistance(context.Context, *connect.Request[tripapi.UpdateTripDistanceRequest]) (*connect.Response[tripapi.UpdateTripDistanceResponse], error)
	DeleteTrip(context.Context, *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error)
	AddParticipant(context.Context, *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.AddParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[tripapi.ListParticipantsRequest]) (*connect.Response[tripapi.ListParticipantsResponse], error)
	DeleteParticipant(context.Context, *connect.Request[tripapi.DeleteParticipantRequest]) (*connect.Response[tripapi.DeleteParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[tripapi.ListExpensesRequest]) (*connect.Response[tripapi.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[tripapi.DeleteExpenseRequest]) (*connect.Response[tripapi.DeleteExpenseResponse], error)
	GetReport(context.Context, *connect.Request[tripapi.GetReportRequest]) (*connect.Response[tripapi.GetReportResponse], error)
	ExportTrip(context.Context, *connect.Request[tripapi.ExportTripRequest]) (*connect.Response[tripapi.ExportTripResponse], error)
	ImportTrip(context.Context, *connect.Request[tripapi.ImportTripRequest]) (*connect.Response[tripapi.ImportTripResponse], error)
}

// NewTripServiceHandler builds an HTTP handler for svc. It returns the path
// prefix to mount the handler on.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(TripServiceListTripsProcedure, connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(TripServiceUpdateTripDistanceProcedure, connect.NewUnaryHandler(TripServiceUpdateTripDistanceProcedure, svc.UpdateTripDistance, opts...))
	mux.Handle(TripServiceDeleteTripProcedure, connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...))
	mux.Handle(TripServiceAddParticipantProcedure, connect.NewUnaryHandler(TripServiceAddParticipantProcedure, svc.AddParticipant, opts...))
	mux.Handle(TripServiceListParticipantsProcedure, connect.NewUnaryHandler(TripServiceListParticipantsProcedure, svc.ListParticipants, opts...))
	mux.Handle(TripServiceDeleteParticipantProcedure, connect.NewUnaryHandler(TripServiceDeleteParticipantProcedure, svc.DeleteParticipant, opts...))
	mux.Handle(TripServiceAddExpenseProcedure, connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(TripServiceListExpensesProcedure, connect.NewUnaryHandler(TripServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(TripServiceDeleteExpenseProcedure, connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(TripServiceGetReportProcedure, connect.NewUnaryHandler(TripServiceGetReportProcedure, svc.GetReport, opts...))
	mux.Handle(TripServiceExportTripProcedure, connect.NewUnaryHandler(TripServiceExportTripProcedure, svc.ExportTrip, opts...))
	mux.Handle(TripServiceImportTripProcedure, connect.NewUnaryHandler(TripServiceImportTripProcedure, svc.ImportTrip, opts...))

	return "/" + TripServiceName + "/", mux
}

// TripServiceClient is a client for the TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.CreateTripResponse], error)
	ListTrips(context.Context, *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error)
	GetTrip(context.Context, *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.GetTripResponse], error)
	UpdateTripDistance(context.Context, *connect.Request[tripapi.UpdateTripDistanceRequest]) (*connect.Response[tripapi.UpdateTripDistanceResponse], error)
	DeleteTrip(context.Context, *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error)
	AddParticipant(context.Context, *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.AddParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[tripapi.ListParticipantsRequest]) (*connect.Response[tripapi.ListParticipantsResponse], error)
	DeleteParticipant(context.Context, *connect.Request[tripapi.DeleteParticipantRequest]) (*connect.Response[tripapi.DeleteParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[tripapi.ListExpensesRequest]) (*connect.Response[tripapi.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[tripapi.DeleteExpenseRequest]) (*connect.Response[tripapi.DeleteExpenseResponse], error)
	GetReport(context.Context, *connect.Request[tripapi.GetReportRequest]) (*connect.Response[tripapi.GetReportResponse], error)
	ExportTrip(context.Context, *connect.Request[tripapi.ExportTripRequest]) (*connect.Response[tripapi.ExportTripResponse], error)
	ImportTrip(context.Context, *connect.Request[tripapi.ImportTripRequest]) (*connect.Response[tripapi.ImportTripResponse], error)
}

// NewTripServiceClient builds a TripService client for the server at baseURL
// (e.g., "http://localhost:8080").
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &tripServiceClient{
		createTrip:         connect.NewClient[tripapi.CreateTripRequest, tripapi.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		listTrips:          connect.NewClient[tripapi.ListTripsRequest, tripapi.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		getTrip:            connect.NewClient[tripapi.GetTripRequest, tripapi.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		updateTripDistance: connect.NewClient[tripapi.UpdateTripDistanceRequest, tripapi.UpdateTripDistanceResponse](httpClient, baseURL+TripServiceUpdateTripDistanceProcedure, opts...),
		deleteTrip:         connect.NewClient[tripapi.DeleteTripRequest, tripapi.DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		addParticipant:     connect.NewClient[tripapi.AddParticipantRequest, tripapi.AddParticipantResponse](httpClient, baseURL+TripServiceAddParticipantProcedure, opts...),
		listParticipants:   connect.NewClient[tripapi.ListParticipantsRequest, tripapi.ListParticipantsResponse](httpClient, baseURL+TripServiceListParticipantsProcedure, opts...),
		deleteParticipant:  connect.NewClient[tripapi.DeleteParticipantRequest, tripapi.DeleteParticipantResponse](httpClient, baseURL+TripServiceDeleteParticipantProcedure, opts...),
		addExpense:         connect.NewClient[tripapi.AddExpenseRequest, tripapi.AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		listExpenses:       connect.NewClient[tripapi.ListExpensesRequest, tripapi.ListExpensesResponse](httpClient, baseURL+TripServiceListExpensesProcedure, opts...),
		deleteExpense:      connect.NewClient[tripapi.DeleteExpenseRequest, tripapi.DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opts...),
		getReport:          connect.NewClient[tripapi.GetReportRequest, tripapi.GetReportResponse](httpClient, baseURL+TripServiceGetReportProcedure, opts...),
		exportTrip:         connect.NewClient[tripapi.ExportTripRequest, tripapi.ExportTripResponse](httpClient, baseURL+TripServiceExportTripProcedure, opts...),
		importTrip:         connect.NewClient[tripapi.ImportTripRequest, tripapi.ImportTripResponse](httpClient, baseURL+TripServiceImportTripProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip         *connect.Client[tripapi.CreateTripRequest, tripapi.CreateTripResponse]
	listTrips          *connect.Client[tripapi.ListTripsRequest, tripapi.ListTripsResponse]
	getTrip            *connect.Client[tripapi.GetTripRequest, tripapi.GetTripResponse]
	updateTripDistance *connect.Client[tripapi.UpdateTripDistanceRequest, tripapi.UpdateTripDistanceResponse]
	deleteTrip         *connect.Client[tripapi.DeleteTripRequest, tripapi.DeleteTripResponse]
	addParticipant     *connect.Client[tripapi.AddParticipantRequest, tripapi.AddParticipantResponse]
	listParticipants   *connect.Client[tripapi.ListParticipantsRequest, tripapi.ListParticipantsResponse]
	deleteParticipant  *connect.Client[tripapi.DeleteParticipantRequest, tripapi.DeleteParticipantResponse]
	addExpense         *connect.Client[tripapi.AddExpenseRequest, tripapi.AddExpenseResponse]
	listExpenses       *connect.Client[tripapi.ListExpensesRequest, tripapi.ListExpensesResponse]
	deleteExpense      *connect.Client[tripapi.DeleteExpenseRequest, tripapi.DeleteExpenseResponse]
	getReport          *connect.Client[tripapi.GetReportRequest, tripapi.GetReportResponse]
	exportTrip         *connect.Client[tripapi.ExportTripRequest, tripapi.ExportTripResponse]
	importTrip         *connect.Client[tripapi.ImportTripRequest, tripapi.ImportTripResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateTripDistance(ctx context.Context, req *connect.Request[tripapi.UpdateTripDistanceRequest]) (*connect.Response[tripapi.UpdateTripDistanceResponse], error) {
	return c.updateTripDistance.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddParticipant(ctx context.Context, req *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListParticipants(ctx context.Context, req *connect.Request[tripapi.ListParticipantsRequest]) (*connect.Response[tripapi.ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteParticipant(ctx context.Context, req *connect.Request[tripapi.DeleteParticipantRequest]) (*connect.Response[tripapi.DeleteParticipantResponse], error) {
	return c.deleteParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListExpenses(ctx context.Context, req *connect.Request[tripapi.ListExpensesRequest]) (*connect.Response[tripapi.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[tripapi.DeleteExpenseRequest]) (*connect.Response[tripapi.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetReport(ctx context.Context, req *connect.Request[tripapi.GetReportRequest]) (*connect.Response[tripapi.GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}

func (c *tripServiceClient) ExportTrip(ctx context.Context, req *connect.Request[tripapi.ExportTripRequest]) (*connect.Response[tripapi.ExportTripResponse], error) {
	return c.exportTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ImportTrip(ctx context.Context, req *connect.Request[tripapi.ImportTripRequest]) (*connect.Response[tripapi.ImportTripResponse], error) {
	return c.importTrip.CallUnary(ctx, req)
}
