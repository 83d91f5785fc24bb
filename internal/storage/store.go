// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Store defines the interface for trip, roster and ledger persistence.
// This abstraction allows swapping storage backends without changing the
// service layer.
//
// Errors are categorized with the apperrors kinds: NotFound for missing
// records, Duplicate for name clashes, Validation for records that would
// break a data model rule, ReferentialIntegrity for blocked deletes.
type Store interface {
	// CreateTrip persists a new trip. CreatedAt is populated by the store.
	// Fails with a duplicate error if the name is taken.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip by name.
	GetTrip(ctx context.Context, name string) (*models.Trip, error)

	// ListTrips returns every trip ordered by name.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// UpdateTripDistance records the odometer readings of a trip.
	UpdateTripDistance(ctx context.Context, name string, startKM, endKM int64) error

	// DeleteTrip removes a trip together with its participants and expenses.
	DeleteTrip(ctx context.Context, name string) error

	// AddParticipant adds a participant to an existing trip.
	AddParticipant(ctx context.Context, p *models.Participant) error

	// ListParticipants returns a trip's roster in insertion order.
	ListParticipants(ctx context.Context, tripName string) ([]*models.Participant, error)

	// DeleteParticipant removes a participant. Fails with a referential
	// integrity error while any expense is recorded against them.
	DeleteParticipant(ctx context.Context, tripName, name string) error

	// AddExpense records an expense. ID and CreatedAt are populated by the
	// store. The spender must be on the trip's roster.
	AddExpense(ctx context.Context, e *models.Expense) error

	// ListExpenses returns a trip's ledger ordered by date.
	ListExpenses(ctx context.Context, tripName string) ([]*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, tripName, id string) error

	// LoadSnapshot reads a trip with its full roster and ledger in one
	// consistent read.
	LoadSnapshot(ctx context.Context, tripName string) (*models.Snapshot, error)

	// ReplaceSnapshot atomically replaces a trip's roster and ledger,
	// creating the trip if it does not exist. Expense IDs owned by another
	// trip are reassigned; an ID repeated within the snapshot is a duplicate.
	ReplaceSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
