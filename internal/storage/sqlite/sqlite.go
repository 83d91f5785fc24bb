// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/apperrors"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so they go in the DSN.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Writes are serialized; last write wins.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing on success.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// exists runs a SELECT 1 query and reports whether it matched a row.
func exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func requireTrip(ctx context.Context, q querier, tripName string) error {
	ok, err := exists(ctx, q, "SELECT 1 FROM trips WHERE name = ?", tripName)
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	if !ok {
		return apperrors.NotFound("trip not found: %s", tripName)
	}
	return nil
}

// LoadSnapshot reads a trip, its roster and its ledger inside one transaction.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, tripName string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		trip, err := getTrip(ctx, tx, tripName)
		if err != nil {
			return err
		}
		snapshot.Trip = *trip

		participants, err := listParticipants(ctx, tx, tripName)
		if err != nil {
			return err
		}
		for _, p := range participants {
			snapshot.Participants = append(snapshot.Participants, *p)
		}

		expenses, err := listExpenses(ctx, tx, tripName)
		if err != nil {
			return err
		}
		for _, e := range expenses {
			snapshot.Expenses = append(snapshot.Expenses, *e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ReplaceSnapshot swaps a trip's roster and ledger for the snapshot's.
// The trip row is created or updated; nothing changes if any record fails.
// Expense IDs already owned by another trip are replaced with fresh ones.
func (s *SQLiteStore) ReplaceSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if err := snapshot.Trip.Validate(); err != nil {
		return err
	}
	now := time.Now().Unix()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		tripName := snapshot.Trip.Name
		createdAt := snapshot.Trip.CreatedAt
		if createdAt == 0 {
			createdAt = now
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO trips (name, start_km, end_km, created_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET start_km = excluded.start_km, end_km = excluded.end_km`,
			tripName, snapshot.Trip.StartKM, snapshot.Trip.EndKM, createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert trip: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_name = ?", tripName); err != nil {
			return fmt.Errorf("failed to clear expenses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE trip_name = ?", tripName); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}

		for i := range snapshot.Participants {
			p := &snapshot.Participants[i]
			p.TripName = tripName
			if p.CreatedAt == 0 {
				p.CreatedAt = now
			}
			if err := insertParticipant(ctx, tx, p); err != nil {
				return err
			}
		}
		for i := range snapshot.Expenses {
			e := &snapshot.Expenses[i]
			e.TripName = tripName
			if e.CreatedAt == 0 {
				e.CreatedAt = now
			}
			if err := insertExpense(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}
