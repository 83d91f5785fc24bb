package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/tripsplit/internal/apperrors"
	"github.com/mmynk/tripsplit/internal/models"
)

// CreateTrip persists a new trip to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if err := trip.Validate(); err != nil {
		return err
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		taken, err := exists(ctx, tx, "SELECT 1 FROM trips WHERE name = ?", trip.Name)
		if err != nil {
			return fmt.Errorf("failed to check trip existence: %w", err)
		}
		if taken {
			return apperrors.Duplicate("trip already exists: %s", trip.Name)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO trips (name, start_km, end_km, created_at) VALUES (?, ?, ?, ?)",
			trip.Name, trip.StartKM, trip.EndKM, trip.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}
		return nil
	})
}

// GetTrip retrieves a trip by name.
func (s *SQLiteStore) GetTrip(ctx context.Context, name string) (*models.Trip, error) {
	return getTrip(ctx, s.db, name)
}

func getTrip(ctx context.Context, q querier, name string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := q.QueryRowContext(ctx,
		"SELECT name, start_km, end_km, created_at FROM trips WHERE name = ?",
		name,
	).Scan(&trip.Name, &trip.StartKM, &trip.EndKM, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("trip not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// ListTrips retrieves all trips ordered by name.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, start_km, end_km, created_at FROM trips ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip := &models.Trip{}
		if err := rows.Scan(&trip.Name, &trip.StartKM, &trip.EndKM, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return trips, nil
}

// UpdateTripDistance records the odometer readings for a trip.
func (s *SQLiteStore) UpdateTripDistance(ctx context.Context, name string, startKM, endKM int64) error {
	check := models.Trip{Name: name, StartKM: startKM, EndKM: endKM}
	if err := check.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE trips SET start_km = ?, end_km = ? WHERE name = ?",
		startKM, endKM, name,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip distance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound("trip not found: %s", name)
	}
	return nil
}

// DeleteTrip removes a trip and everything it owns.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, name string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireTrip(ctx, tx, name); err != nil {
			return err
		}

		// Expenses first: they reference participants.
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_name = ?", name); err != nil {
			return fmt.Errorf("failed to delete expenses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE trip_name = ?", name); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE name = ?", name); err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}
		return nil
	})
}
