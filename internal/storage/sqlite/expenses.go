package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/apperrors"
	"github.com/mmynk/tripsplit/internal/models"
)

// AddExpense persists a new expense. The spender must already be on the
// trip's roster; otherwise the expense is rejected instead of silently
// inflating the shared pool.
func (s *SQLiteStore) AddExpense(ctx context.Context, e *models.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireTrip(ctx, tx, e.TripName); err != nil {
			return err
		}
		return insertExpense(ctx, tx, e)
	})
}

func insertExpense(ctx context.Context, q querier, e *models.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	known, err := exists(ctx, q,
		"SELECT 1 FROM participants WHERE trip_name = ? AND name = ?",
		e.TripName, e.SpentBy,
	)
	if err != nil {
		return fmt.Errorf("failed to check spender: %w", err)
	}
	if !known {
		return apperrors.Validation("spent_by %q is not a participant of trip %q", e.SpentBy, e.TripName)
	}

	// IDs are unique across trips. A caller-supplied ID already used by
	// another trip is replaced; one already used in this trip is a clash.
	if e.ID != "" {
		var owner string
		err := q.QueryRowContext(ctx, "SELECT trip_name FROM expenses WHERE id = ?", e.ID).Scan(&owner)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to check expense id: %w", err)
		case owner == e.TripName:
			return apperrors.Duplicate("expense %q already exists in trip %q", e.ID, e.TripName)
		default:
			e.ID = ""
		}
	}

	// Generate ID if not set
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	var remarks any = nil
	if e.Remarks != "" {
		remarks = e.Remarks
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_name, date, spent_by, amount, reason, remarks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TripName, e.Date.Format(models.DateLayout), e.SpentBy,
		e.Amount.String(), e.Reason, remarks, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ListExpenses retrieves all expenses for a trip ordered by date.
func (s *SQLiteStore) ListExpenses(ctx context.Context, tripName string) ([]*models.Expense, error) {
	if err := requireTrip(ctx, s.db, tripName); err != nil {
		return nil, err
	}
	return listExpenses(ctx, s.db, tripName)
}

func listExpenses(ctx context.Context, q querier, tripName string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, trip_name, date, spent_by, amount, reason, remarks, created_at
		 FROM expenses WHERE trip_name = ? ORDER BY date, created_at, rowid`,
		tripName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var date string
		var remarks sql.NullString

		if err := rows.Scan(&e.ID, &e.TripName, &date, &e.SpentBy,
			&e.Amount, &e.Reason, &remarks, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		e.Date, err = models.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("expense %s has invalid date %q: %w", e.ID, date, err)
		}
		if remarks.Valid {
			e.Remarks = remarks.String
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripName, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE trip_name = ? AND id = ?",
		tripName, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound("expense not found: %s", id)
	}

	return nil
}
