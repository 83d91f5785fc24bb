package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/apperrors"
	"github.com/mmynk/tripsplit/internal/models"
)

// AddParticipant inserts a new participant into an existing trip.
func (s *SQLiteStore) AddParticipant(ctx context.Context, p *models.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireTrip(ctx, tx, p.TripName); err != nil {
			return err
		}
		return insertParticipant(ctx, tx, p)
	})
}

func insertParticipant(ctx context.Context, q querier, p *models.Participant) error {
	if err := p.Validate(); err != nil {
		return err
	}

	taken, err := exists(ctx, q,
		"SELECT 1 FROM participants WHERE trip_name = ? AND name = ?",
		p.TripName, p.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to check participant existence: %w", err)
	}
	if taken {
		return apperrors.Duplicate("participant %q already exists in trip %q", p.Name, p.TripName)
	}

	fixedAmount := decimal.Zero
	if p.Contribution.IsFixed() {
		fixedAmount = p.Contribution.FixedAmount
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO participants (trip_name, name, contact, mode, fixed_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.TripName, p.Name, p.Contact, p.Contribution.Mode.String(), fixedAmount.String(), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// ListParticipants retrieves a trip's roster in insertion order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, tripName string) ([]*models.Participant, error) {
	if err := requireTrip(ctx, s.db, tripName); err != nil {
		return nil, err
	}
	return listParticipants(ctx, s.db, tripName)
}

func listParticipants(ctx context.Context, q querier, tripName string) ([]*models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT trip_name, name, contact, mode, fixed_amount, created_at
		 FROM participants WHERE trip_name = ? ORDER BY created_at, rowid`,
		tripName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		var mode string
		var fixedAmount decimal.Decimal
		if err := rows.Scan(&p.TripName, &p.Name, &p.Contact, &mode, &fixedAmount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}

		m, err := models.ParseContributionMode(mode)
		if err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.Name, err)
		}
		if m == models.ModeFixed {
			p.Contribution = models.Fixed(fixedAmount)
		} else {
			p.Contribution = models.Shared()
		}

		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// DeleteParticipant removes a participant with no recorded expenses.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, tripName, name string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		found, err := exists(ctx, tx,
			"SELECT 1 FROM participants WHERE trip_name = ? AND name = ?",
			tripName, name,
		)
		if err != nil {
			return fmt.Errorf("failed to check participant existence: %w", err)
		}
		if !found {
			return apperrors.NotFound("participant %q not found in trip %q", name, tripName)
		}

		var refs int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM expenses WHERE trip_name = ? AND spent_by = ?",
			tripName, name,
		).Scan(&refs)
		if err != nil {
			return fmt.Errorf("failed to count participant expenses: %w", err)
		}
		if refs > 0 {
			return apperrors.ReferentialIntegrity("participant %q has %d expense(s) recorded", name, refs)
		}

		_, err = tx.ExecContext(ctx,
			"DELETE FROM participants WHERE trip_name = ? AND name = ?",
			tripName, name,
		)
		if err != nil {
			return fmt.Errorf("failed to delete participant: %w", err)
		}
		return nil
	})
}
