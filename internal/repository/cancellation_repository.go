package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slovko/tutor-admin/internal/model"
)

// CancellationRepository stores one-off skips of invitation occurrences.
type CancellationRepository struct {
	pool *pgxpool.Pool
}

func NewCancellationRepository(pool *pgxpool.Pool) *CancellationRepository {
	return &CancellationRepository{pool: pool}
}

// Create records a cancelled occurrence date. Recording the same date twice
// is a no-op.
func (r *CancellationRepository) Create(ctx context.Context, c model.SessionCancellation) error {
	query := `
		INSERT INTO session_cancellations (invitation_id, cancelled_date)
		VALUES ($1, $2)
		ON CONFLICT (invitation_id, cancelled_date) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, c.InvitationID, c.CancelledDate); err != nil {
		return fmt.Errorf("create session cancellation: %w", err)
	}
	return nil
}

// ListByTutor returns cancellations for all of a tutor's invitations.
func (r *CancellationRepository) ListByTutor(ctx context.Context, tutorID int64) ([]model.SessionCancellation, error) {
	query := `
		SELECT sc.invitation_id, sc.cancelled_date
		FROM session_cancellations sc
		JOIN recurring_invitations ri ON ri.id = sc.invitation_id
		WHERE ri.tutor_id = $1
	`

	rows, err := r.pool.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list session cancellations: %w", err)
	}
	defer rows.Close()

	var cancellations []model.SessionCancellation
	for rows.Next() {
		var c model.SessionCancellation
		if err := rows.Scan(&c.InvitationID, &c.CancelledDate); err != nil {
			return nil, fmt.Errorf("scan session cancellation: %w", err)
		}
		cancellations = append(cancellations, c)
	}

	return cancellations, rows.Err()
}

// DeleteBefore removes cancellations dated before the cutoff. Past dates are
// never read by the expander, so they are dead weight.
func (r *CancellationRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM session_cancellations WHERE cancelled_date < $1`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete past session cancellations: %w", err)
	}
	return tag.RowsAffected(), nil
}
