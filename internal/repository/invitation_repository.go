package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository/base"
)

// InvitationRepository manages recurring session invitations.
type InvitationRepository struct {
	pool *pgxpool.Pool
}

func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{pool: pool}
}

const invitationColumns = `id, tutor_id, student_email, student_id, day_of_week, start_time, duration_minutes,
		location, description, color, status, token, created_at, updated_at`

func scanInvitation(row pgx.Row) (*model.RecurringInvitation, error) {
	inv := &model.RecurringInvitation{}
	err := row.Scan(
		&inv.ID,
		&inv.TutorID,
		&inv.StudentEmail,
		&inv.StudentID,
		&inv.DayOfWeek,
		&inv.StartTime,
		&inv.Duration,
		&inv.Location,
		&inv.Description,
		&inv.Color,
		&inv.Status,
		&inv.Token,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Create inserts a new invitation.
func (r *InvitationRepository) Create(ctx context.Context, inv *model.RecurringInvitation) error {
	query := `
		INSERT INTO recurring_invitations
			(tutor_id, student_email, student_id, day_of_week, start_time, duration_minutes, location, description, color, status, token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		inv.TutorID,
		inv.StudentEmail,
		inv.StudentID,
		inv.DayOfWeek,
		inv.StartTime,
		inv.Duration,
		inv.Location,
		inv.Description,
		inv.Color,
		inv.Status,
		inv.Token,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create recurring invitation: %w", err)
	}

	return nil
}

// ExistsByKey reports whether an invitation with the given natural key
// exists, regardless of its status.
func (r *InvitationRepository) ExistsByKey(ctx context.Context, key model.InvitationKey) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM recurring_invitations
			WHERE tutor_id = $1 AND student_email = $2 AND day_of_week = $3 AND start_time = $4
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, key.TutorID, key.StudentEmail, key.DayOfWeek, key.StartTime).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invitation exists: %w", err)
	}

	return exists, nil
}

// ListByTutor returns all of a tutor's invitations ordered by day and time.
func (r *InvitationRepository) ListByTutor(ctx context.Context, tutorID int64) ([]*model.RecurringInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM recurring_invitations
		WHERE tutor_id = $1
		ORDER BY day_of_week, start_time
	`

	return r.list(ctx, query, tutorID)
}

// ListAcceptedByTutor returns the tutor's accepted invitations ordered by
// day and time.
func (r *InvitationRepository) ListAcceptedByTutor(ctx context.Context, tutorID int64) ([]*model.RecurringInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM recurring_invitations
		WHERE tutor_id = $1 AND status = $2
		ORDER BY day_of_week, start_time
	`

	return r.list(ctx, query, tutorID, model.InvitationStatusAccepted)
}

func (r *InvitationRepository) list(ctx context.Context, query string, args ...any) ([]*model.RecurringInvitation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recurring invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*model.RecurringInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// GetByID returns an invitation by id, or nil when absent.
func (r *InvitationRepository) GetByID(ctx context.Context, id int64) (*model.RecurringInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM recurring_invitations WHERE id = $1`

	inv, err := scanInvitation(r.pool.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring invitation by id: %w", err)
	}
	return inv, nil
}

// GetByToken returns the invitation carrying the opaque token, or nil.
func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*model.RecurringInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM recurring_invitations WHERE token = $1`

	inv, err := scanInvitation(r.pool.QueryRow(ctx, query, token))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring invitation by token: %w", err)
	}
	return inv, nil
}

// UpdateStatus changes an invitation's status.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id int64, status model.InvitationStatus) error {
	query := `UPDATE recurring_invitations SET status = $2, updated_at = now() WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, status); err != nil {
		return fmt.Errorf("update invitation status: %w", err)
	}
	return nil
}
