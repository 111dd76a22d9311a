package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository/base"
)

// TutorRepository manages tutor accounts.
type TutorRepository struct {
	pool *pgxpool.Pool
}

func NewTutorRepository(pool *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{pool: pool}
}

const tutorColumns = `id, auth_id, name, email, avatar, phone, bio, color, is_admin, is_activated, created_at`

func scanTutor(row pgx.Row) (*model.Tutor, error) {
	tutor := &model.Tutor{}
	err := row.Scan(
		&tutor.ID,
		&tutor.AuthID,
		&tutor.Name,
		&tutor.Email,
		&tutor.Avatar,
		&tutor.Phone,
		&tutor.Bio,
		&tutor.Color,
		&tutor.IsAdmin,
		&tutor.IsActivated,
		&tutor.CreatedAt,
	)
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tutor, nil
}

// Create inserts a new tutor account.
func (r *TutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	query := `
		INSERT INTO tutors (auth_id, name, email, avatar, phone, bio, color, is_admin, is_activated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		tutor.AuthID,
		tutor.Name,
		tutor.Email,
		tutor.Avatar,
		tutor.Phone,
		tutor.Bio,
		tutor.Color,
		tutor.IsAdmin,
		tutor.IsActivated,
	).Scan(&tutor.ID, &tutor.CreatedAt)

	if err != nil {
		return fmt.Errorf("create tutor: %w", err)
	}

	return nil
}

// GetByID returns a tutor by primary key, or nil when absent.
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*model.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = $1`

	tutor, err := scanTutor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get tutor by id: %w", err)
	}
	return tutor, nil
}

// GetByAuthID returns the tutor owning the given identity-provider user id,
// or nil when absent.
func (r *TutorRepository) GetByAuthID(ctx context.Context, authID string) (*model.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE auth_id = $1`

	tutor, err := scanTutor(r.pool.QueryRow(ctx, query, authID))
	if err != nil {
		return nil, fmt.Errorf("get tutor by auth id: %w", err)
	}
	return tutor, nil
}

// SetActivated flips the activation flag.
func (r *TutorRepository) SetActivated(ctx context.Context, id int64, activated bool) error {
	query := `UPDATE tutors SET is_activated = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, activated); err != nil {
		return fmt.Errorf("set tutor activated: %w", err)
	}
	return nil
}
