package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository/base"
)

// SessionRepository manages persisted session timeblocks and the aggregate
// queries built on them.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, tutor_id, student_id, start_time, duration_minutes, status, session_type, location, price_cents, created_at`

func scanSession(row pgx.Row) (*model.Session, error) {
	s := &model.Session{}
	err := row.Scan(
		&s.ID,
		&s.TutorID,
		&s.StudentID,
		&s.StartTime,
		&s.Duration,
		&s.Status,
		&s.SessionType,
		&s.Location,
		&s.Price,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a session.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions (tutor_id, student_id, start_time, duration_minutes, status, session_type, location, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		s.TutorID,
		s.StudentID,
		s.StartTime,
		s.Duration,
		s.Status,
		s.SessionType,
		s.Location,
		s.Price,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// GetByID returns a session, or nil when absent.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	s, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session by id: %w", err)
	}
	return s, nil
}

// ListByTutor returns the tutor's sessions within [from, to).
func (r *SessionRepository) ListByTutor(ctx context.Context, tutorID int64, from, to time.Time) ([]*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE tutor_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, tutorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions by tutor: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// UpdateStatus changes a session's status.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) error {
	query := `UPDATE sessions SET status = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, status); err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	return nil
}

// TutorHoursRow is one line of the team-hours report: totals for one tutor
// and one session type.
type TutorHoursRow struct {
	TutorID      int64
	TutorName    string
	TutorEmail   string
	TutorColor   string
	SessionType  model.SessionType
	TotalMinutes int
	SessionCount int
}

// ReportHoursByType aggregates past booked sessions per tutor and session
// type, ordered by tutor name then session type.
func (r *SessionRepository) ReportHoursByType(ctx context.Context, before time.Time) ([]TutorHoursRow, error) {
	query := `
		SELECT t.id, t.name, t.email, t.color, s.session_type,
		       SUM(s.duration_minutes)::int, COUNT(*)::int
		FROM sessions s
		JOIN tutors t ON t.id = s.tutor_id
		WHERE s.status = $1 AND s.start_time < $2
		GROUP BY t.id, t.name, t.email, t.color, s.session_type
		ORDER BY t.name, s.session_type
	`

	rows, err := r.pool.Query(ctx, query, model.SessionStatusBooked, before)
	if err != nil {
		return nil, fmt.Errorf("report tutor hours: %w", err)
	}
	defer rows.Close()

	var report []TutorHoursRow
	for rows.Next() {
		var row TutorHoursRow
		err := rows.Scan(
			&row.TutorID,
			&row.TutorName,
			&row.TutorEmail,
			&row.TutorColor,
			&row.SessionType,
			&row.TotalMinutes,
			&row.SessionCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutor hours row: %w", err)
		}
		report = append(report, row)
	}

	return report, rows.Err()
}
