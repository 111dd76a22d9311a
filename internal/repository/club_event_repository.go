package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository/base"
)

// ErrEventHasBookings is returned when deleting an event that bookings still
// reference.
var ErrEventHasBookings = errors.New("event is associated with a booking")

// ClubEventRepository manages language-club events and their bookings.
type ClubEventRepository struct {
	pool *pgxpool.Pool
}

func NewClubEventRepository(pool *pgxpool.Pool) *ClubEventRepository {
	return &ClubEventRepository{pool: pool}
}

const clubEventColumns = `id, theme, tutor, date, description, price, level, duration_minutes, location, people_booked, max_booked, created_at`

func scanClubEvent(row pgx.Row) (*model.ClubEvent, error) {
	e := &model.ClubEvent{}
	err := row.Scan(
		&e.ID,
		&e.Theme,
		&e.Tutor,
		&e.Date,
		&e.Description,
		&e.Price,
		&e.Level,
		&e.Duration,
		&e.Location,
		&e.PeopleBooked,
		&e.MaxBooked,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a club event.
func (r *ClubEventRepository) Create(ctx context.Context, e *model.ClubEvent) error {
	query := `
		INSERT INTO club_events (theme, tutor, date, description, price, level, duration_minutes, location, people_booked, max_booked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		e.Theme,
		e.Tutor,
		e.Date,
		e.Description,
		e.Price,
		e.Level,
		e.Duration,
		e.Location,
		e.PeopleBooked,
		e.MaxBooked,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		return fmt.Errorf("create club event: %w", err)
	}

	return nil
}

// Update rewrites an event's editable fields.
func (r *ClubEventRepository) Update(ctx context.Context, e *model.ClubEvent) error {
	query := `
		UPDATE club_events
		SET theme = $2, tutor = $3, date = $4, description = $5, price = $6, level = $7,
		    duration_minutes = $8, location = $9, max_booked = $10
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, e.ID, e.Theme, e.Tutor, e.Date, e.Description, e.Price, e.Level, e.Duration, e.Location, e.MaxBooked); err != nil {
		return fmt.Errorf("update club event: %w", err)
	}
	return nil
}

// GetByID returns an event, or nil when absent.
func (r *ClubEventRepository) GetByID(ctx context.Context, id int64) (*model.ClubEvent, error) {
	query := `SELECT ` + clubEventColumns + ` FROM club_events WHERE id = $1`

	e, err := scanClubEvent(r.pool.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get club event by id: %w", err)
	}
	return e, nil
}

// SearchByTheme returns events whose theme contains the given fragment,
// case-insensitively. An empty fragment matches everything.
func (r *ClubEventRepository) SearchByTheme(ctx context.Context, theme string) ([]*model.ClubEvent, error) {
	query := `
		SELECT ` + clubEventColumns + `
		FROM club_events
		WHERE theme ILIKE '%' || $1 || '%'
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, theme)
	if err != nil {
		return nil, fmt.Errorf("search club events: %w", err)
	}
	defer rows.Close()

	var events []*model.ClubEvent
	for rows.Next() {
		e, err := scanClubEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan club event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Delete removes an event. Events still referenced by bookings are refused
// with ErrEventHasBookings rather than cascading.
func (r *ClubEventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM club_events WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		if base.IsForeignKeyViolation(err) {
			return ErrEventHasBookings
		}
		return fmt.Errorf("delete club event: %w", err)
	}
	return nil
}

// ListBookings returns the bookings for one event.
func (r *ClubEventRepository) ListBookings(ctx context.Context, eventID int64) ([]*model.ClubBooking, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.status, b.created_at
		FROM club_bookings b
		JOIN club_events e ON e.id = b.event_id
		WHERE e.id = $1
		ORDER BY b.created_at
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list club bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.ClubBooking
	for rows.Next() {
		b := &model.ClubBooking{}
		if err := rows.Scan(&b.ID, &b.EventID, &b.UserID, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan club booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
