package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/recurrence"
	"github.com/slovko/tutor-admin/internal/repository"
)

type ClubEventStore interface {
	Create(ctx context.Context, e *model.ClubEvent) error
	Update(ctx context.Context, e *model.ClubEvent) error
	GetByID(ctx context.Context, id int64) (*model.ClubEvent, error)
	SearchByTheme(ctx context.Context, theme string) ([]*model.ClubEvent, error)
	Delete(ctx context.Context, id int64) error
	ListBookings(ctx context.Context, eventID int64) ([]*model.ClubBooking, error)
}

// ClubService manages language-club events and their attendee lists.
type ClubService struct {
	events   ClubEventStore
	identity IdentityClient
	logger   *zap.Logger
	clock    func() time.Time
}

func NewClubService(events ClubEventStore, identity IdentityClient, logger *zap.Logger) *ClubService {
	return &ClubService{
		events:   events,
		identity: identity,
		logger:   logger,
		clock:    time.Now,
	}
}

func validateEvent(e *model.ClubEvent) error {
	if e.Theme == "" {
		return fmt.Errorf("%w: theme is required", ErrInvalidInput)
	}
	if e.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if e.MaxBooked <= 0 {
		return fmt.Errorf("%w: spots must be positive", ErrInvalidInput)
	}
	return nil
}

// AddEvent creates a new club event with an empty booking count.
func (s *ClubService) AddEvent(ctx context.Context, e *model.ClubEvent) error {
	if err := validateEvent(e); err != nil {
		return err
	}

	e.PeopleBooked = 0
	if err := s.events.Create(ctx, e); err != nil {
		return fmt.Errorf("add event: %w", err)
	}

	s.logger.Info("Club event added",
		zap.Int64("event_id", e.ID),
		zap.String("theme", e.Theme),
		zap.Time("date", e.Date),
	)

	return nil
}

// EditEvent rewrites an existing event.
func (s *ClubService) EditEvent(ctx context.Context, e *model.ClubEvent) error {
	if err := validateEvent(e); err != nil {
		return err
	}

	existing, err := s.events.GetByID(ctx, e.ID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.events.Update(ctx, e); err != nil {
		return fmt.Errorf("edit event: %w", err)
	}

	s.logger.Info("Club event edited", zap.Int64("event_id", e.ID))
	return nil
}

// GetEvent returns one event.
func (s *ClubService) GetEvent(ctx context.Context, id int64) (*model.ClubEvent, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// SearchEvents returns events matching a theme fragment.
func (s *ClubService) SearchEvents(ctx context.Context, theme string) ([]*model.ClubEvent, error) {
	return s.events.SearchByTheme(ctx, theme)
}

// DeleteEvent removes an event unless bookings still reference it.
func (s *ClubService) DeleteEvent(ctx context.Context, id int64) error {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return ErrNotFound
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventHasBookings) {
			return fmt.Errorf("%w: event is associated with a booking", ErrConflict)
		}
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("Club event deleted", zap.Int64("event_id", id))
	return nil
}

// Attendees returns an event's bookings with identity-provider profiles
// resolved. Profile lookups are best-effort: a user the provider no longer
// knows is skipped with a log line.
func (s *ClubService) Attendees(ctx context.Context, eventID int64) ([]model.ClubAttendee, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return nil, ErrNotFound
	}

	bookings, err := s.events.ListBookings(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	attendees := make([]model.ClubAttendee, 0, len(bookings))
	for _, booking := range bookings {
		profile, err := s.identity.Lookup(ctx, booking.UserID)
		if err != nil {
			s.logger.Warn("Failed to resolve attendee identity",
				zap.Int64("event_id", eventID),
				zap.String("user_id", booking.UserID),
				zap.Error(err))
			continue
		}

		attendees = append(attendees, model.ClubAttendee{
			UserID:     booking.UserID,
			Status:     booking.Status,
			Name:       profile.Name,
			Email:      profile.Email,
			CoverImage: profile.Image,
		})
	}

	return attendees, nil
}

// CreateEventSeries expands a base event over a recurrence pattern and
// creates one event per occurrence. Events already created are kept when a
// later insert fails.
func (s *ClubService) CreateEventSeries(ctx context.Context, base *model.ClubEvent, pattern recurrence.Pattern, start time.Time, end *time.Time) ([]*model.ClubEvent, error) {
	if err := validateEvent(base); err != nil {
		return nil, err
	}
	if err := pattern.Validate(s.clock()); err != nil {
		return nil, err
	}

	block := recurrence.Timeblock{
		Start: base.Date,
		End:   base.Date.Add(time.Duration(base.Duration) * time.Minute),
	}
	blocks, err := recurrence.Expand(block, pattern, start, end)
	if err != nil {
		return nil, err
	}

	created := make([]*model.ClubEvent, 0, len(blocks))
	for _, b := range blocks {
		event := *base
		event.ID = 0
		event.Date = b.Start
		event.PeopleBooked = 0

		if err := s.events.Create(ctx, &event); err != nil {
			s.logger.Error("Failed to create series event",
				zap.String("theme", base.Theme),
				zap.Time("date", b.Start),
				zap.Error(err))
			continue
		}
		created = append(created, &event)
	}

	s.logger.Info("Club event series created",
		zap.String("theme", base.Theme),
		zap.Int("events", len(created)),
	)

	return created, nil
}
