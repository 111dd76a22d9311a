package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/recurrence"
	"github.com/slovko/tutor-admin/internal/repository"
)

type fakeClubStore struct {
	events   []*model.ClubEvent
	bookings []*model.ClubBooking
	nextID   int64
}

func (f *fakeClubStore) Create(_ context.Context, e *model.ClubEvent) error {
	f.nextID++
	e.ID = f.nextID
	copied := *e
	f.events = append(f.events, &copied)
	return nil
}

func (f *fakeClubStore) Update(_ context.Context, e *model.ClubEvent) error {
	for i, existing := range f.events {
		if existing.ID == e.ID {
			copied := *e
			f.events[i] = &copied
			return nil
		}
	}
	return nil
}

func (f *fakeClubStore) GetByID(_ context.Context, id int64) (*model.ClubEvent, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeClubStore) SearchByTheme(_ context.Context, theme string) ([]*model.ClubEvent, error) {
	return f.events, nil
}

func (f *fakeClubStore) Delete(_ context.Context, id int64) error {
	for _, b := range f.bookings {
		if b.EventID == id {
			return repository.ErrEventHasBookings
		}
	}
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeClubStore) ListBookings(_ context.Context, eventID int64) ([]*model.ClubBooking, error) {
	var out []*model.ClubBooking
	for _, b := range f.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeIdentity struct {
	profiles map[string]*Identity
}

func (f *fakeIdentity) Lookup(_ context.Context, userID string) (*Identity, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return profile, nil
}

func newClubFixture() (*ClubService, *fakeClubStore, *fakeIdentity) {
	store := &fakeClubStore{}
	identity := &fakeIdentity{profiles: map[string]*Identity{}}
	svc := NewClubService(store, identity, zap.NewNop())
	return svc, store, identity
}

func clubEvent(theme string, date time.Time) *model.ClubEvent {
	return &model.ClubEvent{
		Theme:     theme,
		Tutor:     "Olga",
		Date:      date,
		Price:     "15.00",
		Level:     "B1",
		Duration:  90,
		Location:  "Main hall",
		MaxBooked: 12,
	}
}

func TestAddEventValidation(t *testing.T) {
	svc, store, _ := newClubFixture()
	date := time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event *model.ClubEvent
	}{
		{"missing theme", &model.ClubEvent{Date: date, Duration: 60, MaxBooked: 10}},
		{"zero duration", &model.ClubEvent{Theme: "Movies", Date: date, MaxBooked: 10}},
		{"zero spots", &model.ClubEvent{Theme: "Movies", Date: date, Duration: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.AddEvent(context.Background(), tt.event); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("AddEvent() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	event := clubEvent("Movies", date)
	event.PeopleBooked = 5
	if err := svc.AddEvent(context.Background(), event); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("stored %d events, want 1", len(store.events))
	}
	if store.events[0].PeopleBooked != 0 {
		t.Errorf("new event people_booked = %d, want 0", store.events[0].PeopleBooked)
	}
}

func TestDeleteEventWithBookingsConflicts(t *testing.T) {
	svc, store, _ := newClubFixture()
	date := time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)

	if err := svc.AddEvent(context.Background(), clubEvent("Debate night", date)); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	eventID := store.events[0].ID
	store.bookings = []*model.ClubBooking{{ID: 1, EventID: eventID, UserID: "u-1"}}

	err := svc.DeleteEvent(context.Background(), eventID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("DeleteEvent() error = %v, want ErrConflict", err)
	}
	if len(store.events) != 1 {
		t.Error("event was deleted despite bookings")
	}

	store.bookings = nil
	if err := svc.DeleteEvent(context.Background(), eventID); err != nil {
		t.Fatalf("DeleteEvent() after bookings removed: error = %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), eventID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteEvent() on missing event: error = %v, want ErrNotFound", err)
	}
}

func TestAttendeesSkipsUnknownProfiles(t *testing.T) {
	svc, store, identity := newClubFixture()
	date := time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC)

	if err := svc.AddEvent(context.Background(), clubEvent("Karaoke", date)); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	eventID := store.events[0].ID
	store.bookings = []*model.ClubBooking{
		{ID: 1, EventID: eventID, UserID: "u-known", Status: model.ClubBookingStatusConfirmed},
		{ID: 2, EventID: eventID, UserID: "u-gone", Status: model.ClubBookingStatusConfirmed},
	}
	identity.profiles["u-known"] = &Identity{Name: "Kira", Email: "kira@example.com"}

	attendees, err := svc.Attendees(context.Background(), eventID)
	if err != nil {
		t.Fatalf("Attendees() error = %v", err)
	}
	if len(attendees) != 1 {
		t.Fatalf("got %d attendees, want 1 (unknown profile skipped)", len(attendees))
	}
	if attendees[0].Name != "Kira" || attendees[0].UserID != "u-known" {
		t.Errorf("attendee = %+v, want Kira / u-known", attendees[0])
	}

	if _, err := svc.Attendees(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Attendees() on missing event: error = %v, want ErrNotFound", err)
	}
}

func TestCreateEventSeries(t *testing.T) {
	svc, store, _ := newClubFixture()
	svc.clock = func() time.Time { return time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC) }

	base := clubEvent("Conversation club", time.Date(2025, 3, 5, 18, 30, 0, 0, time.UTC))
	pattern := recurrence.Pattern{
		Frequency:  recurrence.FrequencyWeekly,
		DaysOfWeek: []time.Weekday{time.Wednesday},
		Interval:   1,
	}
	start := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC)

	created, err := svc.CreateEventSeries(context.Background(), base, pattern, start, &end)
	if err != nil {
		t.Fatalf("CreateEventSeries() error = %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("created %d events, want 4 Wednesdays between Mar 5 and Mar 26", len(created))
	}
	for i, e := range created {
		if e.Date.Weekday() != time.Wednesday {
			t.Errorf("event %d on %s, want Wednesday", i, e.Date.Weekday())
		}
		if e.Date.Hour() != 18 || e.Date.Minute() != 30 {
			t.Errorf("event %d at %02d:%02d, want the base clock time 18:30", i, e.Date.Hour(), e.Date.Minute())
		}
	}
	if len(store.events) != 4 {
		t.Errorf("stored %d events, want 4", len(store.events))
	}
}

func TestCreateEventSeriesRejectsInvalidPattern(t *testing.T) {
	svc, _, _ := newClubFixture()
	svc.clock = func() time.Time { return time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC) }

	base := clubEvent("Board games", time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC))
	pattern := recurrence.Pattern{Frequency: recurrence.FrequencyWeekly, Interval: 1}

	_, err := svc.CreateEventSeries(context.Background(), base, pattern, base.Date, nil)
	if !errors.Is(err, recurrence.ErrInvalidPattern) {
		t.Errorf("CreateEventSeries() error = %v, want ErrInvalidPattern for weekly with no days", err)
	}
}
