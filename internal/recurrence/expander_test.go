package recurrence

import (
	"testing"
	"time"

	"github.com/slovko/tutor-admin/internal/model"
)

// expanderNow is a Monday afternoon; the expander must normalize it to local
// midnight before generating.
var expanderNow = time.Date(2025, time.March, 3, 15, 42, 7, 0, time.UTC)

func invitation(id int64, day int, startTime string) *model.RecurringInvitation {
	return &model.RecurringInvitation{
		ID:           id,
		TutorID:      7,
		StudentEmail: "student@example.com",
		StudentID:    "user_abc",
		DayOfWeek:    day,
		StartTime:    startTime,
		Duration:     60,
		Location:     "Online",
		Status:       model.InvitationStatusAccepted,
	}
}

func TestExpandInvitationsWednesdayFromMonday(t *testing.T) {
	occs := ExpandInvitations(expanderNow, []*model.RecurringInvitation{invitation(1, 3, "14:00")}, nil)
	if len(occs) == 0 {
		t.Fatal("expected occurrences")
	}

	first := occs[0]
	want := time.Date(2025, time.March, 5, 14, 0, 0, 0, time.UTC)
	if !first.StartTime.Equal(want) {
		t.Fatalf("first occurrence at %v, want %v", first.StartTime, want)
	}
	if first.Status != model.SessionStatusBooked {
		t.Fatalf("first occurrence status %q, want booked", first.Status)
	}
	if first.SessionType != model.SessionTypeRegular {
		t.Fatalf("session type %q, want regular", first.SessionType)
	}
	if first.Duration != 60 {
		t.Fatalf("duration %d, want 60", first.Duration)
	}
}

func TestExpandInvitationsWeekdayAndSpacing(t *testing.T) {
	for day := 0; day <= 6; day++ {
		occs := ExpandInvitations(expanderNow, []*model.RecurringInvitation{invitation(int64(day + 1), day, "09:00")}, nil)
		if len(occs) == 0 {
			t.Fatalf("day %d: expected occurrences", day)
		}
		for i, occ := range occs {
			if int(occ.StartTime.Weekday()) != day {
				t.Fatalf("day %d: occurrence %d falls on %v", day, i, occ.StartTime.Weekday())
			}
			if i > 0 {
				gap := occ.StartTime.Sub(occs[i-1].StartTime)
				if gap != 7*24*time.Hour {
					t.Fatalf("day %d: occurrences %d and %d are %v apart, want 168h", day, i-1, i, gap)
				}
			}
		}
	}
}

func TestExpandInvitationsTodayIsFirstOccurrence(t *testing.T) {
	// expanderNow is a Monday; a Monday invitation must start today, not in
	// a week.
	occs := ExpandInvitations(expanderNow, []*model.RecurringInvitation{invitation(1, 1, "18:30")}, nil)
	if len(occs) == 0 {
		t.Fatal("expected occurrences")
	}
	want := time.Date(2025, time.March, 3, 18, 30, 0, 0, time.UTC)
	if !occs[0].StartTime.Equal(want) {
		t.Fatalf("first occurrence at %v, want today at 18:30", occs[0].StartTime)
	}
}

func TestExpandInvitationsHorizon(t *testing.T) {
	horizonEnd := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	occs := ExpandInvitations(expanderNow, []*model.RecurringInvitation{invitation(1, 1, "09:00")}, nil)

	for _, occ := range occs {
		if !occ.StartTime.Before(horizonEnd) {
			t.Fatalf("occurrence %v beyond the three-month horizon", occ.StartTime)
		}
	}
	// Mondays from Mar 3 through Jun 2 inclusive.
	if len(occs) != 14 {
		t.Fatalf("expected 14 Monday occurrences within the horizon, got %d", len(occs))
	}
}

func TestExpandInvitationsCancellations(t *testing.T) {
	inv := invitation(4, 3, "14:00")
	cancellations := []model.SessionCancellation{
		// Second Wednesday, recorded with an arbitrary time of day; only the
		// calendar date may matter.
		{InvitationID: 4, CancelledDate: time.Date(2025, time.March, 12, 10, 30, 0, 0, time.UTC)},
		// Same date for a different invitation must not affect this one.
		{InvitationID: 99, CancelledDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)},
	}

	occs := ExpandInvitations(expanderNow, []*model.RecurringInvitation{inv}, cancellations)
	if len(occs) < 2 {
		t.Fatalf("expected at least two occurrences, got %d", len(occs))
	}

	for _, occ := range occs {
		wantStatus := model.SessionStatusBooked
		if occ.StartTime.Month() == time.March && occ.StartTime.Day() == 12 {
			wantStatus = model.SessionStatusCancelled
		}
		if occ.Status != wantStatus {
			t.Fatalf("occurrence %v has status %q, want %q", occ.StartTime, occ.Status, wantStatus)
		}
	}
}

func TestExpandInvitationsSyntheticIDs(t *testing.T) {
	invs := []*model.RecurringInvitation{
		invitation(1, 1, "09:00"),
		invitation(2, 1, "10:00"),
	}
	occs := ExpandInvitations(expanderNow, invs, nil)

	seen := make(map[int64]struct{}, len(occs))
	for _, occ := range occs {
		if occ.SyntheticID >= 0 {
			t.Fatalf("synthetic id %d must be negative", occ.SyntheticID)
		}
		if _, dup := seen[occ.SyntheticID]; dup {
			t.Fatalf("duplicate synthetic id %d", occ.SyntheticID)
		}
		seen[occ.SyntheticID] = struct{}{}
	}
}

func TestExpandInvitationsSkipsUnparseableStartTime(t *testing.T) {
	bad := invitation(1, 1, "not-a-time")
	good := invitation(2, 1, "09:00")

	occs := ExpandInvitations(expanderNow, []*model.RecurringInvitation{bad, good}, nil)
	for _, occ := range occs {
		if occ.InvitationID == 1 {
			t.Fatal("invitation with unparseable start time must be skipped")
		}
	}
	if len(occs) == 0 {
		t.Fatal("valid invitation should still expand")
	}
}
