package recurrence

import (
	"time"

	"github.com/slovko/tutor-admin/internal/model"
)

// horizonMonths is the rolling window over which invitation occurrences are
// materialized.
const horizonMonths = 3

type cancellationKey struct {
	invitationID int64
	date         string // calendar date, "2006-01-02"
}

// ExpandInvitations turns accepted recurring invitations and their per-date
// cancellations into concrete occurrences between the local midnight of now
// and three months later, inclusive.
//
// For each invitation the first occurrence is the first date at or after
// today whose weekday matches; when today itself matches, today is the first
// occurrence. Subsequent occurrences follow in fixed 7-day steps. An
// occurrence whose (invitation, calendar date) pair appears in cancellations
// is emitted with status cancelled rather than dropped.
//
// The function is pure: it reads no clocks and touches no storage. Callers
// own the validity of the invitation list; entries with an unparseable start
// time are skipped.
func ExpandInvitations(now time.Time, invitations []*model.RecurringInvitation, cancellations []model.SessionCancellation) []model.Occurrence {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	horizonEnd := today.AddDate(0, horizonMonths, 0)

	cancelled := make(map[cancellationKey]struct{}, len(cancellations))
	for _, c := range cancellations {
		cancelled[cancellationKey{c.InvitationID, c.CancelledDate.Format(time.DateOnly)}] = struct{}{}
	}

	var occurrences []model.Occurrence
	for _, inv := range invitations {
		hour, minute, err := model.ParseClock(inv.StartTime)
		if err != nil {
			continue
		}

		daysUntil := (inv.DayOfWeek - int(today.Weekday()) + 7) % 7
		current := today.AddDate(0, 0, daysUntil)

		for seq := int64(0); !current.After(horizonEnd); seq++ {
			status := model.SessionStatusBooked
			if _, skip := cancelled[cancellationKey{inv.ID, current.Format(time.DateOnly)}]; skip {
				status = model.SessionStatusCancelled
			}

			occurrences = append(occurrences, model.Occurrence{
				// Negative and derived from the invitation id so ids stay
				// unique within one expansion and clear of persisted session
				// ids when feeds are merged.
				SyntheticID:  -(inv.ID*1000 + seq),
				TutorID:      inv.TutorID,
				StartTime:    time.Date(current.Year(), current.Month(), current.Day(), hour, minute, 0, 0, loc),
				Duration:     inv.Duration,
				Status:       status,
				SessionType:  model.SessionTypeRegular,
				Location:     inv.Location,
				StudentID:    inv.StudentID,
				InvitationID: inv.ID,
			})

			current = current.AddDate(0, 0, 7)
		}
	}

	return occurrences
}
