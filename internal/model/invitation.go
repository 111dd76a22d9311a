package model

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// RecurringInvitation is a tutor's standing offer of a weekly session to a
// specific student. The token is the sole credential for the email-based
// accept/decline flow. Invitations are never auto-deleted; one-off skips are
// recorded as SessionCancellation rows instead.
type RecurringInvitation struct {
	ID           int64            `json:"id"`
	TutorID      int64            `json:"tutor_id"`
	StudentEmail string           `json:"student_email"`
	StudentID    string           `json:"student_id"`
	DayOfWeek    int              `json:"day_of_week"` // 0 = Sunday, 6 = Saturday
	StartTime    string           `json:"start_time"`  // "HH:MM"
	Duration     int              `json:"duration"`    // minutes
	Location     string           `json:"location"`
	Description  string           `json:"description,omitempty"`
	Color        string           `json:"color,omitempty"`
	Status       InvitationStatus `json:"status"`
	Token        string           `json:"-"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// InvitationKey is the natural key used to deduplicate invitations across
// template saves.
type InvitationKey struct {
	TutorID      int64
	StudentEmail string
	DayOfWeek    int
	StartTime    string
}

// Key returns the invitation's natural key.
func (i *RecurringInvitation) Key() InvitationKey {
	return InvitationKey{
		TutorID:      i.TutorID,
		StudentEmail: i.StudentEmail,
		DayOfWeek:    i.DayOfWeek,
		StartTime:    i.StartTime,
	}
}
