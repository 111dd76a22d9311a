package model

import "time"

type SessionStatus string

const (
	SessionStatusBooked    SessionStatus = "booked"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is a persisted, concrete timeblock on a tutor's calendar.
type Session struct {
	ID          int64         `json:"id"`
	TutorID     int64         `json:"tutor_id"`
	StudentID   string        `json:"student_id"`
	StartTime   time.Time     `json:"start_time"`
	Duration    int           `json:"duration"` // minutes
	Status      SessionStatus `json:"status"`
	SessionType SessionType   `json:"session_type"`
	Location    string        `json:"location"`
	Price       int           `json:"price"` // cents
	CreatedAt   time.Time     `json:"created_at"`
}

// SessionTypeRegular marks derived occurrences in merged calendar feeds,
// as opposed to the "regulars" template slot type they originate from.
const SessionTypeRegular SessionType = "regular"

// Occurrence is a derived instance of an accepted recurring invitation.
// It is produced fresh on every read and never stored; SyntheticID is
// negative so merged calendar feeds cannot collide with persisted session
// ids, but the type itself is what distinguishes the two.
type Occurrence struct {
	SyntheticID  int64         `json:"id"`
	TutorID      int64         `json:"tutor_id"`
	StartTime    time.Time     `json:"start_time"`
	Duration     int           `json:"duration"` // minutes
	Status       SessionStatus `json:"status"`
	SessionType  SessionType   `json:"session_type"`
	Location     string        `json:"location"`
	StudentID    string        `json:"student_id"`
	InvitationID int64         `json:"invitation_id"`
}
