package model

import "time"

// SessionCancellation marks one dated occurrence of an accepted invitation
// as skipped without touching the invitation itself. Matching is by calendar
// date, never by time of day.
type SessionCancellation struct {
	InvitationID  int64     `json:"invitation_id"`
	CancelledDate time.Time `json:"cancelled_date"`
}
