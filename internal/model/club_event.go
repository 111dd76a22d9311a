package model

import "time"

// ClubEvent is a bookable group "language club" event.
type ClubEvent struct {
	ID           int64     `json:"id"`
	Theme        string    `json:"theme"`
	Tutor        string    `json:"tutor"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Price        string    `json:"price"` // decimal string, e.g. "25.00"
	Level        string    `json:"level"`
	Duration     int       `json:"duration"` // minutes
	Location     string    `json:"location"`
	PeopleBooked int       `json:"people_booked"`
	MaxBooked    int       `json:"max_booked"`
	CreatedAt    time.Time `json:"created_at"`
}

type ClubBookingStatus string

const (
	ClubBookingStatusConfirmed ClubBookingStatus = "confirmed"
	ClubBookingStatusPending   ClubBookingStatus = "pending"
	ClubBookingStatusCanceled  ClubBookingStatus = "canceled"
)

// ClubBooking links an identity-provider user to a club event.
type ClubBooking struct {
	ID        int64             `json:"id"`
	EventID   int64             `json:"event_id"`
	UserID    string            `json:"user_id"`
	Status    ClubBookingStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// ClubAttendee is a booking joined with identity-provider profile data.
type ClubAttendee struct {
	UserID     string            `json:"user_id"`
	Status     ClubBookingStatus `json:"status"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	CoverImage string            `json:"cover_image"`
}
