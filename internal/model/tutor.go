package model

import "time"

type Tutor struct {
	ID          int64     `json:"id"`
	AuthID      string    `json:"auth_id"` // identity-provider user id
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Avatar      string    `json:"avatar"`
	Phone       string    `json:"phone"`
	Bio         string    `json:"bio"`
	Color       string    `json:"color"`
	IsAdmin     bool      `json:"is_admin"`
	IsActivated bool      `json:"is_activated"`
	CreatedAt   time.Time `json:"created_at"`
}
