package service

import "context"

// Identity is a user profile resolved from the external identity provider.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// IdentityClient looks up identity-provider users by their opaque id.
// Implementations return ErrNotFound for unknown ids.
type IdentityClient interface {
	Lookup(ctx context.Context, userID string) (*Identity, error)
}
