package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
)

// defaultTutorColor is assigned to newly activated tutor accounts.
const defaultTutorColor = "#6366f1"

type TutorStore interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	GetByAuthID(ctx context.Context, authID string) (*model.Tutor, error)
	SetActivated(ctx context.Context, id int64, activated bool) error
}

// TutorService resolves identity-provider users to tutor accounts and
// handles account activation.
type TutorService struct {
	tutors   TutorStore
	identity IdentityClient
	logger   *zap.Logger
}

func NewTutorService(tutors TutorStore, identity IdentityClient, logger *zap.Logger) *TutorService {
	return &TutorService{
		tutors:   tutors,
		identity: identity,
		logger:   logger,
	}
}

// Resolve returns the tutor account for an identity-provider user id.
func (s *TutorService) Resolve(ctx context.Context, authID string) (*model.Tutor, error) {
	if authID == "" {
		return nil, ErrUnauthorized
	}

	tutor, err := s.tutors.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("resolve tutor: %w", err)
	}
	if tutor == nil {
		return nil, ErrNotFound
	}

	return tutor, nil
}

// Activate creates the tutor account from identity-provider profile data and
// marks it activated. Activating an existing account only flips the flag.
func (s *TutorService) Activate(ctx context.Context, authID string) (*model.Tutor, error) {
	if authID == "" {
		return nil, ErrUnauthorized
	}

	profile, err := s.identity.Lookup(ctx, authID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	tutor, err := s.tutors.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	if tutor != nil {
		if !tutor.IsActivated {
			if err := s.tutors.SetActivated(ctx, tutor.ID, true); err != nil {
				return nil, fmt.Errorf("activate tutor: %w", err)
			}
			tutor.IsActivated = true
		}
		return tutor, nil
	}

	name := profile.Name
	if name == "" {
		name = "Unknown"
	}

	tutor = &model.Tutor{
		AuthID:      authID,
		Name:        name,
		Email:       profile.Email,
		Avatar:      profile.Image,
		Phone:       "Unknown",
		Bio:         "Unknown",
		Color:       defaultTutorColor,
		IsActivated: true,
	}

	if err := s.tutors.Create(ctx, tutor); err != nil {
		return nil, fmt.Errorf("create tutor: %w", err)
	}

	s.logger.Info("Tutor account activated",
		zap.Int64("tutor_id", tutor.ID),
		zap.String("auth_id", authID),
	)

	return tutor, nil
}
