package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
)

type InvitationTokenStore interface {
	ListByTutor(ctx context.Context, tutorID int64) ([]*model.RecurringInvitation, error)
	GetByToken(ctx context.Context, token string) (*model.RecurringInvitation, error)
	UpdateStatus(ctx context.Context, id int64, status model.InvitationStatus) error
}

// InvitationService lists a tutor's invitations and handles the token-
// authenticated accept/decline flow.
type InvitationService struct {
	invitations InvitationTokenStore
	logger      *zap.Logger
}

func NewInvitationService(invitations InvitationTokenStore, logger *zap.Logger) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		logger:      logger,
	}
}

// ListForTutor returns all invitations issued by the tutor.
func (s *InvitationService) ListForTutor(ctx context.Context, tutorID int64) ([]*model.RecurringInvitation, error) {
	return s.invitations.ListByTutor(ctx, tutorID)
}

// Respond accepts or declines the invitation identified by its opaque token.
// The token is the sole credential; no session identity is required.
func (s *InvitationService) Respond(ctx context.Context, token string, accept bool) (*model.RecurringInvitation, error) {
	inv, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get invitation by token: %w", err)
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	status := model.InvitationStatusDeclined
	if accept {
		status = model.InvitationStatusAccepted
	}

	if inv.Status == status {
		return inv, nil
	}

	if err := s.invitations.UpdateStatus(ctx, inv.ID, status); err != nil {
		return nil, fmt.Errorf("update invitation status: %w", err)
	}
	inv.Status = status

	s.logger.Info("Invitation response recorded",
		zap.Int64("invitation_id", inv.ID),
		zap.String("status", string(status)),
	)

	return inv, nil
}
