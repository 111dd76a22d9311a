package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/recurrence"
)

// mailSendConcurrency bounds the invitation email fan-out.
const mailSendConcurrency = 4

type TemplateStore interface {
	Upsert(ctx context.Context, template *model.WeeklyTemplate) error
	GetByTutorID(ctx context.Context, tutorID int64) (*model.WeeklyTemplate, error)
}

type InvitationStore interface {
	Create(ctx context.Context, inv *model.RecurringInvitation) error
	ExistsByKey(ctx context.Context, key model.InvitationKey) (bool, error)
	ListAcceptedByTutor(ctx context.Context, tutorID int64) ([]*model.RecurringInvitation, error)
	GetByID(ctx context.Context, id int64) (*model.RecurringInvitation, error)
}

type CancellationStore interface {
	Create(ctx context.Context, c model.SessionCancellation) error
	ListByTutor(ctx context.Context, tutorID int64) ([]model.SessionCancellation, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	ListByTutor(ctx context.Context, tutorID int64, from, to time.Time) ([]*model.Session, error)
	UpdateStatus(ctx context.Context, id int64, status model.SessionStatus) error
}

// InvitationMailer delivers invitation notifications. Send failures are
// always treated as non-fatal by callers.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, tutor *model.Tutor, inv *model.RecurringInvitation) error
}

// ScheduleService owns the weekly template save flow, including invitation
// diffing and mail fan-out, and the merged schedule read path.
type ScheduleService struct {
	templates     TemplateStore
	invitations   InvitationStore
	cancellations CancellationStore
	sessions      SessionStore
	mailer        InvitationMailer
	logger        *zap.Logger
	clock         func() time.Time
}

func NewScheduleService(
	templates TemplateStore,
	invitations InvitationStore,
	cancellations CancellationStore,
	sessions SessionStore,
	mailer InvitationMailer,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		templates:     templates,
		invitations:   invitations,
		cancellations: cancellations,
		sessions:      sessions,
		mailer:        mailer,
		logger:        logger,
		clock:         time.Now,
	}
}

// SaveTemplate replaces the tutor's weekly template, then walks every slot
// of the submitted template and creates invitations for regulars slots whose
// natural key is not taken yet. Notification emails are sent best-effort
// with bounded concurrency; a failed send never fails the save. Re-saving an
// unchanged template is idempotent because of the key-existence check.
func (s *ScheduleService) SaveTemplate(ctx context.Context, tutor *model.Tutor, days []model.DaySchedule) error {
	template := &model.WeeklyTemplate{TutorID: tutor.ID, Days: days}
	if err := template.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.templates.Upsert(ctx, template); err != nil {
		return fmt.Errorf("save template: %w", err)
	}

	created := s.createMissingInvitations(ctx, tutor, template)

	s.logger.Info("Weekly template saved",
		zap.Int64("tutor_id", tutor.ID),
		zap.Int("days", len(days)),
		zap.Int("invitations_created", len(created)),
	)

	s.dispatchInvitations(ctx, tutor, created)

	return nil
}

// createMissingInvitations scans all day schedules of the template, not only
// changed ones, and creates an invitation per regulars slot whose natural
// key has no invitation yet, regardless of that invitation's status.
func (s *ScheduleService) createMissingInvitations(ctx context.Context, tutor *model.Tutor, template *model.WeeklyTemplate) []*model.RecurringInvitation {
	var created []*model.RecurringInvitation

	for _, day := range template.Days {
		for i := range day.Slots {
			slot := &day.Slots[i]
			if slot.SessionType != model.SessionTypeRegulars {
				continue
			}

			inv := &model.RecurringInvitation{
				TutorID:      tutor.ID,
				StudentEmail: slot.Email,
				StudentID:    slot.StudentID,
				DayOfWeek:    day.Day,
				StartTime:    slot.StartTime,
				Duration:     slot.Duration,
				Location:     slot.Location,
				Description:  slot.Description,
				Color:        slot.Color,
				Status:       model.InvitationStatusPending,
				Token:        uuid.NewString(),
			}

			exists, err := s.invitations.ExistsByKey(ctx, inv.Key())
			if err != nil {
				s.logger.Error("Failed to check invitation key",
					zap.Int64("tutor_id", tutor.ID),
					zap.String("student_email", slot.Email),
					zap.Int("day_of_week", day.Day),
					zap.String("start_time", slot.StartTime),
					zap.Error(err))
				continue
			}
			if exists {
				continue
			}

			if err := s.invitations.Create(ctx, inv); err != nil {
				s.logger.Error("Failed to create invitation",
					zap.Int64("tutor_id", tutor.ID),
					zap.String("student_email", slot.Email),
					zap.Error(err))
				continue
			}

			created = append(created, inv)
		}
	}

	return created
}

// dispatchInvitations fans out notification emails with bounded concurrency.
// Failures are logged per recipient and swallowed.
func (s *ScheduleService) dispatchInvitations(ctx context.Context, tutor *model.Tutor, invitations []*model.RecurringInvitation) {
	if len(invitations) == 0 {
		return
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(mailSendConcurrency)

	for _, inv := range invitations {
		inv := inv
		group.Go(func() error {
			if err := s.mailer.SendInvitation(ctx, tutor, inv); err != nil {
				s.logger.Warn("Failed to send invitation email",
					zap.Int64("invitation_id", inv.ID),
					zap.String("student_email", inv.StudentEmail),
					zap.Error(err))
			}
			return nil
		})
	}

	_ = group.Wait()
}

// ScheduleFeed is the merged read model for a tutor's calendar: persisted
// sessions plus occurrences derived from accepted invitations.
type ScheduleFeed struct {
	Sessions    []*model.Session   `json:"sessions"`
	Occurrences []model.Occurrence `json:"occurrences"`
}

// GetSchedule returns the tutor's feed over the rolling three-month horizon.
func (s *ScheduleService) GetSchedule(ctx context.Context, tutorID int64) (*ScheduleFeed, error) {
	now := s.clock()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sessions, err := s.sessions.ListByTutor(ctx, tutorID, today, today.AddDate(0, 3, 1))
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	accepted, err := s.invitations.ListAcceptedByTutor(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get accepted invitations: %w", err)
	}

	cancellations, err := s.cancellations.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get session cancellations: %w", err)
	}

	return &ScheduleFeed{
		Sessions:    sessions,
		Occurrences: recurrence.ExpandInvitations(now, accepted, cancellations),
	}, nil
}

// BookSession persists a one-off session on the tutor's own calendar.
func (s *ScheduleService) BookSession(ctx context.Context, tutor *model.Tutor, session *model.Session) error {
	if !session.SessionType.IsValid() {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidInput, session.SessionType)
	}
	if session.Duration < 15 || session.Duration%15 != 0 {
		return fmt.Errorf("%w: duration must be at least 15 minutes and a multiple of 15", ErrInvalidInput)
	}
	if session.StartTime.Before(s.clock()) {
		return fmt.Errorf("%w: start time is in the past", ErrInvalidInput)
	}

	session.TutorID = tutor.ID
	session.Status = model.SessionStatusBooked

	if err := s.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("book session: %w", err)
	}

	s.logger.Info("Session booked",
		zap.Int64("session_id", session.ID),
		zap.Int64("tutor_id", tutor.ID),
		zap.Time("start_time", session.StartTime),
	)

	return nil
}

// CancelSession marks a booked session cancelled. Cancelling twice is a
// no-op; completed sessions refuse.
func (s *ScheduleService) CancelSession(ctx context.Context, tutor *model.Tutor, sessionID int64) error {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.TutorID != tutor.ID {
		return ErrNotFound
	}
	if session.Status == model.SessionStatusCancelled {
		return nil
	}
	if session.Status == model.SessionStatusCompleted {
		return fmt.Errorf("%w: completed sessions cannot be cancelled", ErrInvalidInput)
	}

	if err := s.sessions.UpdateStatus(ctx, sessionID, model.SessionStatusCancelled); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}

	s.logger.Info("Session cancelled", zap.Int64("session_id", sessionID))
	return nil
}

// CancelOccurrence records a one-off skip of an accepted invitation on the
// given calendar date. The underlying invitation is left untouched.
func (s *ScheduleService) CancelOccurrence(ctx context.Context, tutor *model.Tutor, invitationID int64, date time.Time) error {
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return fmt.Errorf("get invitation: %w", err)
	}
	if inv == nil || inv.TutorID != tutor.ID {
		return ErrNotFound
	}
	if inv.Status != model.InvitationStatusAccepted {
		return fmt.Errorf("%w: only accepted invitations have occurrences to cancel", ErrInvalidInput)
	}

	cancellation := model.SessionCancellation{
		InvitationID:  invitationID,
		CancelledDate: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.cancellations.Create(ctx, cancellation); err != nil {
		return fmt.Errorf("cancel occurrence: %w", err)
	}

	s.logger.Info("Occurrence cancelled",
		zap.Int64("invitation_id", invitationID),
		zap.Time("date", cancellation.CancelledDate),
	)

	return nil
}
