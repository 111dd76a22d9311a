package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
)

// Config holds SMTP connection settings and the base URL embedded into
// accept/decline links.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPMailer sends transactional mail over SMTP. All sends are best-effort;
// callers decide whether a failure matters.
type SMTPMailer struct {
	client  *mail.Client
	from    string
	baseURL string
	logger  *zap.Logger
}

func NewSMTPMailer(cfg Config, logger *zap.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &SMTPMailer{
		client:  client,
		from:    cfg.From,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// SendInvitation notifies a student about a new recurring session offer,
// with accept and decline links embedding the invitation token.
func (m *SMTPMailer) SendInvitation(ctx context.Context, tutor *model.Tutor, inv *model.RecurringInvitation) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(inv.StudentEmail); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject(fmt.Sprintf("%s invited you to a weekly session", tutor.Name))
	msg.SetBodyString(mail.TypeTextPlain, m.invitationBody(tutor, inv))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send invitation mail: %w", err)
	}

	m.logger.Debug("Invitation email sent",
		zap.Int64("invitation_id", inv.ID),
		zap.String("student_email", inv.StudentEmail),
	)

	return nil
}

func (m *SMTPMailer) invitationBody(tutor *model.Tutor, inv *model.RecurringInvitation) string {
	weekday := time.Weekday(inv.DayOfWeek).String()

	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n")
	fmt.Fprintf(&b, "%s would like to set up a regular weekly session with you:\n\n", tutor.Name)
	fmt.Fprintf(&b, "  Every %s at %s (%d minutes)\n", weekday, inv.StartTime, inv.Duration)
	fmt.Fprintf(&b, "  Location: %s\n", inv.Location)
	if inv.Description != "" {
		fmt.Fprintf(&b, "  Notes: %s\n", inv.Description)
	}
	fmt.Fprintf(&b, "\nAccept:  %s/api/invitations/%s/accept\n", m.baseURL, inv.Token)
	fmt.Fprintf(&b, "Decline: %s/api/invitations/%s/decline\n", m.baseURL, inv.Token)

	return b.String()
}
