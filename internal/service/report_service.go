package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository"
)

type HoursReportStore interface {
	ReportHoursByType(ctx context.Context, before time.Time) ([]repository.TutorHoursRow, error)
}

// TutorHours is one line of the team-hours report.
type TutorHours struct {
	TutorID      int64             `json:"tutor_id"`
	TutorName    string            `json:"tutor_name"`
	TutorEmail   string            `json:"tutor_email"`
	TutorColor   string            `json:"tutor_color"`
	SessionType  model.SessionType `json:"session_type"`
	TotalHours   float64           `json:"total_hours"`
	TotalMinutes int               `json:"total_minutes"`
	SessionCount int               `json:"session_count"`
}

// ReportService produces the team-hours report for admins.
type ReportService struct {
	sessions HoursReportStore
	logger   *zap.Logger
	clock    func() time.Time
}

func NewReportService(sessions HoursReportStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		sessions: sessions,
		logger:   logger,
		clock:    time.Now,
	}
}

// TutorHoursByType aggregates past booked sessions per tutor and session
// type. Admin only.
func (s *ReportService) TutorHoursByType(ctx context.Context, requester *model.Tutor) ([]TutorHours, error) {
	if requester == nil || !requester.IsAdmin {
		return nil, ErrUnauthorized
	}

	rows, err := s.sessions.ReportHoursByType(ctx, s.clock())
	if err != nil {
		return nil, fmt.Errorf("tutor hours report: %w", err)
	}

	report := make([]TutorHours, 0, len(rows))
	for _, row := range rows {
		report = append(report, TutorHours{
			TutorID:      row.TutorID,
			TutorName:    row.TutorName,
			TutorEmail:   row.TutorEmail,
			TutorColor:   row.TutorColor,
			SessionType:  row.SessionType,
			TotalHours:   math.Round(float64(row.TotalMinutes)/60*100) / 100,
			TotalMinutes: row.TotalMinutes,
			SessionCount: row.SessionCount,
		})
	}

	return report, nil
}
