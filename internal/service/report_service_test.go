package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository"
)

type fakeHoursStore struct {
	rows   []repository.TutorHoursRow
	before time.Time
}

func (f *fakeHoursStore) ReportHoursByType(_ context.Context, before time.Time) ([]repository.TutorHoursRow, error) {
	f.before = before
	return f.rows, nil
}

func TestTutorHoursByTypeRequiresAdmin(t *testing.T) {
	svc := NewReportService(&fakeHoursStore{}, zap.NewNop())

	if _, err := svc.TutorHoursByType(context.Background(), &model.Tutor{ID: 1}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("non-admin requester: error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.TutorHoursByType(context.Background(), nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("nil requester: error = %v, want ErrUnauthorized", err)
	}
}

func TestTutorHoursByType(t *testing.T) {
	store := &fakeHoursStore{
		rows: []repository.TutorHoursRow{
			{TutorID: 1, TutorName: "Alla", SessionType: model.SessionTypeIndividual, TotalMinutes: 90, SessionCount: 2},
			{TutorID: 1, TutorName: "Alla", SessionType: model.SessionTypeGroup, TotalMinutes: 100, SessionCount: 1},
		},
	}
	svc := NewReportService(store, zap.NewNop())
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return now }

	report, err := svc.TutorHoursByType(context.Background(), &model.Tutor{ID: 9, IsAdmin: true})
	if err != nil {
		t.Fatalf("TutorHoursByType() error = %v", err)
	}

	if !store.before.Equal(now) {
		t.Errorf("report cutoff = %v, want %v", store.before, now)
	}
	if len(report) != 2 {
		t.Fatalf("report has %d lines, want 2", len(report))
	}
	if report[0].TotalHours != 1.5 {
		t.Errorf("90 minutes = %v hours, want 1.5", report[0].TotalHours)
	}
	if report[1].TotalHours != 1.67 {
		t.Errorf("100 minutes = %v hours, want 1.67 rounded to two decimals", report[1].TotalHours)
	}
}
