package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/render"
	"github.com/slovko/tutor-admin/internal/service"
)

// handleSaveTemplate replaces the tutor's weekly template and kicks off
// invitation diffing.
func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var days []model.DaySchedule
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&days); err != nil {
		s.respondError(w, fmt.Errorf("%w: %s", service.ErrInvalidInput, err))
		return
	}

	if err := s.schedule.SaveTemplate(r.Context(), tutorFrom(r.Context()), days); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "schedule saved"})
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	feed, err := s.schedule.GetSchedule(r.Context(), tutorFrom(r.Context()).ID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) handleScheduleImage(w http.ResponseWriter, r *http.Request) {
	feed, err := s.schedule.GetSchedule(r.Context(), tutorFrom(r.Context()).ID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	png, err := render.WeekImage(time.Now(), feed.Sessions, feed.Occurrences)
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

type cancelOccurrenceRequest struct {
	InvitationID int64  `json:"invitation_id"`
	Date         string `json:"date"` // "2006-01-02"
}

func (s *Server) handleCancelOccurrence(w http.ResponseWriter, r *http.Request) {
	var req cancelOccurrenceRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.respondError(w, fmt.Errorf("%w: %s", service.ErrInvalidInput, err))
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: date must be YYYY-MM-DD", service.ErrInvalidInput))
		return
	}

	if err := s.schedule.CancelOccurrence(r.Context(), tutorFrom(r.Context()), req.InvitationID, date); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "occurrence cancelled"})
}
