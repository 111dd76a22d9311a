package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/service"
)

type sessionRequest struct {
	StudentID   string `json:"student_id"`
	StartTime   string `json:"start_time"` // RFC 3339
	Duration    int    `json:"duration"`
	SessionType string `json:"session_type"`
	Location    string `json:"location"`
	Price       int    `json:"price"` // cents
}

func (s *Server) handleBookSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: start_time must be RFC 3339", service.ErrInvalidInput))
		return
	}

	session := &model.Session{
		StudentID:   req.StudentID,
		StartTime:   start,
		Duration:    req.Duration,
		SessionType: model.SessionType(req.SessionType),
		Location:    req.Location,
		Price:       req.Price,
	}

	if err := s.schedule.BookSession(r.Context(), tutorFrom(r.Context()), session); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: invalid session id", service.ErrInvalidInput))
		return
	}

	if err := s.schedule.CancelSession(r.Context(), tutorFrom(r.Context()), id); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "session cancelled"})
}
