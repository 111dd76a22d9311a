package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/recurrence"
	"github.com/slovko/tutor-admin/internal/service"
)

type clubEventRequest struct {
	Theme       string `json:"theme"`
	Tutor       string `json:"tutor"`
	Date        string `json:"date"` // RFC 3339
	Description string `json:"description"`
	Price       string `json:"price"`
	Level       string `json:"level"`
	Duration    int    `json:"duration"`
	Location    string `json:"location"`
	Spots       int    `json:"spots"`
}

func (req *clubEventRequest) toModel() (*model.ClubEvent, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be RFC 3339", service.ErrInvalidInput)
	}

	return &model.ClubEvent{
		Theme:       req.Theme,
		Tutor:       req.Tutor,
		Date:        date,
		Description: req.Description,
		Price:       req.Price,
		Level:       req.Level,
		Duration:    req.Duration,
		Location:    req.Location,
		MaxBooked:   req.Spots,
	}, nil
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		s.respondError(w, fmt.Errorf("%w: %s", service.ErrInvalidInput, err))
		return false
	}
	return true
}

func eventIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid event id", service.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var req clubEventRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	event, err := req.toModel()
	if err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.club.AddEvent(r.Context(), event); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

type clubEventSeriesRequest struct {
	Event   clubEventRequest   `json:"event"`
	Pattern recurrence.Pattern `json:"pattern"`
	Start   string             `json:"start"`         // "2006-01-02"
	End     string             `json:"end,omitempty"` // "2006-01-02"
}

func (s *Server) handleAddEventSeries(w http.ResponseWriter, r *http.Request) {
	var req clubEventSeriesRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	base, err := req.Event.toModel()
	if err != nil {
		s.respondError(w, err)
		return
	}

	start, err := time.Parse(time.DateOnly, req.Start)
	if err != nil {
		s.respondError(w, fmt.Errorf("%w: start must be YYYY-MM-DD", service.ErrInvalidInput))
		return
	}

	var end *time.Time
	if req.End != "" {
		parsed, err := time.Parse(time.DateOnly, req.End)
		if err != nil {
			s.respondError(w, fmt.Errorf("%w: end must be YYYY-MM-DD", service.ErrInvalidInput))
			return
		}
		end = &parsed
	}

	created, err := s.club.CreateEventSeries(r.Context(), base, req.Pattern, start, end)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSearchEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.club.SearchEvents(r.Context(), r.URL.Query().Get("theme"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	event, err := s.club.GetEvent(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleEditEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req clubEventRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	event, err := req.toModel()
	if err != nil {
		s.respondError(w, err)
		return
	}
	event.ID = id

	if err := s.club.EditEvent(r.Context(), event); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.club.DeleteEvent(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

func (s *Server) handleEventAttendees(w http.ResponseWriter, r *http.Request) {
	id, err := eventIDParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	attendees, err := s.club.Attendees(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attendees)
}
