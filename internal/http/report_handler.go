package http

import "net/http"

func (s *Server) handleTutorHours(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.TutorHoursByType(r.Context(), tutorFrom(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
