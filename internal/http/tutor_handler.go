package http

import "net/http"

func (s *Server) handleActivateTutor(w http.ResponseWriter, r *http.Request) {
	tutor, err := s.tutors.Activate(r.Context(), authIDFrom(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tutor)
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tutorFrom(r.Context()))
}
