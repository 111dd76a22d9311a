package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := s.invitations.ListForTutor(r.Context(), tutorFrom(r.Context()).ID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, invitations)
}

func (s *Server) handleInvitationAccept(w http.ResponseWriter, r *http.Request) {
	s.respondToInvitation(w, r, true)
}

func (s *Server) handleInvitationDecline(w http.ResponseWriter, r *http.Request) {
	s.respondToInvitation(w, r, false)
}

func (s *Server) respondToInvitation(w http.ResponseWriter, r *http.Request, accept bool) {
	inv, err := s.invitations.Respond(r.Context(), chi.URLParam(r, "token"), accept)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}
