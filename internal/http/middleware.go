package http

import (
	"context"
	"net/http"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/service"
)

type contextKey string

const (
	authIDKey contextKey = "authID"
	tutorKey  contextKey = "tutor"
)

// withAuthID requires the identity-provider user id header on the request.
func (s *Server) withAuthID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authID := r.Header.Get("X-Auth-ID")
		if authID == "" {
			s.respondError(w, service.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authIDKey, authID)))
	})
}

// withTutor resolves the authenticated identity to a tutor account.
func (s *Server) withTutor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tutor, err := s.tutors.Resolve(r.Context(), authIDFrom(r.Context()))
		if err != nil {
			s.respondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tutorKey, tutor)))
	})
}

func authIDFrom(ctx context.Context) string {
	authID, _ := ctx.Value(authIDKey).(string)
	return authID
}

func tutorFrom(ctx context.Context) *model.Tutor {
	tutor, _ := ctx.Value(tutorKey).(*model.Tutor)
	return tutor
}
