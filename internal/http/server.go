package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/service"
)

// Server bundles the services behind the admin HTTP API.
type Server struct {
	tutors      *service.TutorService
	schedule    *service.ScheduleService
	invitations *service.InvitationService
	club        *service.ClubService
	reports     *service.ReportService
	logger      *zap.Logger
}

func NewServer(
	tutors *service.TutorService,
	schedule *service.ScheduleService,
	invitations *service.InvitationService,
	club *service.ClubService,
	reports *service.ReportService,
	logger *zap.Logger,
) *Server {
	return &Server{
		tutors:      tutors,
		schedule:    schedule,
		invitations: invitations,
		club:        club,
		reports:     reports,
		logger:      logger,
	}
}

// Router assembles the API routes. Invitation accept/decline is reachable
// without session auth: the token in the path is the credential.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/invitations/{token}/accept", s.handleInvitationAccept)
		r.Post("/invitations/{token}/decline", s.handleInvitationDecline)

		r.Group(func(r chi.Router) {
			r.Use(s.withAuthID)

			r.Post("/tutors/activate", s.handleActivateTutor)

			r.Group(func(r chi.Router) {
				r.Use(s.withTutor)

				r.Get("/tutors/me", s.handleGetMe)

				r.Put("/schedule/template", s.handleSaveTemplate)
				r.Get("/schedule", s.handleGetSchedule)
				r.Get("/schedule/image", s.handleScheduleImage)
				r.Post("/schedule/cancellations", s.handleCancelOccurrence)

				r.Post("/sessions", s.handleBookSession)
				r.Post("/sessions/{id}/cancel", s.handleCancelSession)

				r.Get("/invitations", s.handleListInvitations)

				r.Post("/club/events", s.handleAddEvent)
				r.Post("/club/events/series", s.handleAddEventSeries)
				r.Get("/club/events", s.handleSearchEvents)
				r.Get("/club/events/{id}", s.handleGetEvent)
				r.Put("/club/events/{id}", s.handleEditEvent)
				r.Delete("/club/events/{id}", s.handleDeleteEvent)
				r.Get("/club/events/{id}/attendees", s.handleEventAttendees)

				r.Get("/reports/tutor-hours", s.handleTutorHours)
			})
		})
	})

	return r
}
