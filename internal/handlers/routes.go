package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Metrics
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Hackathons
		r.Get("/hackathons", h.handleListHackathons)
		r.Post("/hackathons", h.handleCreateHackathon)
		r.Get("/hackathons/{hackathonID}", h.handleGetHackathon)
		r.Put("/hackathons/{hackathonID}", h.handleUpdateHackathon)
		r.Put("/hackathons/{hackathonID}/status", h.handleUpdateHackathonStatus)
		r.Delete("/hackathons/{hackathonID}", h.handleDeleteHackathon)

		// Tracks
		r.Get("/hackathons/{hackathonID}/tracks", h.handleListTracks)
		r.Post("/hackathons/{hackathonID}/tracks", h.handleCreateTrack)
		r.Get("/tracks/{trackID}", h.handleGetTrack)
		r.Put("/hackathons/{hackathonID}/tracks/{trackID}", h.handleUpdateTrack)
		r.Delete("/hackathons/{hackathonID}/tracks/{trackID}", h.handleDeleteTrack)

		// Participants
		r.Get("/hackathons/{hackathonID}/participants", h.handleListParticipants)
		r.Post("/participants", h.handleCreateParticipant)
		r.Get("/participants/{participantID}", h.handleGetParticipant)
		r.Post("/hackathons/{hackathonID}/enroll", h.handleEnroll)
		r.Get("/hackathons/{hackathonID}/enrollments", h.handleListEnrollments)

		// Teams
		r.Get("/hackathons/{hackathonID}/teams", h.handleListTeams)
		r.Post("/hackathons/{hackathonID}/teams", h.handleCreateTeam)
		r.Put("/hackathons/{hackathonID}/teams/{teamID}", h.handleUpdateTeam)
		r.Get("/teams/{teamID}", h.handleGetTeam)
		r.Get("/teams/{teamID}/projects", h.handleListTeamProjects)
		r.Get("/teams/{teamID}/members", h.handleListTeamMembers)
		r.Post("/teams/{teamID}/members", h.handleAddTeamMember)

		// Projects
		r.Get("/hackathons/{hackathonID}/projects", h.handleListProjects)
		r.Get("/projects/{projectID}", h.handleGetProject)
		r.Post("/projects", h.handleCreateProject)
		r.Put("/projects/{projectID}", h.handleUpdateProject)
		r.Put("/projects/{projectID}/status", h.handleUpdateProjectStatus)

		// Submissions
		r.Get("/hackathons/{hackathonID}/submissions", h.handleListSubmissions)
		r.Get("/projects/{projectID}/submissions", h.handleListProjectSubmissions)
		r.Get("/submissions/{submissionID}", h.handleGetSubmission)
		r.Post("/submissions/{submissionID}/retry-embedding", h.handleRetryEmbedding)

		// Workflows
		r.Post("/hackathons/{hackathonID}/form-team", h.handleFormTeam)
		r.Post("/hackathons/{hackathonID}/submit", h.handleSubmitProject)

		// Judging
		r.Get("/hackathons/{hackathonID}/rubrics", h.handleListRubrics)
		r.Post("/hackathons/{hackathonID}/rubrics", h.handleCreateRubric)
		r.Put("/hackathons/{hackathonID}/rubrics/{rubricID}", h.handleUpdateRubric)
		r.Get("/rubrics/{rubricID}", h.handleGetRubric)
		r.Get("/submissions/{submissionID}/scores", h.handleListSubmissionScores)
		r.Post("/hackathons/{hackathonID}/scores", h.handleSubmitScore)
		r.Get("/participants/{participantID}/scores", h.handleListJudgeScores)

		// Prizes
		r.Get("/hackathons/{hackathonID}/prizes", h.handleListPrizes)
		r.Post("/hackathons/{hackathonID}/prizes", h.handleCreatePrize)
		r.Put("/hackathons/{hackathonID}/prizes/{prizeID}", h.handleUpdatePrize)
		r.Get("/prizes/{prizeID}", h.handleGetPrize)

		// Invitations
		r.Get("/hackathons/{hackathonID}/invitations", h.handleListInvitations)
		r.Post("/hackathons/{hackathonID}/invitations", h.handleSendInvitation)
		r.Post("/invitations/{invitationID}/accept", h.handleAcceptInvitation)
		r.Post("/invitations/{invitationID}/decline", h.handleDeclineInvitation)
		r.Get("/invitations/{invitationID}/qr", h.handleInvitationQR)

		// Leaderboard
		r.Get("/hackathons/{hackathonID}/leaderboard", h.handleGetLeaderboard)
		r.Get("/hackathons/{hackathonID}/leaderboard/stats", h.handleLeaderboardStats)
		r.Get("/hackathons/{hackathonID}/leaderboard/export", h.handleExportLeaderboard)
		r.Post("/hackathons/{hackathonID}/leaderboard/refresh", h.handleRefreshLeaderboard)

		// Search
		r.Get("/hackathons/{hackathonID}/search", h.handleSearchSubmissions)
	})

	return r
}
