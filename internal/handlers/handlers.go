// Package handlers exposes the HTTP API over the store, services, and
// workflows.
package handlers

import (
	"github.com/openhack/hackboard/internal/services"
	"github.com/openhack/hackboard/internal/store"
	"github.com/openhack/hackboard/internal/websocket"
	"github.com/openhack/hackboard/internal/workflows"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Store         *store.Store
	TeamFormation *workflows.TeamFormation
	Submission    *workflows.Submission
	Leaderboard   *services.LeaderboardService
	Invitations   *services.InvitationService
	Search        *services.SearchService
	Hub           *websocket.Hub
	Log           HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// New creates a new Handlers instance with all dependencies
func New(
	st *store.Store,
	teamFormation *workflows.TeamFormation,
	submission *workflows.Submission,
	leaderboard *services.LeaderboardService,
	invitations *services.InvitationService,
	search *services.SearchService,
	hub *websocket.Hub,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Store:         st,
		TeamFormation: teamFormation,
		Submission:    submission,
		Leaderboard:   leaderboard,
		Invitations:   invitations,
		Search:        search,
		Hub:           hub,
		Log:           log,
	}
}
