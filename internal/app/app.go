// Package app wires the cache, store, workflows, services, and HTTP surface
// together into a runnable server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/openhack/hackboard/internal/cache"
	"github.com/openhack/hackboard/internal/handlers"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/internal/services"
	"github.com/openhack/hackboard/internal/store"
	"github.com/openhack/hackboard/internal/websocket"
	"github.com/openhack/hackboard/internal/workflows"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// Config holds everything App needs that isn't a constructed dependency
type Config struct {
	// BaseURL is the externally reachable URL used in invitation links
	// and QR codes.
	BaseURL string
	// AllowedOrigins configures CORS for the browser frontend. Empty
	// means allow all origins.
	AllowedOrigins []string
}

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	hub      *websocket.Hub
	server   *http.Server
	cors     *cors.Cors
}

// New creates and initializes a new application instance
func New(log logger.Logger, client zerodb.Client, cfg Config) *App {
	cacheStore := cache.NewStore()
	st := store.New(log, client, cacheStore)

	teamFormation := workflows.NewTeamFormation(log, st.Client(), cacheStore)
	submission := workflows.NewSubmission(log, st.Client(), cacheStore)

	hub := websocket.New(log)
	hub.Start()

	leaderboard := services.NewLeaderboardService(log, st, hub)
	invitations := services.NewInvitationService(log, st, cfg.BaseURL)
	search := services.NewSearchService(log, client)

	h := handlers.New(st, teamFormation, submission, leaderboard, invitations, search, hub, log)

	corsOpts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = cfg.AllowedOrigins
	} else {
		corsOpts.AllowedOrigins = []string{"*"}
	}

	return &App{
		log:      log,
		handlers: h,
		hub:      hub,
		cors:     cors.New(corsOpts),
	}
}

// Handler returns the full HTTP handler, CORS included
func (a *App) Handler() http.Handler {
	return a.cors.Handler(a.handlers.Router())
}

// Run starts the HTTP server and blocks until it exits
func (a *App) Run(addr string) error {
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("Server starting", "addr", addr)
	return a.server.ListenAndServe()
}

// Shutdown stops the HTTP server gracefully
func (a *App) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
