package services

import (
	"context"

	"github.com/openhack/hackboard/internal/cache"
	"github.com/openhack/hackboard/internal/leaderboard"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/internal/store"
)

// Broadcaster pushes leaderboard events to connected clients
type Broadcaster interface {
	BroadcastLeaderboard(hackathonID string, payload interface{})
}

// LeaderboardService computes ranked leaderboards from stored snapshots and
// caches the result until new scores invalidate it.
type LeaderboardService struct {
	log         logger.Logger
	store       *store.Store
	broadcaster Broadcaster
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(log logger.Logger, st *store.Store, b Broadcaster) *LeaderboardService {
	return &LeaderboardService{log: log, store: st, broadcaster: b}
}

// SetBroadcaster wires the websocket hub after construction
func (s *LeaderboardService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Get returns the hackathon's leaderboard, optionally limited to one track.
// The computed board is cached; score submissions mark it stale.
func (s *LeaderboardService) Get(ctx context.Context, hackathonID string, opts leaderboard.Options) ([]leaderboard.Entry, error) {
	key := cache.Leaderboard.All(hackathonID)
	if opts.TrackID != "" {
		key = cache.Leaderboard.ByTrack(hackathonID, opts.TrackID)
	}
	if v, ok := s.store.Cache().Get(key); ok {
		if entries, ok := v.([]leaderboard.Entry); ok {
			return entries, nil
		}
	}

	entries, err := s.compute(ctx, hackathonID, opts)
	if err != nil {
		return nil, err
	}
	s.store.Cache().Set(key, entries)
	return entries, nil
}

func (s *LeaderboardService) compute(ctx context.Context, hackathonID string, opts leaderboard.Options) ([]leaderboard.Entry, error) {
	submissions, err := s.store.ListSubmissions(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	teams, err := s.store.ListTeams(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	scores, err := s.store.ListScores(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	return leaderboard.Generate(scores, submissions, projects, teams, opts), nil
}

// Refresh recomputes a leaderboard, replaces the cached copy, and pushes the
// fresh board to subscribed clients.
func (s *LeaderboardService) Refresh(ctx context.Context, hackathonID, trackID string) ([]leaderboard.Entry, error) {
	cache.LeaderboardRefreshed(s.store.Cache(), hackathonID, trackID)

	entries, err := s.compute(ctx, hackathonID, leaderboard.Options{TrackID: trackID})
	if err != nil {
		return nil, err
	}

	key := cache.Leaderboard.All(hackathonID)
	if trackID != "" {
		key = cache.Leaderboard.ByTrack(hackathonID, trackID)
	}
	s.store.Cache().Set(key, entries)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastLeaderboard(hackathonID, map[string]interface{}{
			"hackathon_id": hackathonID,
			"track_id":     trackID,
			"entries":      entries,
		})
	}
	s.log.Debug("Leaderboard refreshed",
		"hackathon_id", hackathonID, "track_id", trackID, "entries", len(entries))
	return entries, nil
}

// Stats returns aggregate statistics over the full leaderboard
func (s *LeaderboardService) Stats(ctx context.Context, hackathonID string) (leaderboard.Stats, error) {
	entries, err := s.Get(ctx, hackathonID, leaderboard.Options{})
	if err != nil {
		return leaderboard.Stats{}, err
	}
	return leaderboard.ComputeStats(entries), nil
}

// ExportCSV renders the leaderboard as a CSV document
func (s *LeaderboardService) ExportCSV(ctx context.Context, hackathonID, trackID string) (string, error) {
	entries, err := s.Get(ctx, hackathonID, leaderboard.Options{TrackID: trackID})
	if err != nil {
		return "", err
	}
	return leaderboard.ExportCSV(entries), nil
}
