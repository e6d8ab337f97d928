package store

import (
	"context"
	"strings"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// ListTeams returns a hackathon's teams
func (s *Store) ListTeams(ctx context.Context, hackathonID string) ([]models.Team, error) {
	return listCached[models.Team](ctx, s, cache.Teams.All(hackathonID), zerodb.TableTeams,
		zerodb.QueryOptions{Filter: map[string]any{"hackathon_id": hackathonID}})
}

// GetTeam returns one team by id
func (s *Store) GetTeam(ctx context.Context, id string) (models.Team, error) {
	return getCached[models.Team](ctx, s, cache.Teams.Detail(id), zerodb.TableTeams, id, "team")
}

// CreateTeam creates a team within a hackathon
func (s *Store) CreateTeam(ctx context.Context, t models.Team) (models.Team, error) {
	if strings.TrimSpace(t.Name) == "" {
		return models.Team{}, apperrors.Validation("team name is required")
	}
	if t.HackathonID == "" {
		return models.Team{}, apperrors.Validation("hackathon id is required")
	}
	if t.ID == "" {
		t.ID = s.newID()
	}
	if err := s.insert(ctx, zerodb.TableTeams, zerodb.RowOf(t)); err != nil {
		return models.Team{}, err
	}
	cache.TeamCreated(s.cache, t.HackathonID)
	return t, nil
}

// UpdateTeam overwrites a team's settable fields
func (s *Store) UpdateTeam(ctx context.Context, t models.Team) error {
	if t.ID == "" || t.HackathonID == "" {
		return apperrors.Validation("team id and hackathon id are required")
	}
	if err := s.insert(ctx, zerodb.TableTeams, zerodb.RowOf(t)); err != nil {
		return err
	}
	cache.TeamUpdated(s.cache, t.HackathonID, t.ID)
	return nil
}

// ListTeamMembers returns a team's membership
func (s *Store) ListTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	return listCached[models.TeamMember](ctx, s, cache.Teams.Members(teamID), zerodb.TableTeamMembers,
		zerodb.QueryOptions{Filter: map[string]any{"team_id": teamID}})
}
