package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// ListProjects returns a hackathon's projects
func (s *Store) ListProjects(ctx context.Context, hackathonID string) ([]models.Project, error) {
	return listCached[models.Project](ctx, s, cache.Projects.All(hackathonID), zerodb.TableProjects,
		zerodb.QueryOptions{Filter: map[string]any{"hackathon_id": hackathonID}})
}

// ListProjectsByTeam returns a team's projects
func (s *Store) ListProjectsByTeam(ctx context.Context, teamID string) ([]models.Project, error) {
	return listCached[models.Project](ctx, s, cache.Projects.ByTeam(teamID), zerodb.TableProjects,
		zerodb.QueryOptions{Filter: map[string]any{"team_id": teamID}})
}

// GetProject returns one project by id
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	return getCached[models.Project](ctx, s, cache.Projects.Detail(id), zerodb.TableProjects, id, "project")
}

// CreateProject creates a project for a team. New projects start in DRAFT
// unless the caller already moved them to BUILDING.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Title) == "" {
		return models.Project{}, apperrors.Validation("project title is required")
	}
	if p.HackathonID == "" || p.TeamID == "" {
		return models.Project{}, apperrors.Validation("hackathon id and team id are required")
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.Status == "" {
		p.Status = models.ProjectDraft
	}
	if err := s.insert(ctx, zerodb.TableProjects, zerodb.RowOf(p)); err != nil {
		return models.Project{}, err
	}
	cache.ProjectCreated(s.cache, p.HackathonID, p.TeamID)
	return p, nil
}

// UpdateProject overwrites a project's settable fields. Flipping a project
// to SUBMITTED is the submission workflow's job, not a direct update.
func (s *Store) UpdateProject(ctx context.Context, p models.Project) error {
	if p.ID == "" || p.HackathonID == "" || p.TeamID == "" {
		return apperrors.Validation("project id, hackathon id, and team id are required")
	}
	row := zerodb.RowOf(p)
	delete(row, "status")
	if err := s.insert(ctx, zerodb.TableProjects, row); err != nil {
		return err
	}
	cache.ProjectUpdated(s.cache, p.HackathonID, p.ID, p.TeamID)
	return nil
}

// UpdateProjectStatus moves a project through its lifecycle. Only forward
// transitions are allowed; SUBMITTED is terminal.
func (s *Store) UpdateProjectStatus(ctx context.Context, id string, target models.ProjectStatus) error {
	current, err := s.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(target) {
		return apperrors.Conflict(fmt.Sprintf("cannot transition project from %s to %s", current.Status, target))
	}
	if err := s.insert(ctx, zerodb.TableProjects, zerodb.Row{"id": id, "status": string(target)}); err != nil {
		return err
	}
	cache.ProjectUpdated(s.cache, current.HackathonID, id, current.TeamID)
	s.log.Info("Project status changed", "project_id", id, "from", current.Status, "to", target)
	return nil
}

// GetSubmission returns one submission by id
func (s *Store) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	return getCached[models.Submission](ctx, s, cache.Submissions.Detail(id), zerodb.TableSubmissions, id, "submission")
}

// ListSubmissionsByProject returns a project's submissions
func (s *Store) ListSubmissionsByProject(ctx context.Context, projectID string) ([]models.Submission, error) {
	return listCached[models.Submission](ctx, s, cache.Submissions.ByProject(projectID), zerodb.TableSubmissions,
		zerodb.QueryOptions{Filter: map[string]any{"project_id": projectID}})
}

// ListSubmissions returns every submission belonging to a hackathon's
// projects. Submissions reference only their project, so the hackathon scope
// comes from joining against the project list.
func (s *Store) ListSubmissions(ctx context.Context, hackathonID string) ([]models.Submission, error) {
	key := cache.Submissions.All(hackathonID)
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.([]models.Submission); ok {
			return typed, nil
		}
	}

	projects, err := s.ListProjects(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	projectIDs := make(map[string]bool, len(projects))
	for _, p := range projects {
		projectIDs[p.ID] = true
	}

	rows, _, err := s.client.QueryRows(ctx, zerodb.TableSubmissions, zerodb.QueryOptions{})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to query submissions")
	}
	all, err := zerodb.DecodeRows[models.Submission](rows)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to decode submission rows")
	}

	submissions := make([]models.Submission, 0, len(all))
	for _, sub := range all {
		if projectIDs[sub.ProjectID] {
			submissions = append(submissions, sub)
		}
	}

	s.cache.Set(key, submissions)
	return submissions, nil
}
