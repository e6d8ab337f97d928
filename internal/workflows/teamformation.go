package workflows

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/internal/metrics"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// TeamFormation orchestrates the five dependent writes that take a new
// participant from signup to a team with a draft project.
type TeamFormation struct {
	log    logger.Logger
	client zerodb.Client
	cache  cache.Invalidator

	newID func() string
	now   func() time.Time
}

// NewTeamFormation creates a new team-formation workflow
func NewTeamFormation(log logger.Logger, client zerodb.Client, c cache.Invalidator) *TeamFormation {
	return &TeamFormation{
		log:    log,
		client: client,
		cache:  c,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// SetIDGenerator overrides row id generation (for testing)
func (w *TeamFormation) SetIDGenerator(newID func() string) {
	w.newID = newID
}

// AdditionalMember is an existing participant to add to the new team
type AdditionalMember struct {
	ParticipantID string          `json:"participant_id"`
	Role          models.TeamRole `json:"role,omitempty"`
}

// TeamFormationInput is everything the workflow needs up front
type TeamFormationInput struct {
	HackathonID       string                `json:"hackathon_id"`
	ParticipantName   string                `json:"participant_name"`
	ParticipantEmail  string                `json:"participant_email"`
	Organization      string                `json:"organization,omitempty"`
	Role              models.EnrollmentRole `json:"role,omitempty"` // defaults to BUILDER
	TeamName          string                `json:"team_name"`
	TrackID           string                `json:"track_id,omitempty"`
	ProjectTitle      string                `json:"project_title"`
	ProjectOneLiner   string                `json:"project_one_liner,omitempty"`
	AdditionalMembers []AdditionalMember    `json:"additional_members,omitempty"`
}

// TeamFormationResult is everything the workflow created, in order
type TeamFormationResult struct {
	Participant models.Participant  `json:"participant"`
	Enrollment  models.Enrollment   `json:"enrollment"`
	Team        models.Team         `json:"team"`
	Members     []models.TeamMember `json:"members"` // lead first
	Project     models.Project      `json:"project"`
}

// Run executes the workflow: create participant, enroll, create team, add
// the lead plus any additional members, create a draft project. Steps run
// strictly in order; a failure halts the workflow with a phase-tagged error
// carrying the ids created so far.
func (w *TeamFormation) Run(ctx context.Context, input TeamFormationInput) (*TeamFormationResult, error) {
	if err := w.validate(input); err != nil {
		metrics.WorkflowRuns.WithLabelValues("team_formation", string(PhaseValidation)).Inc()
		return nil, err
	}

	result, err := w.run(ctx, input)
	if err != nil {
		metrics.WorkflowRuns.WithLabelValues("team_formation", phaseLabel(err)).Inc()
		return nil, err
	}

	metrics.WorkflowRuns.WithLabelValues("team_formation", "ok").Inc()
	return result, nil
}

func (w *TeamFormation) validate(input TeamFormationInput) error {
	if strings.TrimSpace(input.ParticipantEmail) == "" {
		return validationError("Participant email is required")
	}
	if strings.TrimSpace(input.ParticipantName) == "" {
		return validationError("Participant name is required")
	}
	if strings.TrimSpace(input.TeamName) == "" {
		return validationError("Team name is required")
	}
	if strings.TrimSpace(input.ProjectTitle) == "" {
		return validationError("Project title is required")
	}
	return nil
}

func (w *TeamFormation) run(ctx context.Context, input TeamFormationInput) (*TeamFormationResult, error) {
	// Step 1: participant
	participant := models.Participant{
		ID:           w.newID(),
		Name:         input.ParticipantName,
		Email:        input.ParticipantEmail,
		Organization: input.Organization,
	}
	if _, err := w.client.InsertRows(ctx, zerodb.TableParticipants, []zerodb.Row{zerodb.RowOf(participant)}); err != nil {
		return nil, stepError(PhaseParticipantCreate, "Failed to create participant", err)
	}
	w.log.Debug("Participant created", "participant_id", participant.ID)

	// Step 2: enrollment
	role := input.Role
	if role == "" {
		role = models.RoleBuilder
	}
	enrollment := models.Enrollment{
		HackathonID:   input.HackathonID,
		ParticipantID: participant.ID,
		Role:          role,
	}
	if _, err := w.client.InsertRows(ctx, zerodb.TableEnrollments, []zerodb.Row{zerodb.RowOf(enrollment)}); err != nil {
		wfErr := stepError(PhaseEnrollment, "Failed to enroll participant", err)
		wfErr.ParticipantID = participant.ID
		return nil, wfErr
	}
	cache.ParticipantEnrolled(w.cache, input.HackathonID)

	// Step 3: team
	team := models.Team{
		ID:          w.newID(),
		HackathonID: input.HackathonID,
		Name:        input.TeamName,
		TrackID:     input.TrackID,
	}
	if _, err := w.client.InsertRows(ctx, zerodb.TableTeams, []zerodb.Row{zerodb.RowOf(team)}); err != nil {
		wfErr := stepError(PhaseTeamCreate, "Failed to create team", err)
		wfErr.ParticipantID = participant.ID
		return nil, wfErr
	}
	cache.TeamCreated(w.cache, input.HackathonID)
	w.log.Debug("Team created", "team_id", team.ID, "name", team.Name)

	// Step 4: members, initiating participant first as LEAD
	toAdd := []models.TeamMember{{TeamID: team.ID, ParticipantID: participant.ID, Role: models.TeamRoleLead}}
	for _, m := range input.AdditionalMembers {
		memberRole := m.Role
		if memberRole == "" {
			memberRole = models.TeamRoleMember
		}
		toAdd = append(toAdd, models.TeamMember{TeamID: team.ID, ParticipantID: m.ParticipantID, Role: memberRole})
	}

	var members []models.TeamMember
	for _, member := range toAdd {
		if _, err := w.client.InsertRows(ctx, zerodb.TableTeamMembers, []zerodb.Row{zerodb.RowOf(member)}); err != nil {
			wfErr := stepError(PhaseMembersAdd, "Failed to add team member", err)
			wfErr.ParticipantID = participant.ID
			wfErr.TeamID = team.ID
			wfErr.MembersAdded = members
			return nil, wfErr
		}
		members = append(members, member)
		cache.TeamMemberAdded(w.cache, input.HackathonID, team.ID)
	}

	// Step 5: project, always created as a draft
	project := models.Project{
		ID:          w.newID(),
		HackathonID: input.HackathonID,
		TeamID:      team.ID,
		Title:       input.ProjectTitle,
		OneLiner:    input.ProjectOneLiner,
		Status:      models.ProjectDraft,
	}
	if _, err := w.client.InsertRows(ctx, zerodb.TableProjects, []zerodb.Row{zerodb.RowOf(project)}); err != nil {
		wfErr := stepError(PhaseProjectCreate, "Failed to create project", err)
		wfErr.ParticipantID = participant.ID
		wfErr.TeamID = team.ID
		wfErr.MembersAdded = members
		return nil, wfErr
	}
	cache.ProjectCreated(w.cache, input.HackathonID, team.ID)

	w.log.Info("Team formed",
		"hackathon_id", input.HackathonID,
		"team_id", team.ID,
		"project_id", project.ID,
		"members", len(members))

	return &TeamFormationResult{
		Participant: participant,
		Enrollment:  enrollment,
		Team:        team,
		Members:     members,
		Project:     project,
	}, nil
}

// AddMemberToExistingTeam adds one participant to an existing team. There is
// no precondition checking beyond what the backend enforces; failures are
// wrapped in a generic operational error rather than a phased workflow error.
func (w *TeamFormation) AddMemberToExistingTeam(ctx context.Context, teamID, participantID string, role models.TeamRole) (*models.TeamMember, error) {
	if role == "" {
		role = models.TeamRoleMember
	}
	member := models.TeamMember{TeamID: teamID, ParticipantID: participantID, Role: role}
	if _, err := w.client.InsertRows(ctx, zerodb.TableTeamMembers, []zerodb.Row{zerodb.RowOf(member)}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to add member to team")
	}

	// The invalidation rule needs the owning hackathon; a failed lookup only
	// costs cache freshness, not correctness.
	rows, _, err := w.client.QueryRows(ctx, zerodb.TableTeams, zerodb.QueryOptions{
		Filter: map[string]any{"id": teamID},
		Limit:  1,
	})
	if err != nil || len(rows) == 0 {
		w.log.Warn("Could not resolve team for cache invalidation", "team_id", teamID, "error", err)
		return &member, nil
	}
	if hackathonID, _ := rows[0]["hackathon_id"].(string); hackathonID != "" {
		cache.TeamMemberAdded(w.cache, hackathonID, teamID)
	}
	return &member, nil
}
