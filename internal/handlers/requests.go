package handlers

import (
	"time"

	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/internal/workflows"
)

// HackathonCreateRequest represents a request to create a hackathon
type HackathonCreateRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

// HackathonStatusRequest represents a request to change a hackathon's status
type HackathonStatusRequest struct {
	Status models.HackathonStatus `json:"status"`
}

// TrackRequest represents a request to create or update a track
type TrackRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ParticipantCreateRequest represents a request to register a participant
type ParticipantCreateRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
}

// EnrollRequest represents a request to enroll a participant
type EnrollRequest struct {
	ParticipantID string                `json:"participant_id"`
	Role          models.EnrollmentRole `json:"role,omitempty"`
}

// TeamRequest represents a request to create or update a team
type TeamRequest struct {
	Name    string `json:"name"`
	TrackID string `json:"track_id,omitempty"`
}

// TeamMemberRequest represents a request to add a team member
type TeamMemberRequest struct {
	ParticipantID string          `json:"participant_id"`
	Role          models.TeamRole `json:"role,omitempty"`
}

// ProjectCreateRequest represents a request to create a project
type ProjectCreateRequest struct {
	HackathonID string `json:"hackathon_id"`
	TeamID      string `json:"team_id"`
	Title       string `json:"title"`
	OneLiner    string `json:"one_liner,omitempty"`
	RepoURL     string `json:"repo_url,omitempty"`
	DemoURL     string `json:"demo_url,omitempty"`
}

// ProjectStatusRequest represents a request to change a project's status
type ProjectStatusRequest struct {
	Status models.ProjectStatus `json:"status"`
}

// FormTeamRequest represents a request to run the team-formation workflow
type FormTeamRequest struct {
	ParticipantName   string                       `json:"participant_name"`
	ParticipantEmail  string                       `json:"participant_email"`
	Organization      string                       `json:"organization,omitempty"`
	Role              models.EnrollmentRole        `json:"role,omitempty"`
	TeamName          string                       `json:"team_name"`
	TrackID           string                       `json:"track_id,omitempty"`
	ProjectTitle      string                       `json:"project_title"`
	ProjectOneLiner   string                       `json:"project_one_liner,omitempty"`
	AdditionalMembers []workflows.AdditionalMember `json:"additional_members,omitempty"`
}

// SubmitProjectRequest represents a request to run the submission workflow
type SubmitProjectRequest struct {
	ProjectID     string   `json:"project_id"`
	TeamID        string   `json:"team_id"`
	Text          string   `json:"text"`
	ArtifactLinks []string `json:"artifact_links,omitempty"`
}

// RubricRequest represents a request to create a rubric
type RubricRequest struct {
	Title    string `json:"title"`
	Criteria string `json:"criteria,omitempty"`
}

// ScoreRequest represents a request to submit a score
type ScoreRequest struct {
	SubmissionID   string  `json:"submission_id"`
	JudgeID        string  `json:"judge_id"`
	CriteriaScores string  `json:"criteria_scores,omitempty"`
	TotalScore     float64 `json:"total_score"`
	Feedback       string  `json:"feedback,omitempty"`
}

// PrizeRequest represents a request to create a prize
type PrizeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Rank        int    `json:"rank"`
	TrackID     string `json:"track_id,omitempty"`
}

// InvitationRequest represents a request to send an invitation
type InvitationRequest struct {
	Email   string                `json:"email"`
	Role    models.EnrollmentRole `json:"role,omitempty"`
	Message string                `json:"message,omitempty"`
}

// InvitationAcceptRequest represents a request to accept an invitation
type InvitationAcceptRequest struct {
	ParticipantID string `json:"participant_id,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Organization  string `json:"organization,omitempty"`
}
