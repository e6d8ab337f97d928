package models

import "time"

// HackathonStatus is the lifecycle state of a hackathon
type HackathonStatus string

const (
	HackathonDraft  HackathonStatus = "DRAFT"
	HackathonLive   HackathonStatus = "LIVE"
	HackathonClosed HackathonStatus = "CLOSED"
)

// CanTransition reports whether a hackathon may move from its current status
// to the target. Transitions are monotonic: DRAFT->LIVE, DRAFT->CLOSED,
// LIVE->CLOSED. CLOSED is terminal.
func (s HackathonStatus) CanTransition(target HackathonStatus) bool {
	switch s {
	case HackathonDraft:
		return target == HackathonLive || target == HackathonClosed
	case HackathonLive:
		return target == HackathonClosed
	default:
		return false
	}
}

// EnrollmentRole is a participant's role within one hackathon
type EnrollmentRole string

const (
	RoleBuilder   EnrollmentRole = "BUILDER"
	RoleJudge     EnrollmentRole = "JUDGE"
	RoleMentor    EnrollmentRole = "MENTOR"
	RoleOrganizer EnrollmentRole = "ORGANIZER"
	RoleSponsor   EnrollmentRole = "SPONSOR"
)

// TeamRole is a member's role within a team
type TeamRole string

const (
	TeamRoleLead   TeamRole = "LEAD"
	TeamRoleMember TeamRole = "MEMBER"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "DRAFT"
	ProjectBuilding  ProjectStatus = "BUILDING"
	ProjectSubmitted ProjectStatus = "SUBMITTED"
)

// CanTransition reports whether a project may move from its current status
// to the target. Transitions are monotonic: DRAFT->BUILDING,
// DRAFT->SUBMITTED, BUILDING->SUBMITTED. SUBMITTED is terminal.
func (s ProjectStatus) CanTransition(target ProjectStatus) bool {
	switch s {
	case ProjectDraft:
		return target == ProjectBuilding || target == ProjectSubmitted
	case ProjectBuilding:
		return target == ProjectSubmitted
	default:
		return false
	}
}

// InvitationStatus is the state of an invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
)

// Hackathon is a timeboxed competition event
type Hackathon struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      HackathonStatus `json:"status"`
	StartAt     time.Time       `json:"start_at"`
	EndAt       time.Time       `json:"end_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Track is a thematic sub-category within a hackathon
type Track struct {
	ID          string `json:"id"`
	HackathonID string `json:"hackathon_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Participant is a person known to the platform
type Participant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
}

// Enrollment ties a participant to a hackathon with a role.
// Identity is the (hackathon_id, participant_id) pair.
type Enrollment struct {
	HackathonID   string         `json:"hackathon_id"`
	ParticipantID string         `json:"participant_id"`
	Role          EnrollmentRole `json:"role"`
}

// Team is a group of participants within a hackathon
type Team struct {
	ID          string `json:"id"`
	HackathonID string `json:"hackathon_id"`
	Name        string `json:"name"`
	TrackID     string `json:"track_id,omitempty"`
}

// TeamMember ties a participant to a team with a role.
// Identity is the (team_id, participant_id) pair.
type TeamMember struct {
	TeamID        string   `json:"team_id"`
	ParticipantID string   `json:"participant_id"`
	Role          TeamRole `json:"role"`
}

// Project is a team's work within a hackathon
type Project struct {
	ID          string        `json:"id"`
	HackathonID string        `json:"hackathon_id"`
	TeamID      string        `json:"team_id"`
	Title       string        `json:"title"`
	OneLiner    string        `json:"one_liner,omitempty"`
	Status      ProjectStatus `json:"status"`
	RepoURL     string        `json:"repo_url,omitempty"`
	DemoURL     string        `json:"demo_url,omitempty"`
}

// Submission is a team's narrative and artifact links for one project
type Submission struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Text          string    `json:"text"`
	ArtifactLinks string    `json:"artifact_links,omitempty"` // JSON-encoded []string
}

// RubricCriterion is one scoring criterion within a rubric
type RubricCriterion struct {
	Name     string  `json:"name"`
	MaxScore float64 `json:"max_score,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
}

// Rubric is a judge-facing scoring criteria definition
type Rubric struct {
	ID          string `json:"id"`
	HackathonID string `json:"hackathon_id"`
	Title       string `json:"title"`
	Criteria    string `json:"criteria,omitempty"` // JSON-encoded []RubricCriterion
}

// Score is one judge's evaluation of one submission
type Score struct {
	ID             string  `json:"id"`
	SubmissionID   string  `json:"submission_id"`
	JudgeID        string  `json:"judge_id"`
	CriteriaScores string  `json:"criteria_scores,omitempty"` // JSON-encoded map[string]float64
	TotalScore     float64 `json:"total_score"`
	Feedback       string  `json:"feedback,omitempty"`
}

// Prize is an award offered by a hackathon, optionally per track
type Prize struct {
	ID          string `json:"id"`
	HackathonID string `json:"hackathon_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Rank        int    `json:"rank"` // 1 = top prize
	TrackID     string `json:"track_id,omitempty"`
}

// Invitation asks someone by email to join a hackathon as judge/mentor/sponsor
type Invitation struct {
	ID          string           `json:"id"`
	HackathonID string           `json:"hackathon_id"`
	Email       string           `json:"email"`
	Role        EnrollmentRole   `json:"role"`
	Status      InvitationStatus `json:"status"`
	Message     string           `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
