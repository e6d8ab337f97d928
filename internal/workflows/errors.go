// Package workflows orchestrates the multi-step write procedures of the
// application: team formation and project submission. Each step either
// succeeds and the next runs, or the workflow halts with a phase-tagged
// error carrying the identifiers created so far, so a caller can resume
// from the failure point instead of redoing completed steps. Prior
// successful writes are never rolled back.
package workflows

import (
	"errors"
	"fmt"

	"github.com/openhack/hackboard/internal/models"
)

// Phase identifies which workflow step failed
type Phase string

const (
	PhaseValidation        Phase = "validation"
	PhaseHackathonLoad     Phase = "hackathon_load"
	PhaseParticipantCreate Phase = "participant_create"
	PhaseEnrollment        Phase = "enrollment"
	PhaseTeamCreate        Phase = "team_create"
	PhaseMembersAdd        Phase = "members_add"
	PhaseProjectCreate     Phase = "project_create"
	PhaseSubmissionCreate  Phase = "submission_create"
	PhaseEmbedding         Phase = "embedding"
	PhaseProjectUpdate     Phase = "project_update"
)

// Error is a workflow step failure. Validation errors are never retryable;
// every later phase is. The id fields report what was already created before
// the failure; created records stay durable, there is no rollback.
type Error struct {
	Phase    Phase
	CanRetry bool
	Message  string
	Err      error

	// Identifiers created before the failure, when applicable
	ParticipantID string
	TeamID        string
	SubmissionID  string
	MembersAdded  []models.TeamMember
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (phase %s): %v", e.Message, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s (phase %s)", e.Message, e.Phase)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// validationError builds a non-retryable precondition failure
func validationError(message string) *Error {
	return &Error{Phase: PhaseValidation, CanRetry: false, Message: message}
}

// stepError builds a retryable failure for a post-validation phase
func stepError(phase Phase, message string, err error) *Error {
	return &Error{Phase: phase, CanRetry: true, Message: message, Err: err}
}

// phaseLabel extracts the failed phase for metric labels
func phaseLabel(err error) string {
	var wfErr *Error
	if errors.As(err, &wfErr) {
		return string(wfErr.Phase)
	}
	return "unknown"
}
