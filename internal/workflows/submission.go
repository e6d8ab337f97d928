package workflows

import (
	"context"
	"encoding/json"
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

// Submission orchestrates the dual write that publishes a project: the
// submission row goes to row storage, the submission text goes to the vector
// store, and the project is flipped to SUBMITTED.
type Submission struct {
	log    logger.Logger
	client zerodb.Client
	cache  cache.Invalidator

	newID func() string
	now   func() time.Time
}

// NewSubmission creates a new submission workflow
func NewSubmission(log logger.Logger, client zerodb.Client, c cache.Invalidator) *Submission {
	return &Submission{
		log:    log,
		client: client,
		cache:  c,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// SetIDGenerator overrides row id generation (for testing)
func (w *Submission) SetIDGenerator(newID func() string) {
	w.newID = newID
}

// SetClock overrides timestamping (for testing)
func (w *Submission) SetClock(now func() time.Time) {
	w.now = now
}

// SubmitInput is everything a project submission needs
type SubmitInput struct {
	HackathonID   string   `json:"hackathon_id"`
	ProjectID     string   `json:"project_id"`
	TeamID        string   `json:"team_id"`
	Text          string   `json:"text"`
	ArtifactLinks []string `json:"artifact_links,omitempty"`
}

// SubmitResult is the outcome of a fully successful submission
type SubmitResult struct {
	Submission      models.Submission `json:"submission"`
	EmbeddingStored bool              `json:"embedding_stored"`
}

// Submit runs the workflow: check the hackathon accepts submissions, create
// the submission row, embed the submission text for semantic search, then
// mark the project SUBMITTED. A failure after the row exists returns a
// phase-tagged error carrying the submission id so the caller can retry the
// remaining steps without duplicating the row.
func (w *Submission) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	result, err := w.submit(ctx, input)
	if err != nil {
		metrics.WorkflowRuns.WithLabelValues("submission", phaseLabel(err)).Inc()
		return nil, err
	}
	metrics.WorkflowRuns.WithLabelValues("submission", "ok").Inc()
	return result, nil
}

func (w *Submission) submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, validationError("Submission text is required")
	}

	// Step 1: the hackathon must exist and still be open
	rows, _, err := w.client.QueryRows(ctx, zerodb.TableHackathons, zerodb.QueryOptions{
		Filter: map[string]any{"id": input.HackathonID},
		Limit:  1,
	})
	if err != nil {
		return nil, stepError(PhaseHackathonLoad, "Failed to load hackathon", err)
	}
	if len(rows) == 0 {
		return nil, validationError("Hackathon not found")
	}
	if status, _ := rows[0]["status"].(string); models.HackathonStatus(status) == models.HackathonClosed {
		return nil, validationError("Cannot submit to a closed hackathon")
	}

	// Step 2: submission row
	submission := models.Submission{
		ID:          w.newID(),
		ProjectID:   input.ProjectID,
		SubmittedAt: w.now().UTC(),
		Text:        input.Text,
	}
	if len(input.ArtifactLinks) > 0 {
		links, err := json.Marshal(input.ArtifactLinks)
		if err != nil {
			return nil, stepError(PhaseSubmissionCreate, "Failed to encode artifact links", err)
		}
		submission.ArtifactLinks = string(links)
	}
	if _, err := w.client.InsertRows(ctx, zerodb.TableSubmissions, []zerodb.Row{zerodb.RowOf(submission)}); err != nil {
		return nil, stepError(PhaseSubmissionCreate, "Failed to create submission", err)
	}
	cache.SubmissionCreated(w.cache, input.HackathonID, input.ProjectID)
	w.log.Debug("Submission created", "submission_id", submission.ID, "project_id", input.ProjectID)

	// Step 3: embed the submission text for semantic search
	if err := w.storeEmbedding(ctx, submission.ID, input); err != nil {
		wfErr := stepError(PhaseEmbedding, "Failed to store submission embedding", err)
		wfErr.SubmissionID = submission.ID
		return nil, wfErr
	}

	// Step 4: the project is now submitted
	if _, err := w.client.InsertRows(ctx, zerodb.TableProjects, []zerodb.Row{
		{"id": input.ProjectID, "status": string(models.ProjectSubmitted)},
	}); err != nil {
		wfErr := stepError(PhaseProjectUpdate, "Failed to mark project as submitted", err)
		wfErr.SubmissionID = submission.ID
		return nil, wfErr
	}
	cache.ProjectUpdated(w.cache, input.HackathonID, input.ProjectID, input.TeamID)

	w.log.Info("Project submitted",
		"hackathon_id", input.HackathonID,
		"project_id", input.ProjectID,
		"submission_id", submission.ID)

	return &SubmitResult{Submission: submission, EmbeddingStored: true}, nil
}

func (w *Submission) storeEmbedding(ctx context.Context, submissionID string, input SubmitInput) error {
	metadata := map[string]string{
		"hackathon_id":  input.HackathonID,
		"project_id":    input.ProjectID,
		"team_id":       input.TeamID,
		"submission_id": submissionID,
	}
	// Track-filtered search matches on document metadata, so the team's
	// track has to be recorded alongside the text.
	trackID, err := w.resolveTrack(ctx, input.TeamID)
	if err != nil {
		return err
	}
	if trackID != "" {
		metadata["track_id"] = trackID
	}

	_, err = w.client.EmbedAndStore(ctx, zerodb.EmbedRequest{
		Namespace: zerodb.SubmissionNamespace(input.HackathonID),
		Documents: []zerodb.Document{{
			ID:       zerodb.SubmissionDocID(submissionID),
			Text:     input.Text,
			Metadata: metadata,
		}},
	})
	return err
}

// resolveTrack looks up the team's track. Teams without a track yield an
// empty id, which keeps the track_id key out of the document metadata.
func (w *Submission) resolveTrack(ctx context.Context, teamID string) (string, error) {
	if teamID == "" {
		return "", nil
	}
	rows, _, err := w.client.QueryRows(ctx, zerodb.TableTeams, zerodb.QueryOptions{
		Filter: map[string]any{"id": teamID},
		Limit:  1,
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	trackID, _ := rows[0]["track_id"].(string)
	return trackID, nil
}

// RetryEmbedding re-runs the embedding step for an already-created
// submission. Failures are wrapped in a generic operational error rather
// than a phased workflow error.
func (w *Submission) RetryEmbedding(ctx context.Context, submissionID string, input SubmitInput) error {
	if err := w.storeEmbedding(ctx, submissionID, input); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal, "failed to store submission embedding")
	}
	return nil
}

// CleanupOrphanedEmbedding handles the case where an embedding exists but
// the submission row was lost. The backend exposes no delete operation for
// vector documents, so all we can do is flag it for manual attention.
func (w *Submission) CleanupOrphanedEmbedding(ctx context.Context, hackathonID, submissionID string) error {
	w.log.Warn("Orphaned embedding requires manual cleanup",
		"namespace", zerodb.SubmissionNamespace(hackathonID),
		"doc_id", zerodb.SubmissionDocID(submissionID))
	return nil
}
