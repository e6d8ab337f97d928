package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/workflows"
)

// handleFormTeam runs the team-formation workflow
func (h *Handlers) handleFormTeam(w http.ResponseWriter, r *http.Request) {
	var req FormTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.TeamFormation.Run(r.Context(), workflows.TeamFormationInput{
		HackathonID:       chi.URLParam(r, "hackathonID"),
		ParticipantName:   req.ParticipantName,
		ParticipantEmail:  req.ParticipantEmail,
		Organization:      req.Organization,
		Role:              req.Role,
		TeamName:          req.TeamName,
		TrackID:           req.TrackID,
		ProjectTitle:      req.ProjectTitle,
		ProjectOneLiner:   req.ProjectOneLiner,
		AdditionalMembers: req.AdditionalMembers,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, result)
}

// handleSubmitProject runs the submission workflow and refreshes the
// leaderboard for connected clients
func (h *Handlers) handleSubmitProject(w http.ResponseWriter, r *http.Request) {
	var req SubmitProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	hackathonID := chi.URLParam(r, "hackathonID")
	result, err := h.Submission.Submit(r.Context(), workflows.SubmitInput{
		HackathonID:   hackathonID,
		ProjectID:     req.ProjectID,
		TeamID:        req.TeamID,
		Text:          req.Text,
		ArtifactLinks: req.ArtifactLinks,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if h.Leaderboard != nil {
		if _, err := h.Leaderboard.Refresh(r.Context(), hackathonID, ""); err != nil {
			// The submission already succeeded, the board will catch up
			// on the next read.
			respondCreated(w, result)
			return
		}
	}
	respondCreated(w, result)
}

// handleRetryEmbedding re-runs the embedding step for a submission whose
// row was stored but whose vector write failed
func (h *Handlers) handleRetryEmbedding(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionID")
	submission, err := h.Store.GetSubmission(r.Context(), submissionID)
	if err != nil {
		respondError(w, err)
		return
	}
	project, err := h.Store.GetProject(r.Context(), submission.ProjectID)
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.Submission.RetryEmbedding(r.Context(), submissionID, workflows.SubmitInput{
		HackathonID: project.HackathonID,
		ProjectID:   project.ID,
		TeamID:      project.TeamID,
		Text:        submission.Text,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]bool{"embedding_stored": true})
}
