package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/models"
)

// handleListRubrics returns a hackathon's rubrics
func (h *Handlers) handleListRubrics(w http.ResponseWriter, r *http.Request) {
	rubrics, err := h.Store.ListRubrics(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, rubrics)
}

// handleCreateRubric creates a judging rubric
func (h *Handlers) handleCreateRubric(w http.ResponseWriter, r *http.Request) {
	var req RubricRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	rubric, err := h.Store.CreateRubric(r.Context(), models.Rubric{
		HackathonID: chi.URLParam(r, "hackathonID"),
		Title:       req.Title,
		Criteria:    req.Criteria,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, rubric)
}

// handleGetRubric returns one rubric
func (h *Handlers) handleGetRubric(w http.ResponseWriter, r *http.Request) {
	rubric, err := h.Store.GetRubric(r.Context(), chi.URLParam(r, "rubricID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, rubric)
}

// handleUpdateRubric overwrites a rubric's settable fields
func (h *Handlers) handleUpdateRubric(w http.ResponseWriter, r *http.Request) {
	var req RubricRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	rubric := models.Rubric{
		ID:          chi.URLParam(r, "rubricID"),
		HackathonID: chi.URLParam(r, "hackathonID"),
		Title:       req.Title,
		Criteria:    req.Criteria,
	}
	if err := h.Store.UpdateRubric(r.Context(), rubric); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, rubric)
}

// handleListSubmissionScores returns all scores for one submission
func (h *Handlers) handleListSubmissionScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.Store.ListScoresBySubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, scores)
}

// handleSubmitScore records a judge's score and refreshes the leaderboard
func (h *Handlers) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	hackathonID := chi.URLParam(r, "hackathonID")
	score, err := h.Store.SubmitScore(r.Context(), hackathonID, models.Score{
		SubmissionID:   req.SubmissionID,
		JudgeID:        req.JudgeID,
		CriteriaScores: req.CriteriaScores,
		TotalScore:     req.TotalScore,
		Feedback:       req.Feedback,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if h.Leaderboard != nil {
		h.Leaderboard.Refresh(r.Context(), hackathonID, "")
	}
	respondCreated(w, score)
}

// handleListJudgeScores returns all scores one judge has submitted
func (h *Handlers) handleListJudgeScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.Store.ListScoresByJudge(r.Context(), chi.URLParam(r, "participantID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, scores)
}

// handleListPrizes returns a hackathon's prizes
func (h *Handlers) handleListPrizes(w http.ResponseWriter, r *http.Request) {
	prizes, err := h.Store.ListPrizes(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, prizes)
}

// handleCreatePrize creates a prize
func (h *Handlers) handleCreatePrize(w http.ResponseWriter, r *http.Request) {
	var req PrizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	prize, err := h.Store.CreatePrize(r.Context(), models.Prize{
		HackathonID: chi.URLParam(r, "hackathonID"),
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Rank:        req.Rank,
		TrackID:     req.TrackID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, prize)
}

// handleGetPrize returns one prize
func (h *Handlers) handleGetPrize(w http.ResponseWriter, r *http.Request) {
	prize, err := h.Store.GetPrize(r.Context(), chi.URLParam(r, "prizeID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, prize)
}

// handleUpdatePrize overwrites a prize's settable fields
func (h *Handlers) handleUpdatePrize(w http.ResponseWriter, r *http.Request) {
	var req PrizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	prize := models.Prize{
		ID:          chi.URLParam(r, "prizeID"),
		HackathonID: chi.URLParam(r, "hackathonID"),
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Rank:        req.Rank,
		TrackID:     req.TrackID,
	}
	if err := h.Store.UpdatePrize(r.Context(), prize); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, prize)
}
