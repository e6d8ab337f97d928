package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/models"
)

// handleListProjects returns a hackathon's projects
func (h *Handlers) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, projects)
}

// handleGetProject returns one project
func (h *Handlers) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, project)
}

// handleCreateProject creates a project for a team
func (h *Handlers) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	project, err := h.Store.CreateProject(r.Context(), models.Project{
		HackathonID: req.HackathonID,
		TeamID:      req.TeamID,
		Title:       req.Title,
		OneLiner:    req.OneLiner,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, project)
}

// handleUpdateProject updates a project's settable fields
func (h *Handlers) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	project := models.Project{
		ID:          chi.URLParam(r, "projectID"),
		HackathonID: req.HackathonID,
		TeamID:      req.TeamID,
		Title:       req.Title,
		OneLiner:    req.OneLiner,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
	}
	if err := h.Store.UpdateProject(r.Context(), project); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, project)
}

// handleUpdateProjectStatus moves a project through its lifecycle
func (h *Handlers) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req ProjectStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id := chi.URLParam(r, "projectID")
	if err := h.Store.UpdateProjectStatus(r.Context(), id, req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"id": id, "status": string(req.Status)})
}

// handleListSubmissions returns a hackathon's submissions
func (h *Handlers) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.Store.ListSubmissions(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, submissions)
}

// handleListProjectSubmissions returns a project's submissions
func (h *Handlers) handleListProjectSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.Store.ListSubmissionsByProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, submissions)
}

// handleGetSubmission returns one submission
func (h *Handlers) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.Store.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, submission)
}
