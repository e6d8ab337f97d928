package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/models"
)

// handleListTeams returns a hackathon's teams
func (h *Handlers) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, teams)
}

// handleCreateTeam creates a team within a hackathon
func (h *Handlers) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.Store.CreateTeam(r.Context(), models.Team{
		HackathonID: chi.URLParam(r, "hackathonID"),
		Name:        req.Name,
		TrackID:     req.TrackID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, team)
}

// handleUpdateTeam overwrites a team's settable fields
func (h *Handlers) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team := models.Team{
		ID:          chi.URLParam(r, "teamID"),
		HackathonID: chi.URLParam(r, "hackathonID"),
		Name:        req.Name,
		TrackID:     req.TrackID,
	}
	if err := h.Store.UpdateTeam(r.Context(), team); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, team)
}

// handleListTeamProjects returns the projects owned by one team
func (h *Handlers) handleListTeamProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjectsByTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, projects)
}

// handleGetTeam returns one team
func (h *Handlers) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.Store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, team)
}

// handleListTeamMembers returns a team's membership
func (h *Handlers) handleListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListTeamMembers(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, members)
}

// handleAddTeamMember adds a participant to an existing team
func (h *Handlers) handleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	var req TeamMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ParticipantID == "" {
		respondError(w, BadRequest("Missing participant_id"))
		return
	}

	member, err := h.TeamFormation.AddMemberToExistingTeam(r.Context(), chi.URLParam(r, "teamID"), req.ParticipantID, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, member)
}
