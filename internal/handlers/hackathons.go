package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/models"
)

// handleListHackathons returns all hackathons, optionally filtered by status
func (h *Handlers) handleListHackathons(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		hackathons, err := h.Store.ListHackathonsByStatus(r.Context(), models.HackathonStatus(status))
		if err != nil {
			respondError(w, err)
			return
		}
		respondOK(w, hackathons)
		return
	}

	hackathons, err := h.Store.ListHackathons(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, hackathons)
}

// handleGetHackathon returns one hackathon
func (h *Handlers) handleGetHackathon(w http.ResponseWriter, r *http.Request) {
	hackathon, err := h.Store.GetHackathon(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, hackathon)
}

// handleCreateHackathon creates a hackathon
func (h *Handlers) handleCreateHackathon(w http.ResponseWriter, r *http.Request) {
	var req HackathonCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	hackathon, err := h.Store.CreateHackathon(r.Context(), models.Hackathon{
		Name:        req.Name,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, hackathon)
}

// handleUpdateHackathon updates a hackathon's settable fields
func (h *Handlers) handleUpdateHackathon(w http.ResponseWriter, r *http.Request) {
	var req HackathonCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	hackathon := models.Hackathon{
		ID:          chi.URLParam(r, "hackathonID"),
		Name:        req.Name,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	}
	if err := h.Store.UpdateHackathon(r.Context(), hackathon); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, hackathon)
}

// handleUpdateHackathonStatus moves a hackathon through its lifecycle
func (h *Handlers) handleUpdateHackathonStatus(w http.ResponseWriter, r *http.Request) {
	var req HackathonStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id := chi.URLParam(r, "hackathonID")
	if err := h.Store.UpdateHackathonStatus(r.Context(), id, req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"id": id, "status": string(req.Status)})
}

// handleDeleteHackathon removes a hackathon from all views
func (h *Handlers) handleDeleteHackathon(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHackathon(r.Context(), chi.URLParam(r, "hackathonID")); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleListTracks returns a hackathon's tracks
func (h *Handlers) handleListTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Store.ListTracks(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tracks)
}

// handleGetTrack returns one track
func (h *Handlers) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	track, err := h.Store.GetTrack(r.Context(), chi.URLParam(r, "trackID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, track)
}

// handleCreateTrack creates a track
func (h *Handlers) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	track, err := h.Store.CreateTrack(r.Context(), models.Track{
		HackathonID: chi.URLParam(r, "hackathonID"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, track)
}

// handleUpdateTrack updates a track
func (h *Handlers) handleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	track := models.Track{
		ID:          chi.URLParam(r, "trackID"),
		HackathonID: chi.URLParam(r, "hackathonID"),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.Store.UpdateTrack(r.Context(), track); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, track)
}

// handleDeleteTrack removes a track from all views
func (h *Handlers) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteTrack(r.Context(), chi.URLParam(r, "hackathonID"), chi.URLParam(r, "trackID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleListParticipants returns everyone enrolled in a hackathon
func (h *Handlers) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.Store.ListParticipants(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participants)
}

// handleCreateParticipant registers a participant on the platform
func (h *Handlers) handleCreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req ParticipantCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	participant, err := h.Store.CreateParticipant(r.Context(), models.Participant{
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, participant)
}

// handleGetParticipant returns a single participant profile
func (h *Handlers) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	participant, err := h.Store.GetParticipant(r.Context(), chi.URLParam(r, "participantID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participant)
}

// handleListEnrollments lists the enrollment records for a hackathon
func (h *Handlers) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.Store.ListEnrollments(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, enrollments)
}

// handleEnroll enrolls a participant in a hackathon
func (h *Handlers) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req EnrollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	enrollment := models.Enrollment{
		HackathonID:   chi.URLParam(r, "hackathonID"),
		ParticipantID: req.ParticipantID,
		Role:          req.Role,
	}
	if err := h.Store.Enroll(r.Context(), enrollment); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, enrollment)
}
